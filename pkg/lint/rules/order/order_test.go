package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groqkit/groqkit/pkg/lint"
	_ "github.com/groqkit/groqkit/pkg/lint/rules" // register rules
)

// Helper to run analysis and filter by rule ID
func runRule(t *testing.T, query string, ruleID string) []lint.Finding {
	t.Helper()
	result := lint.Lint(query, lint.Options{})
	require.Empty(t, result.ParseError)

	var filtered []lint.Finding
	for _, f := range result.Findings {
		if f.RuleID == ruleID {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

func TestOrderOnExpr(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantFinding bool
	}{
		{
			name:        "bare attribute",
			query:       `*[_type == "post"] | order(publishedAt)`,
			wantFinding: false,
		},
		{
			name:        "attribute with direction",
			query:       `*[_type == "post"] | order(publishedAt desc)`,
			wantFinding: false,
		},
		{
			name:        "dotted attribute chain",
			query:       `*[_type == "post"] | order(slug.current asc)`,
			wantFinding: false,
		},
		{
			name:        "lower wrapper",
			query:       `*[_type == "post"] | order(lower(title))`,
			wantFinding: false,
		},
		{
			name:        "dateTime wrapper",
			query:       `*[_type == "post"] | order(dateTime(publishedAt) desc)`,
			wantFinding: false,
		},
		{
			name:        "geo distance with literal",
			query:       `*[_type == "venue"] | order(geo::distance(location, $origin))`,
			wantFinding: false,
		},
		{
			name:        "arithmetic expression",
			query:       `*[_type == "order"] | order(price * quantity)`,
			wantFinding: true,
		},
		{
			name:        "unknown wrapper function",
			query:       `*[_type == "post"] | order(upper(title))`,
			wantFinding: true,
		},
		{
			name:        "lower of expression",
			query:       `*[_type == "post"] | order(lower(title + subtitle))`,
			wantFinding: true,
		},
		{
			name:        "direction around expression still flagged",
			query:       `*[_type == "order"] | order(price * quantity desc)`,
			wantFinding: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.query, "order-on-expr")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected order-on-expr finding")
			} else {
				assert.Empty(t, findings, "unexpected order-on-expr finding")
			}
		})
	}
}

func TestOrderOnExprMultipleArgs(t *testing.T) {
	findings := runRule(t, `* | order(publishedAt desc, price + tax, name)`, "order-on-expr")
	require.Len(t, findings, 1, "only the computed argument is flagged")
}
