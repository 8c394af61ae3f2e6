package pagination_test

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

func TestDeepPagination(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantFinding bool
	}{
		{
			name:        "deep offset",
			query:       `*[_type == "post"][1000..1009]`,
			wantFinding: true,
		},
		{
			name:        "very deep exclusive slice",
			query:       `*[_type == "post"][5000...5100]`,
			wantFinding: true,
		},
		{
			name:        "shallow offset",
			query:       `*[_type == "post"][999..1009]`,
			wantFinding: false,
		},
		{
			name:        "first page",
			query:       `*[_type == "post"][0..9]`,
			wantFinding: false,
		},
		{
			name:        "element access is not a slice",
			query:       `*[_type == "post"][1000]`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.query, "deep-pagination")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected deep-pagination finding")
			} else {
				assert.Empty(t, findings, "unexpected deep-pagination finding")
			}
		})
	}
}

func TestDeepPaginationParamIsUnreachable(t *testing.T) {
	// The parser rejects parameters in slice position, so the rule's
	// trigger never parses. It must surface as a parse error, not a panic.
	result := lint.Lint(`*[_type == "post"][$start..$end]`, lint.Options{})
	assert.NotEmpty(t, result.ParseError)
	assert.Empty(t, result.Findings)
}

func TestLargePages(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantFinding bool
	}{
		{
			name:        "oversized first page",
			query:       `*[_type == "post"][0..500]`,
			wantFinding: true,
		},
		{
			name:        "boundary page size",
			query:       `*[_type == "post"][0..100]`,
			wantFinding: false,
		},
		{
			name:        "later page",
			query:       `*[_type == "post"][200..500]`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.query, "large-pages")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected large-pages finding")
			} else {
				assert.Empty(t, findings, "unexpected large-pages finding")
			}
		})
	}
}
