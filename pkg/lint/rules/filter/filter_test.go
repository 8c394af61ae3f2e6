package filter_test

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

func TestJoinInFilter(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantFinding bool
	}{
		{
			name:        "deref in filter",
			query:       `*[author->name == "Bob"]`,
			wantFinding: true,
		},
		{
			name:        "deref in projection",
			query:       `*[_type == "post"]{author->}`,
			wantFinding: false,
		},
		{
			name:        "deref in nested filter",
			query:       `*[count(*[^._id == category->_id]) > 0]`,
			wantFinding: true,
		},
		{
			name:        "plain equality",
			query:       `*[_type == "post"]`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.query, "join-in-filter")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected join-in-filter finding")
			} else {
				assert.Empty(t, findings, "unexpected join-in-filter finding")
			}
		})
	}
}

func TestJoinInFilterSeverity(t *testing.T) {
	findings := runRule(t, `*[author->name == "Bob"]`, "join-in-filter")
	require.Len(t, findings, 1)
	assert.Equal(t, lint.SeverityError, findings[0].Severity)
}

func TestComputedValueInFilter(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantFinding bool
	}{
		{
			name:        "field arithmetic",
			query:       `*[price * quantity > 100]`,
			wantFinding: true,
		},
		{
			name:        "literal arithmetic folds",
			query:       `*[price > 2 + 1]`,
			wantFinding: false,
		},
		{
			name:        "parent reference exemption",
			query:       `*[total == ^.amount + 1]`,
			wantFinding: false,
		},
		{
			name:        "arithmetic outside filter",
			query:       `*[_type == "order"]{"total": price * quantity}`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.query, "computed-value-in-filter")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected computed-value-in-filter finding")
			} else {
				assert.Empty(t, findings, "unexpected computed-value-in-filter finding")
			}
		})
	}
}

func TestNonLiteralComparison(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantFinding bool
	}{
		{
			name:        "two fields compared",
			query:       `*[publishedAt > updatedAt]`,
			wantFinding: true,
		},
		{
			name:        "literal on one side",
			query:       `*[price > 100]`,
			wantFinding: false,
		},
		{
			name:        "parameter counts as literal",
			query:       `*[price > $min]`,
			wantFinding: false,
		},
		{
			name:        "literal closure over arithmetic",
			query:       `*[price == 2 + 1]`,
			wantFinding: false,
		},
		{
			name:        "field arithmetic is not literal",
			query:       `*[price == tax + 1]`,
			wantFinding: true,
		},
		{
			name:        "parent reference exemption",
			query:       `*[total == ^.amount]`,
			wantFinding: false,
		},
		{
			name:        "now is literal",
			query:       `*[publishedAt < now()]`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.query, "non-literal-comparison")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected non-literal-comparison finding")
			} else {
				assert.Empty(t, findings, "unexpected non-literal-comparison finding")
			}
		})
	}
}

func TestMatchOnID(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantFinding bool
	}{
		{
			name:        "match on _id",
			query:       `*[_id match "drafts.*"]`,
			wantFinding: true,
		},
		{
			name:        "equality on _id",
			query:       `*[_id == $id]`,
			wantFinding: false,
		},
		{
			name:        "match on other field",
			query:       `*[title match "go*"]`,
			wantFinding: false,
		},
		{
			name:        "_id on the right side",
			query:       `*["drafts.*" match _id]`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.query, "match-on-id")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected match-on-id finding")
			} else {
				assert.Empty(t, findings, "unexpected match-on-id finding")
			}
		})
	}
}

func TestCountInCorrelatedSubquery(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantFinding bool
	}{
		{
			name:        "correlated count in filter",
			query:       `*[count(*[references(^._id)]) > 2]`,
			wantFinding: true,
		},
		{
			name:        "correlated count in projection",
			query:       `*[_type == "author"]{"posts": count(*[author._ref == ^._id])}`,
			wantFinding: true,
		},
		{
			name:        "uncorrelated count",
			query:       `*[count(*[_type == "post"]) > 2]`,
			wantFinding: false,
		},
		{
			name:        "count over own array",
			query:       `*[count(tags[defined(@)]) > 2]`,
			wantFinding: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := runRule(t, tt.query, "count-in-correlated-subquery")
			if tt.wantFinding {
				assert.NotEmpty(t, findings, "expected count-in-correlated-subquery finding")
			} else {
				assert.Empty(t, findings, "unexpected count-in-correlated-subquery finding")
			}
		})
	}
}
