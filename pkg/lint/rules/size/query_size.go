// Package size contains rules about raw query text size.
package size

import (
	"fmt"

	"github.com/groqkit/groqkit/pkg/lint"
)

func init() {
	lint.Register(VeryLargeQuery)
	lint.Register(ExtremelyLargeQuery)
}

const (
	veryLargeBytes      = 10 << 10  // 10 KiB
	extremelyLargeBytes = 100 << 10 // 100 KiB
)

// VeryLargeQuery flags queries whose source text exceeds 10 KiB.
var VeryLargeQuery = lint.RuleDef{
	ID:          "very-large-query",
	Name:        "size.very_large",
	Group:       lint.GroupPerformance,
	Description: "Queries over 10 KiB are slow to parse and usually hide duplicated fragments.",
	Severity:    lint.SeverityWarning,
	Check:       checkQuerySize(veryLargeBytes, "10 KiB"),
}

// ExtremelyLargeQuery flags queries over 100 KiB. When it fires, the
// very-large-query finding for the same query is dropped.
var ExtremelyLargeQuery = lint.RuleDef{
	ID:          "extremely-large-query",
	Name:        "size.extremely_large",
	Group:       lint.GroupPerformance,
	Description: "Queries over 100 KiB typically exceed request size limits.",
	Severity:    lint.SeverityError,
	Supersedes:  []string{"very-large-query"},
	Check:       checkQuerySize(extremelyLargeBytes, "100 KiB"),
}

func checkQuerySize(limit int, label string) lint.CheckFunc {
	return func(ctx *lint.QueryContext) []lint.Finding {
		if len(ctx.Query) <= limit {
			return nil
		}
		return []lint.Finding{{
			Message: fmt.Sprintf("Query is %d bytes, exceeding %s", len(ctx.Query), label),
			Help:    "Split the query or generate projections from shared fragments at the call site.",
			Span:    ctx.Root.Span(),
		}}
	}
}
