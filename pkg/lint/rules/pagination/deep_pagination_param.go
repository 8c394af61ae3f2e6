package pagination

import (
	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint"
)

func init() {
	lint.Register(DeepPaginationParam)
}

// DeepPaginationParam flags slices whose start bound is a parameter. The
// current parser rejects parameters in slice position, so this rule cannot
// fire today; it is kept for parsers that accept the syntax.
var DeepPaginationParam = lint.RuleDef{
	ID:          "deep-pagination-param",
	Name:        "pagination.deep_param",
	Group:       lint.GroupPerformance,
	Description: "A parameterized slice start usually means unbounded offset paging.",
	Severity:    lint.SeverityWarning,
	Check:       checkDeepPaginationParam,
}

func checkDeepPaginationParam(ctx *lint.QueryContext) []lint.Finding {
	var findings []lint.Finding
	ast.Walk(ctx.Root, func(n ast.Expr, _ ast.WalkContext) {
		slice, ok := n.(*ast.Slice)
		if !ok {
			return
		}
		if _, ok := slice.Left.(*ast.Parameter); !ok {
			return
		}
		findings = append(findings, lint.Finding{
			Message: "Slice start is a parameter; offset paging degrades as the offset grows",
			Help:    "Use keyset pagination: filter on the last seen sort key instead of slicing by offset.",
			Span:    slice.Span(),
		})
	})
	return findings
}
