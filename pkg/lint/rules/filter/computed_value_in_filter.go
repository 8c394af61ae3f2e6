package filter

import (
	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint"
	"github.com/groqkit/groqkit/pkg/lint/internal/astutil"
)

func init() {
	lint.Register(ComputedValueInFilter)
}

// ComputedValueInFilter flags arithmetic inside filter constraints. A value
// computed per document cannot use an index.
var ComputedValueInFilter = lint.RuleDef{
	ID:          "computed-value-in-filter",
	Name:        "filter.computed_value",
	Group:       lint.GroupPerformance,
	Description: "Arithmetic inside a filter is recomputed per document and cannot be indexed.",
	Severity:    lint.SeverityWarning,
	Check:       checkComputedValueInFilter,
}

func checkComputedValueInFilter(ctx *lint.QueryContext) []lint.Finding {
	var findings []lint.Finding
	ast.Walk(ctx.Root, func(n ast.Expr, wc ast.WalkContext) {
		if !wc.InFilterConstraint {
			return
		}
		op, ok := n.(*ast.OpCall)
		if !ok || !ast.IsArithmetic(op.Op) {
			return
		}
		// Correlated subqueries compute against the outer item on purpose.
		if astutil.ContainsParentReference(op.Left) || astutil.ContainsParentReference(op.Right) {
			return
		}
		// Constant arithmetic folds away; only per-document computation hurts.
		if astutil.IsLiteral(op.Left) && astutil.IsLiteral(op.Right) {
			return
		}
		findings = append(findings, lint.Finding{
			Message: "Computed value in filter prevents index usage",
			Help:    "Precompute the value at write time or move the computation out of the filter.",
			Span:    op.Span(),
		})
	})
	return findings
}
