package filter

import (
	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint"
	"github.com/groqkit/groqkit/pkg/lint/internal/astutil"
)

func init() {
	lint.Register(NonLiteralComparison)
}

// NonLiteralComparison flags comparisons where neither side is a constant,
// which compare two per-document values and cannot be served by an index.
var NonLiteralComparison = lint.RuleDef{
	ID:          "non-literal-comparison",
	Name:        "filter.non_literal_comparison",
	Group:       lint.GroupPerformance,
	Description: "Comparing two non-constant values in a filter cannot use an index.",
	Severity:    lint.SeverityWarning,
	Check:       checkNonLiteralComparison,
}

func checkNonLiteralComparison(ctx *lint.QueryContext) []lint.Finding {
	var findings []lint.Finding
	ast.Walk(ctx.Root, func(n ast.Expr, wc ast.WalkContext) {
		if !wc.InFilterConstraint {
			return
		}
		op, ok := n.(*ast.OpCall)
		if !ok || !ast.IsComparison(op.Op) {
			return
		}
		if astutil.IsLiteral(op.Left) || astutil.IsLiteral(op.Right) {
			return
		}
		if astutil.ContainsParentReference(op.Left) || astutil.ContainsParentReference(op.Right) {
			return
		}
		findings = append(findings, lint.Finding{
			Message: "Comparison between two non-constant values in a filter",
			Help:    "Compare against a literal or parameter so the filter can be indexed.",
			Span:    op.Span(),
		})
	})
	return findings
}
