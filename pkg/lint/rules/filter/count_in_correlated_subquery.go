package filter

import (
	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint"
	"github.com/groqkit/groqkit/pkg/lint/internal/astutil"
)

func init() {
	lint.Register(CountInCorrelatedSubquery)
}

// CountInCorrelatedSubquery flags count() over a filtered subquery that is
// correlated with the outer query through a `^` reference. Each outer item
// re-runs the inner scan.
var CountInCorrelatedSubquery = lint.RuleDef{
	ID:          "count-in-correlated-subquery",
	Name:        "filter.correlated_count",
	Group:       lint.GroupPerformance,
	Description: "count() over a correlated subquery re-scans the dataset for every outer item.",
	Severity:    lint.SeverityWarning,
	Check:       checkCountInCorrelatedSubquery,
}

func checkCountInCorrelatedSubquery(ctx *lint.QueryContext) []lint.Finding {
	var findings []lint.Finding
	ast.Walk(ctx.Root, func(n ast.Expr, _ ast.WalkContext) {
		call, ok := n.(*ast.FuncCall)
		if !ok || call.Name != "count" || len(call.Args) != 1 {
			return
		}
		if call.Namespace != "" && call.Namespace != "global" {
			return
		}
		arg := call.Args[0]
		if !astutil.ContainsFilter(arg) || !astutil.ContainsParentReference(arg) {
			return
		}
		findings = append(findings, lint.Finding{
			Message: "count() over a correlated subquery runs once per outer item",
			Help:    "Denormalize the count onto the document at write time, or compute it in a separate query.",
			Span:    call.Span(),
		})
	})
	return findings
}
