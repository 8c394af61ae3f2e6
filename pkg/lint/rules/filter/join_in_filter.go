// Package filter contains rules about filter constraint expressions.
package filter

import (
	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint"
)

func init() {
	lint.Register(JoinInFilter)
}

// JoinInFilter flags dereferences inside filter constraints. A join in a
// filter runs for every candidate document and defeats indexing.
var JoinInFilter = lint.RuleDef{
	ID:          "join-in-filter",
	Name:        "filter.join",
	Group:       lint.GroupPerformance,
	Description: "Dereferencing inside a filter joins on every candidate document.",
	Severity:    lint.SeverityError,
	Check:       checkJoinInFilter,
}

func checkJoinInFilter(ctx *lint.QueryContext) []lint.Finding {
	var findings []lint.Finding
	ast.Walk(ctx.Root, func(n ast.Expr, wc ast.WalkContext) {
		if !wc.InFilterConstraint {
			return
		}
		if _, ok := n.(*ast.Deref); !ok {
			return
		}
		findings = append(findings, lint.Finding{
			Message: "Dereference (->) inside a filter causes a join per candidate document",
			Help:    "Restructure the query so the reference is resolved in the projection, or filter on the reference's _ref instead.",
			Span:    n.Span(),
		})
	})
	return findings
}
