package filter

import (
	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint"
)

func init() {
	lint.Register(MatchOnID)
}

// MatchOnID flags `_id match ...` in a filter. The match operator tokenizes
// its operands, so it neither uses the id index nor matches full ids the way
// equality does.
var MatchOnID = lint.RuleDef{
	ID:          "match-on-id",
	Name:        "filter.match_on_id",
	Group:       lint.GroupPerformance,
	Description: "Using match on _id bypasses the id index and tokenizes the id.",
	Severity:    lint.SeverityWarning,
	Check:       checkMatchOnID,
}

func checkMatchOnID(ctx *lint.QueryContext) []lint.Finding {
	var findings []lint.Finding
	ast.Walk(ctx.Root, func(n ast.Expr, _ ast.WalkContext) {
		op, ok := n.(*ast.OpCall)
		if !ok || op.Op != "match" {
			return
		}
		if !isIDAttribute(op.Left) {
			return
		}
		findings = append(findings, lint.Finding{
			Message: "match on _id tokenizes the id and skips the id index",
			Help:    "Use `_id == $id` for exact lookup, or `_id in path(...)` for prefix queries.",
			Span:    op.Span(),
		})
	})
	return findings
}

func isIDAttribute(e ast.Expr) bool {
	attr, ok := e.(*ast.AccessAttribute)
	return ok && attr.Base == nil && attr.Name == "_id"
}
