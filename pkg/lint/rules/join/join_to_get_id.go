// Package join contains rules about dereference (join) usage.
package join

import (
	"fmt"

	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/format"
	"github.com/groqkit/groqkit/pkg/lint"
)

func init() {
	lint.Register(JoinToGetID)
}

// JoinToGetID flags `ref->_id`. A reference already stores the target id in
// its _ref field, so the join fetches a document only to read back a value
// the source document had all along.
var JoinToGetID = lint.RuleDef{
	ID:          "join-to-get-id",
	Name:        "join.get_id",
	Group:       lint.GroupPerformance,
	Description: "Dereferencing only to read _id; the reference's _ref field holds the same value.",
	Severity:    lint.SeverityWarning,
	Check:       checkJoinToGetID,
}

func checkJoinToGetID(ctx *lint.QueryContext) []lint.Finding {
	var findings []lint.Finding
	ast.Walk(ctx.Root, func(n ast.Expr, _ ast.WalkContext) {
		attr, ok := n.(*ast.AccessAttribute)
		if !ok || attr.Name != "_id" {
			return
		}
		deref, ok := attr.Base.(*ast.Deref)
		if !ok {
			return
		}
		replacement := refReplacement(deref.Base)
		finding := lint.Finding{
			Message: "Dereference used only to read _id",
			Help:    "Read the _ref field of the reference instead of joining.",
			Span:    attr.Span(),
		}
		if replacement != "" {
			finding.Suggestions = []lint.Suggestion{{
				Description: fmt.Sprintf("Replace with %s", replacement),
				Replacement: replacement,
			}}
		}
		findings = append(findings, finding)
	})
	return findings
}

// refReplacement renders `base._ref` for the suggestion. A nil base means the
// deref applies to the current item, which prints as a bare `_ref`.
func refReplacement(base ast.Expr) string {
	var expr ast.Expr
	if base == nil {
		expr = &ast.AccessAttribute{Name: "_ref"}
	} else if _, ok := base.(*ast.This); ok {
		expr = &ast.AccessAttribute{Name: "_ref"}
	} else {
		expr = &ast.AccessAttribute{Base: base, Name: "_ref"}
	}
	return format.Format(expr, format.DefaultOptions())
}
