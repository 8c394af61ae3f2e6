package join

import (
	"fmt"
	"sort"

	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint"
	"github.com/groqkit/groqkit/pkg/token"
)

func init() {
	lint.Register(RepeatedDereference)
}

// RepeatedDereference flags the same reference attribute dereferenced more
// than once within one projection. Each occurrence is a separate fetch of
// the same document.
var RepeatedDereference = lint.RuleDef{
	ID:          "repeated-dereference",
	Name:        "join.repeated",
	Group:       lint.GroupPerformance,
	Description: "Dereferencing the same attribute repeatedly in one projection fetches the same document multiple times.",
	Severity:    lint.SeverityWarning,
	Check:       checkRepeatedDereference,
}

func checkRepeatedDereference(ctx *lint.QueryContext) []lint.Finding {
	type key struct {
		scope ast.Expr // projection whose body contains the deref
		name  string
	}
	counts := make(map[key]int)
	firstSpan := make(map[key]token.Span)

	ast.Walk(ctx.Root, func(n ast.Expr, wc ast.WalkContext) {
		deref, ok := n.(*ast.Deref)
		if !ok {
			return
		}
		name := ast.LeadingAttribute(deref)
		if name == "" {
			return
		}
		scope := owningProjection(n, wc)
		if scope == nil {
			return
		}
		k := key{scope: scope, name: name}
		counts[k]++
		if counts[k] == 1 {
			firstSpan[k] = deref.Span()
		}
	})

	var repeated []key
	for k, c := range counts {
		if c > 1 {
			repeated = append(repeated, k)
		}
	}
	// Map iteration is random; order by source position, then name.
	sort.Slice(repeated, func(i, j int) bool {
		si, sj := firstSpan[repeated[i]], firstSpan[repeated[j]]
		if si.Start.Offset != sj.Start.Offset {
			return si.Start.Offset < sj.Start.Offset
		}
		return repeated[i].name < repeated[j].name
	})

	var findings []lint.Finding
	for _, k := range repeated {
		findings = append(findings, lint.Finding{
			Message: fmt.Sprintf("Attribute %q is dereferenced %d times in the same projection", k.name, counts[k]),
			Help:    "Dereference once into a nested projection and select the needed fields there.",
			Span:    firstSpan[k],
		})
	}
	return findings
}

// owningProjection returns the nearest enclosing Projection whose object body
// contains the node. A projection the node only feeds as a base does not
// count; its derefs belong to the projection body around it.
func owningProjection(n ast.Expr, wc ast.WalkContext) *ast.Projection {
	child := n
	for i := len(wc.Ancestors) - 1; i >= 0; i-- {
		if p, ok := wc.Ancestors[i].(*ast.Projection); ok && child == ast.Expr(p.Object) {
			return p
		}
		child = wc.Ancestors[i]
	}
	return nil
}
