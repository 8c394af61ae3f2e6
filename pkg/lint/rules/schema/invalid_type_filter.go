// Package schema contains rules that check queries against a schema snapshot.
package schema

import (
	"fmt"

	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint"
	"github.com/groqkit/groqkit/pkg/lint/internal/astutil"
	"github.com/groqkit/groqkit/pkg/lint/internal/suggest"
)

func init() {
	lint.Register(InvalidTypeFilter)
}

// InvalidTypeFilter flags `_type == "x"` comparisons in top-level filters
// where x is not a declared document type. Nested array filters are left
// alone: there `_type` discriminates object unions, not document types.
var InvalidTypeFilter = lint.RuleDef{
	ID:          "invalid-type-filter",
	Name:        "schema.invalid_type_filter",
	Group:       lint.GroupCorrectness,
	Description: "Filtering on a _type that no document type declares matches nothing.",
	Severity:    lint.SeverityError,
	NeedsSchema: true,
	Check:       checkInvalidTypeFilter,
}

func checkInvalidTypeFilter(ctx *lint.QueryContext) []lint.Finding {
	known := ctx.Schema.DocumentTypeNames()
	knownSet := make(map[string]bool, len(known))
	for _, name := range known {
		knownSet[name] = true
	}

	var findings []lint.Finding
	ast.Walk(ctx.Root, func(n ast.Expr, wc ast.WalkContext) {
		op, ok := n.(*ast.OpCall)
		if !ok {
			return
		}
		v, ok := astutil.TypeEquality(op)
		if !ok {
			return
		}
		f, inConstraint := owningFilter(n, wc)
		if !inConstraint || !astutil.IsTopLevelFilter(f) {
			return
		}
		name := v.Raw.(string)
		if knownSet[name] {
			return
		}
		finding := lint.Finding{
			Message: fmt.Sprintf("No document type named %q in the schema", name),
			Help:    "Check the type name against the schema's document types.",
			Span:    v.Span(),
		}
		for _, candidate := range suggest.Similar(name, known) {
			finding.Suggestions = append(finding.Suggestions, lint.Suggestion{
				Description: fmt.Sprintf("Did you mean %q?", candidate),
				Replacement: fmt.Sprintf("%q", candidate),
			})
		}
		findings = append(findings, finding)
	})
	return findings
}

// owningFilter returns the nearest enclosing Filter and whether the node sits
// in that filter's constraint rather than its base.
func owningFilter(n ast.Expr, wc ast.WalkContext) (*ast.Filter, bool) {
	for i := len(wc.Ancestors) - 1; i >= 0; i-- {
		f, ok := wc.Ancestors[i].(*ast.Filter)
		if !ok {
			continue
		}
		child := n
		if i+1 < len(wc.Ancestors) {
			child = wc.Ancestors[i+1]
		}
		return f, child == f.Constraint
	}
	return nil, false
}
