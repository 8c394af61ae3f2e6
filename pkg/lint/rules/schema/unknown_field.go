package schema

import (
	"fmt"

	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint"
	"github.com/groqkit/groqkit/pkg/lint/internal/astutil"
	"github.com/groqkit/groqkit/pkg/lint/internal/suggest"
	schemapkg "github.com/groqkit/groqkit/pkg/schema"
)

func init() {
	lint.Register(UnknownField)
}

// builtinFields exist on every document regardless of schema.
var builtinFields = map[string]bool{
	"_id":        true,
	"_type":      true,
	"_rev":       true,
	"_createdAt": true,
	"_updatedAt": true,
}

// UnknownField flags bare attribute reads in a projection over a filter that
// pins `_type` to one document type, when the attribute is neither a declared
// field of that type nor a built-in. It stays quiet whenever the item type
// cannot be resolved to a single known document type.
var UnknownField = lint.RuleDef{
	ID:          "unknown-field",
	Name:        "schema.unknown_field",
	Group:       lint.GroupCorrectness,
	Description: "Projecting a field the document type does not declare always yields null.",
	Severity:    lint.SeverityWarning,
	NeedsSchema: true,
	Check:       checkUnknownField,
}

func checkUnknownField(ctx *lint.QueryContext) []lint.Finding {
	var findings []lint.Finding
	ast.Walk(ctx.Root, func(n ast.Expr, wc ast.WalkContext) {
		proj, ok := n.(*ast.Projection)
		if !ok || proj.Object == nil {
			return
		}
		typeName, ok := resolvedTypeName(proj, wc)
		if !ok {
			return
		}
		docType, ok := ctx.Schema.DocumentType(typeName)
		if !ok || len(docType.Fields) == 0 {
			return
		}
		findings = append(findings, checkProjectionFields(proj.Object, docType)...)
	})
	return findings
}

// checkProjectionFields validates each bare attribute value in the object
// against the resolved type. Nested expressions and explicit keys over
// non-bare values are left alone.
func checkProjectionFields(obj *ast.Object, docType *schemapkg.Type) []lint.Finding {
	var findings []lint.Finding
	for _, attr := range obj.Attributes {
		av, ok := attr.(*ast.ObjectAttributeValue)
		if !ok {
			continue
		}
		access, ok := av.Value.(*ast.AccessAttribute)
		if !ok || access.Base != nil {
			continue
		}
		if builtinFields[access.Name] || docType.HasField(access.Name) {
			continue
		}
		finding := lint.Finding{
			Message: fmt.Sprintf("Type %q has no field %q", docType.Name, access.Name),
			Help:    "The projection will always yield null for this key.",
			Span:    access.Span(),
		}
		for _, candidate := range suggest.Similar(access.Name, docType.FieldNames()) {
			finding.Suggestions = append(finding.Suggestions, lint.Suggestion{
				Description: fmt.Sprintf("Did you mean %q?", candidate),
				Replacement: candidate,
			})
		}
		findings = append(findings, finding)
	}
	return findings
}

// resolvedTypeName finds the document type a projection's items have, by
// locating the top-level filter the projection maps over and reading its
// single `_type` equality. Projections rooted at the current item (inside a
// map such as `*[...][]{...}`) resolve through the nearest enclosing Map.
func resolvedTypeName(proj *ast.Projection, wc ast.WalkContext) (string, bool) {
	if f := filterInChain(proj.Base); f != nil {
		if !astutil.IsTopLevelFilter(f) {
			return "", false
		}
		return astutil.SingleTypeFilter(f.Constraint)
	}
	if _, ok := ast.Root(proj.Base).(*ast.This); !ok {
		return "", false
	}
	m, ok := wc.Nearest(func(a ast.Expr) bool {
		_, ok := a.(*ast.Map)
		return ok
	}).(*ast.Map)
	if !ok {
		return "", false
	}
	f := filterInChain(m.Base)
	if f == nil || !astutil.IsTopLevelFilter(f) {
		return "", false
	}
	return astutil.SingleTypeFilter(f.Constraint)
}

// filterInChain walks the traversal base chain and returns the first Filter
// it meets, without descending into constraints or projections.
func filterInChain(e ast.Expr) *ast.Filter {
	for e != nil {
		switch n := e.(type) {
		case *ast.Filter:
			return n
		case *ast.AccessAttribute:
			e = n.Base
		case *ast.AccessElement:
			e = n.Base
		case *ast.Slice:
			e = n.Base
		case *ast.ArrayCoerce:
			e = n.Base
		case *ast.Deref:
			e = n.Base
		case *ast.PipeFuncCall:
			e = n.Base
		case *ast.Group:
			e = n.Expr
		default:
			return nil
		}
	}
	return nil
}
