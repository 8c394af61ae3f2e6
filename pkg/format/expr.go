package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/groqkit/groqkit/pkg/ast"
)

// Printer lowers expression nodes to layout docs.
type Printer struct {
	opts Options
}

func newPrinter(opts Options) *Printer {
	return &Printer{opts: opts}
}

// exprDoc maps any expression node to its layout doc. The switch is
// exhaustive over the node variants; an unlisted type is a core bug and
// panics rather than dropping content.
func (p *Printer) exprDoc(e ast.Expr) doc {
	switch e := e.(type) {
	case *ast.Everything:
		return text("*")
	case *ast.This:
		return text("@")
	case *ast.Parent:
		return text("^")
	case *ast.Value:
		return text(formatValue(e.Raw))
	case *ast.Parameter:
		return text("$" + e.Name)
	case *ast.Context:
		return text(e.Key + "()")

	case *ast.AccessAttribute:
		return p.accessAttributeDoc(e)
	case *ast.AccessElement:
		return cat(p.exprDoc(e.Base), text("["), p.exprDoc(e.Index), text("]"))
	case *ast.Filter:
		return p.filterDoc(e)
	case *ast.Slice:
		return cat(p.exprDoc(e.Base), text("["), p.exprDoc(e.Left),
			text(rangeOp(e.Exclusive)), p.exprDoc(e.Right), text("]"))
	case *ast.ArrayCoerce:
		return cat(p.exprDoc(e.Base), text("[]"))
	case *ast.Deref:
		return cat(p.exprDoc(e.Base), text("->"))
	case *ast.Map:
		return cat(p.exprDoc(e.Base), p.mapExprDoc(e.Expr))
	case *ast.FlatMap:
		return cat(p.exprDoc(e.Base), p.mapExprDoc(e.Expr))
	case *ast.Projection:
		return p.projectionDoc(e)
	case *ast.Group:
		return cat(text("("), p.exprDoc(e.Expr), text(")"))

	case *ast.Object:
		return p.objectDoc(e)
	case *ast.ObjectAttributeValue:
		return p.objectAttributeDoc(e)
	case *ast.ObjectSplat:
		if e.Value == nil {
			return text("...")
		}
		return cat(text("..."), p.exprDoc(e.Value))
	case *ast.ObjectConditionalSplat:
		return cat(p.exprDoc(e.Condition), text(" => "), p.exprDoc(e.Value))
	case *ast.Array:
		return p.arrayDoc(e)
	case *ast.ArrayElement:
		if e.Splat {
			return cat(text("..."), p.exprDoc(e.Value))
		}
		return p.exprDoc(e.Value)
	case *ast.Tuple:
		members := make([]doc, len(e.Members))
		for i, m := range e.Members {
			members[i] = p.exprDoc(m)
		}
		return cat(text("("), join(text(", "), members), text(")"))
	case *ast.Range:
		return cat(p.exprDoc(e.Left), text(rangeOp(e.Exclusive)), p.exprDoc(e.Right))
	case *ast.InRange:
		return cat(p.exprDoc(e.Base), text(" in "), p.exprDoc(e.Left),
			text(rangeOp(e.Exclusive)), p.exprDoc(e.Right))
	case *ast.Select:
		return p.selectDoc(e)
	case *ast.SelectAlternative:
		return cat(p.exprDoc(e.Condition), text(" => "), p.exprDoc(e.Value))

	case *ast.And:
		return group{cat(p.exprDoc(e.Left), line{" "}, text("&& "), p.exprDoc(e.Right))}
	case *ast.Or:
		return group{cat(p.exprDoc(e.Left), line{" "}, text("|| "), p.exprDoc(e.Right))}
	case *ast.Not:
		return cat(text("!"), p.exprDoc(e.Expr))
	case *ast.Neg:
		return cat(text("-"), p.exprDoc(e.Expr))
	case *ast.Pos:
		return cat(text("+"), p.exprDoc(e.Expr))
	case *ast.OpCall:
		return cat(p.exprDoc(e.Left), text(" "+e.Op+" "), p.exprDoc(e.Right))
	case *ast.FuncCall:
		return cat(text(funcName(e.Namespace, e.Name)), p.argsDoc(e.Args))
	case *ast.PipeFuncCall:
		return group{cat(p.exprDoc(e.Base),
			indent{cat(line{" "}, text("| "+e.Name), p.argsDoc(e.Args))})}
	case *ast.Asc:
		return cat(p.exprDoc(e.Base), text(" asc"))
	case *ast.Desc:
		return cat(p.exprDoc(e.Base), text(" desc"))

	default:
		panic(fmt.Sprintf("format: unknown node type %T", e))
	}
}

// accessAttributeDoc prints attribute access. A dereference base touches the
// name directly (`author->name`); any other base uses a dot.
func (p *Printer) accessAttributeDoc(e *ast.AccessAttribute) doc {
	if e.Base == nil {
		return text(e.Name)
	}
	if _, ok := e.Base.(*ast.Deref); ok {
		return cat(p.exprDoc(e.Base), text(e.Name))
	}
	return cat(p.exprDoc(e.Base), text("."), text(e.Name))
}

// filterDoc prints `base[constraint]`, letting a long constraint break onto
// its own indented line.
func (p *Printer) filterDoc(e *ast.Filter) doc {
	return cat(p.exprDoc(e.Base), group{cat(
		text("["),
		indent{cat(line{""}, p.exprDoc(e.Constraint))},
		line{""},
		text("]"),
	)})
}

// projectionDoc prints `base {..}`. A This base is implicit and omitted; a
// dereference base touches the brace (`author->{ name }`).
func (p *Printer) projectionDoc(e *ast.Projection) doc {
	obj := p.objectDoc(e.Object)
	switch e.Base.(type) {
	case *ast.This:
		return obj
	case *ast.Deref:
		return cat(p.exprDoc(e.Base), obj)
	default:
		return cat(p.exprDoc(e.Base), text(" "), obj)
	}
}

// mapExprDoc prints the mapped expression of a Map with the implicit current
// item elided, collapsing `a[] @->{..}` into the conventional `a[]->{..}`.
// Expressions not rooted at the current item print in full after a space.
func (p *Printer) mapExprDoc(e ast.Expr) doc {
	if _, ok := ast.Root(e).(*ast.This); !ok {
		return cat(text(" "), p.exprDoc(e))
	}
	return p.elideThisDoc(e)
}

// elideThisDoc prints a This-rooted traversal chain without the leading `@`.
func (p *Printer) elideThisDoc(e ast.Expr) doc {
	switch e := e.(type) {
	case *ast.This:
		return text("")
	case *ast.Deref:
		return cat(p.elideThisDoc(e.Base), text("->"))
	case *ast.AccessAttribute:
		if _, ok := e.Base.(*ast.Deref); ok {
			return cat(p.elideThisDoc(e.Base), text(e.Name))
		}
		if _, ok := e.Base.(*ast.This); ok {
			return text("." + e.Name)
		}
		return cat(p.elideThisDoc(e.Base), text("."), text(e.Name))
	case *ast.ArrayCoerce:
		return cat(p.elideThisDoc(e.Base), text("[]"))
	case *ast.AccessElement:
		return cat(p.elideThisDoc(e.Base), text("["), p.exprDoc(e.Index), text("]"))
	case *ast.Filter:
		return cat(p.elideThisDoc(e.Base), group{cat(
			text("["),
			indent{cat(line{""}, p.exprDoc(e.Constraint))},
			line{""},
			text("]"),
		)})
	case *ast.Slice:
		return cat(p.elideThisDoc(e.Base), text("["), p.exprDoc(e.Left),
			text(rangeOp(e.Exclusive)), p.exprDoc(e.Right), text("]"))
	case *ast.Projection:
		obj := p.objectDoc(e.Object)
		switch e.Base.(type) {
		case *ast.This:
			return cat(text(" "), obj)
		case *ast.Deref:
			return cat(p.elideThisDoc(e.Base), obj)
		default:
			return cat(p.elideThisDoc(e.Base), text(" "), obj)
		}
	case *ast.Map:
		return cat(p.elideThisDoc(e.Base), p.mapExprDoc(e.Expr))
	case *ast.FlatMap:
		return cat(p.elideThisDoc(e.Base), p.mapExprDoc(e.Expr))
	default:
		return cat(text(" "), p.exprDoc(e))
	}
}

// objectDoc prints an object literal, spacing the braces and breaking each
// attribute onto its own line when the flat form overflows.
func (p *Printer) objectDoc(o *ast.Object) doc {
	if len(o.Attributes) == 0 {
		return text("{}")
	}
	attrs := make([]doc, len(o.Attributes))
	for i, a := range o.Attributes {
		attrs[i] = p.exprDoc(a)
	}
	return group{cat(
		text("{"),
		indent{cat(line{" "}, join(cat(text(","), line{" "}), attrs))},
		line{" "},
		text("}"),
	)}
}

// objectAttributeDoc elides the key when the value's leading attribute name
// equals it; everything else gets an explicitly quoted key.
func (p *Printer) objectAttributeDoc(e *ast.ObjectAttributeValue) doc {
	if ast.LeadingAttribute(e.Value) == e.Name {
		return p.exprDoc(e.Value)
	}
	return cat(text(quoteString(e.Name)), text(": "), p.exprDoc(e.Value))
}

func (p *Printer) arrayDoc(a *ast.Array) doc {
	if len(a.Elements) == 0 {
		return text("[]")
	}
	elems := make([]doc, len(a.Elements))
	for i, e := range a.Elements {
		elems[i] = p.exprDoc(e)
	}
	return group{cat(
		text("["),
		indent{cat(line{""}, join(cat(text(","), line{" "}), elems))},
		line{""},
		text("]"),
	)}
}

func (p *Printer) argsDoc(args []ast.Expr) doc {
	if len(args) == 0 {
		return text("()")
	}
	docs := make([]doc, len(args))
	for i, a := range args {
		docs[i] = p.exprDoc(a)
	}
	return group{cat(
		text("("),
		indent{cat(line{""}, join(cat(text(","), line{" "}), docs))},
		line{""},
		text(")"),
	)}
}

func (p *Printer) selectDoc(s *ast.Select) doc {
	arms := make([]doc, 0, len(s.Alternatives)+1)
	for _, alt := range s.Alternatives {
		arms = append(arms, p.exprDoc(alt))
	}
	if s.Fallback != nil {
		arms = append(arms, p.exprDoc(s.Fallback))
	}
	if len(arms) == 0 {
		return text("select()")
	}
	return cat(text("select"), group{cat(
		text("("),
		indent{cat(line{""}, join(cat(text(","), line{" "}), arms))},
		line{""},
		text(")"),
	)})
}

func funcName(namespace, name string) string {
	if namespace == "" || namespace == "global" {
		return name
	}
	return namespace + "::" + name
}

func rangeOp(exclusive bool) string {
	if exclusive {
		return "..."
	}
	return ".."
}

// formatValue prints a literal in canonical form.
func formatValue(raw any) string {
	switch v := raw.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return quoteString(v)
	default:
		panic(fmt.Sprintf("format: unknown literal type %T", raw))
	}
}

// quoteString re-quotes a string literal, escaping quotes, backslashes and
// control characters.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
