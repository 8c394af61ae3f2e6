package ast

// LeadingAttribute returns the root attribute name an expression reads, or
// "" when no single name can be inferred. It recurses through dereference,
// projection, array coercion and map, and accepts a plain attribute access
// only at the root (a dot chain such as `slug.current` yields "").
//
// The object-literal shorthand relies on this: `{ title }` and
// `{ author-> }` infer their keys, `{ slug.current }` cannot.
func LeadingAttribute(e Expr) string {
	switch e := e.(type) {
	case *AccessAttribute:
		if e.Base == nil {
			return e.Name
		}
		return ""
	case *Deref:
		return LeadingAttribute(e.Base)
	case *Projection:
		return LeadingAttribute(e.Base)
	case *ArrayCoerce:
		return LeadingAttribute(e.Base)
	case *Map:
		return LeadingAttribute(e.Base)
	default:
		return ""
	}
}

// Root unwraps base chains down to the innermost expression: the thing a
// traversal ultimately reads from. Group nodes are looked through.
func Root(e Expr) Expr {
	for {
		switch n := e.(type) {
		case *AccessAttribute:
			if n.Base == nil {
				return n
			}
			e = n.Base
		case *AccessElement:
			e = n.Base
		case *Filter:
			e = n.Base
		case *Slice:
			e = n.Base
		case *ArrayCoerce:
			e = n.Base
		case *Deref:
			e = n.Base
		case *Map:
			e = n.Base
		case *FlatMap:
			e = n.Base
		case *Projection:
			e = n.Base
		case *PipeFuncCall:
			e = n.Base
		case *Group:
			e = n.Expr
		default:
			return e
		}
		if e == nil {
			return nil
		}
	}
}
