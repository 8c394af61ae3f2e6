package ast

import "fmt"

// WalkContext carries traversal state. It is passed by value and extended
// immutably as the walker descends, so visitors never observe mutation from
// sibling subtrees and may retain a copy safely.
type WalkContext struct {
	// Ancestors is the path from the root to the current node's parent,
	// root first.
	Ancestors []Expr

	// InFilterConstraint is true while the walker is inside a Filter
	// node's constraint expression (not its base).
	InFilterConstraint bool
}

// Parent returns the immediate parent of the current node, or nil at the root.
func (c WalkContext) Parent() Expr {
	if len(c.Ancestors) == 0 {
		return nil
	}
	return c.Ancestors[len(c.Ancestors)-1]
}

// Nearest returns the closest ancestor satisfying pred, or nil.
func (c WalkContext) Nearest(pred func(Expr) bool) Expr {
	for i := len(c.Ancestors) - 1; i >= 0; i-- {
		if pred(c.Ancestors[i]) {
			return c.Ancestors[i]
		}
	}
	return nil
}

// push returns a context extended with one more ancestor. The slice header is
// copied; appends from sibling subtrees reuse capacity but never alias a
// visible element, because each visit sees only its own length.
func (c WalkContext) push(n Expr) WalkContext {
	c.Ancestors = append(c.Ancestors[:len(c.Ancestors):len(c.Ancestors)], n)
	return c
}

// inConstraint returns a context flagged as inside a filter constraint.
func (c WalkContext) inConstraint() WalkContext {
	c.InFilterConstraint = true
	return c
}

// Visitor is called for every node in pre-order. Visiting cannot prune the
// traversal.
type Visitor func(node Expr, ctx WalkContext)

// Walk traverses the tree depth-first in pre-order, visiting every node
// exactly once. Children are visited in declaration order, so traversal is
// deterministic. Entering a Filter's constraint sets ctx.InFilterConstraint
// for the duration of that subtree.
func Walk(root Expr, visit Visitor) {
	walk(root, WalkContext{}, visit)
}

func walk(n Expr, ctx WalkContext, visit Visitor) {
	if n == nil {
		return
	}
	visit(n, ctx)
	children(n, ctx.push(n), visit)
}

// children descends into every child of n in declaration order.
// The switch is exhaustive over the node variants; an unlisted type is a
// core bug.
func children(n Expr, ctx WalkContext, visit Visitor) {
	switch n := n.(type) {
	case *Everything, *This, *Parent, *Value, *Parameter, *Context:
		// Leaves.

	case *AccessAttribute:
		walk(n.Base, ctx, visit)
	case *AccessElement:
		walk(n.Base, ctx, visit)
		walk(n.Index, ctx, visit)
	case *Filter:
		walk(n.Base, ctx, visit)
		walk(n.Constraint, ctx.inConstraint(), visit)
	case *Slice:
		walk(n.Base, ctx, visit)
		walk(n.Left, ctx, visit)
		walk(n.Right, ctx, visit)
	case *ArrayCoerce:
		walk(n.Base, ctx, visit)
	case *Deref:
		walk(n.Base, ctx, visit)
	case *Map:
		walk(n.Base, ctx, visit)
		walk(n.Expr, ctx, visit)
	case *FlatMap:
		walk(n.Base, ctx, visit)
		walk(n.Expr, ctx, visit)
	case *Projection:
		walk(n.Base, ctx, visit)
		walk(n.Object, ctx, visit)
	case *Group:
		walk(n.Expr, ctx, visit)

	case *Object:
		for _, attr := range n.Attributes {
			walk(attr, ctx, visit)
		}
	case *ObjectAttributeValue:
		walk(n.Value, ctx, visit)
	case *ObjectSplat:
		walk(n.Value, ctx, visit)
	case *ObjectConditionalSplat:
		walk(n.Condition, ctx, visit)
		walk(n.Value, ctx, visit)
	case *Array:
		for _, elem := range n.Elements {
			walk(elem, ctx, visit)
		}
	case *ArrayElement:
		walk(n.Value, ctx, visit)
	case *Tuple:
		for _, m := range n.Members {
			walk(m, ctx, visit)
		}
	case *Range:
		walk(n.Left, ctx, visit)
		walk(n.Right, ctx, visit)
	case *InRange:
		walk(n.Base, ctx, visit)
		walk(n.Left, ctx, visit)
		walk(n.Right, ctx, visit)
	case *Select:
		for _, alt := range n.Alternatives {
			walk(alt, ctx, visit)
		}
		walk(n.Fallback, ctx, visit)
	case *SelectAlternative:
		walk(n.Condition, ctx, visit)
		walk(n.Value, ctx, visit)

	case *And:
		walk(n.Left, ctx, visit)
		walk(n.Right, ctx, visit)
	case *Or:
		walk(n.Left, ctx, visit)
		walk(n.Right, ctx, visit)
	case *Not:
		walk(n.Expr, ctx, visit)
	case *Neg:
		walk(n.Expr, ctx, visit)
	case *Pos:
		walk(n.Expr, ctx, visit)
	case *OpCall:
		walk(n.Left, ctx, visit)
		walk(n.Right, ctx, visit)
	case *FuncCall:
		for _, arg := range n.Args {
			walk(arg, ctx, visit)
		}
	case *PipeFuncCall:
		walk(n.Base, ctx, visit)
		for _, arg := range n.Args {
			walk(arg, ctx, visit)
		}
	case *Asc:
		walk(n.Base, ctx, visit)
	case *Desc:
		walk(n.Base, ctx, visit)

	default:
		panic(fmt.Sprintf("ast: walk of unknown node type %T", n))
	}
}
