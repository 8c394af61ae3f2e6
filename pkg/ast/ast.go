// Package ast defines the GROQ expression tree produced by the parser and
// consumed by the formatter and lint rules.
//
// Every node variant is a distinct struct implementing Expr, so the printer
// and walker can switch exhaustively. The tree is acyclic: children are
// exclusively owned by their parent and immutable once constructed.
package ast

import "github.com/groqkit/groqkit/pkg/token"

// Expr is the interface implemented by all GROQ expression nodes.
type Expr interface {
	// Span returns the source range this node was parsed from.
	// The zero Span is used for synthesized nodes.
	Span() token.Span

	exprNode()
}

// base carries the source span shared by every node variant.
type base struct {
	span token.Span
}

func (b *base) Span() token.Span { return b.span }

func (b *base) exprNode() {}

// SetSpan records the source range for a node. Used by the parser.
func (b *base) SetSpan(s token.Span) { b.span = s }

// ---------- Primitives ----------

// Everything is the `*` root: all documents in the dataset.
type Everything struct {
	base
}

// This is the `@` marker: the current item in scope.
type This struct {
	base
}

// Parent is the `^` marker: the enclosing query's current item.
// Used in correlated-subquery patterns.
type Parent struct {
	base
}

// Value is a literal: string, float64, bool, or nil.
type Value struct {
	base
	Raw any
}

// Parameter is a `$name` placeholder bound at execution time.
type Parameter struct {
	base
	Name string
}

// Context is an execution-context accessor such as before() or after().
type Context struct {
	base
	Key string
}
