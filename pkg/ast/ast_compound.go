package ast

// ---------- Objects, arrays and alternatives ----------

// Object is an object literal: `{..}`.
type Object struct {
	base
	Attributes []ObjectAttribute
}

// ObjectAttribute is one entry of an object literal.
type ObjectAttribute interface {
	Expr
	objectAttribute()
}

// ObjectAttributeValue is a keyed attribute: `"name": value` or the
// shorthand `name`.
type ObjectAttributeValue struct {
	base
	Name  string
	Value Expr
}

func (*ObjectAttributeValue) objectAttribute() {}

// ObjectSplat spreads an expression's attributes into the object: `...` or
// `...expr`. A nil Value is the bare form and spreads the current item.
type ObjectSplat struct {
	base
	Value Expr
}

func (*ObjectSplat) objectAttribute() {}

// ObjectConditionalSplat spreads Value only when Condition holds:
// `cond => value`.
type ObjectConditionalSplat struct {
	base
	Condition Expr
	Value     Expr
}

func (*ObjectConditionalSplat) objectAttribute() {}

// Array is an array literal: `[a, ...b]`.
type Array struct {
	base
	Elements []*ArrayElement
}

// ArrayElement is one element of an array literal; Splat marks `...expr`.
type ArrayElement struct {
	base
	Value Expr
	Splat bool
}

// Tuple is a parenthesized expression list: `(a, b)`.
type Tuple struct {
	base
	Members []Expr
}

// Range is a standalone range value: `1..5` or `1...5`.
type Range struct {
	base
	Left      Expr
	Right     Expr
	Exclusive bool
}

// InRange tests membership in a range: `base in 1..5`.
type InRange struct {
	base
	Base      Expr
	Left      Expr
	Right     Expr
	Exclusive bool
}

// Select is the select() branching function.
type Select struct {
	base
	Alternatives []*SelectAlternative
	Fallback     Expr // optional trailing unconditional value
}

// SelectAlternative is one `cond => value` arm of a select().
type SelectAlternative struct {
	base
	Condition Expr
	Value     Expr
}
