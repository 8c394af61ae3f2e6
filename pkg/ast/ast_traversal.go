package ast

// ---------- Traversals ----------

// AccessAttribute reads an attribute. A nil Base means a root-level
// attribute resolved against the current item (`name`); a non-nil Base is a
// dot or arrow chain (`base.name`, `base->name`).
type AccessAttribute struct {
	base
	Base Expr
	Name string
}

// AccessElement indexes into an array: `base[0]`.
type AccessElement struct {
	base
	Base  Expr
	Index Expr
}

// Filter keeps the elements of Base for which Constraint holds: `base[cond]`.
type Filter struct {
	base
	Base       Expr
	Constraint Expr
}

// Slice takes a subrange of an array: `base[0..10]` or `base[0...10]`.
// Left and Right are Value numbers today; they are typed Expr so a
// parameter-typed bound remains representable.
type Slice struct {
	base
	Base      Expr
	Left      Expr
	Right     Expr
	Exclusive bool // true for `...`
}

// ArrayCoerce coerces Base to an array: `base[]`.
type ArrayCoerce struct {
	base
	Base Expr
}

// Deref follows a reference to the referenced document: `base->`.
type Deref struct {
	base
	Base Expr
}

// Map applies Expr to each element of Base. Produced by traversals that
// continue past an array coercion, e.g. `a[]->{..}` is
// Map(ArrayCoerce(a), Projection(Deref(This))).
type Map struct {
	base
	Base Expr
	Expr Expr
}

// FlatMap applies Expr to each element of Base and flattens one level.
// Not produced by this parser, but covered by the walker and printer so
// programmatically built trees still print.
type FlatMap struct {
	base
	Base Expr
	Expr Expr
}

// Projection shapes each item of Base with an object literal: `base{..}`.
// A This base means the projection applies to the item already in scope and
// prints without the base.
type Projection struct {
	base
	Base   Expr
	Object *Object
}

// Group is an explicitly parenthesized expression. Kept as a node so
// formatting preserves the author's parentheses.
type Group struct {
	base
	Expr Expr
}
