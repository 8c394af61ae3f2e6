package ast

// ---------- Operators and calls ----------

// And is boolean conjunction: `left && right`.
type And struct {
	base
	Left  Expr
	Right Expr
}

// Or is boolean disjunction: `left || right`.
type Or struct {
	base
	Left  Expr
	Right Expr
}

// Not is boolean negation: `!expr`.
type Not struct {
	base
	Expr Expr
}

// Neg is arithmetic negation: `-expr`.
type Neg struct {
	base
	Expr Expr
}

// Pos is the unary plus: `+expr`.
type Pos struct {
	base
	Expr Expr
}

// OpCall is a binary operator application. Op is the surface syntax:
// == != < > <= >= + - * / % ** in match.
type OpCall struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

// FuncCall is a function invocation, optionally namespaced:
// `count(..)`, `geo::distance(..)`.
type FuncCall struct {
	base
	Namespace string // empty or "global" for the default namespace
	Name      string
	Args      []Expr
}

// PipeFuncCall is a piped aggregate call: `base | order(..)`.
type PipeFuncCall struct {
	base
	Base Expr
	Name string
	Args []Expr
}

// Asc marks an ascending sort key inside order(): `attr asc`.
type Asc struct {
	base
	Base Expr
}

// Desc marks a descending sort key inside order(): `attr desc`.
type Desc struct {
	base
	Base Expr
}

// Comparison operators accepted by OpCall.
var comparisonOps = map[string]bool{
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
}

// Arithmetic operators accepted by OpCall.
var arithmeticOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
}

// IsComparison reports whether op is a comparison operator.
func IsComparison(op string) bool { return comparisonOps[op] }

// IsArithmetic reports whether op is one of + - * /.
func IsArithmetic(op string) bool { return arithmeticOps[op] }
