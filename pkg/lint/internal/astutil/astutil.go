// Package astutil provides shared AST predicates for lint rules.
package astutil

import "github.com/groqkit/groqkit/pkg/ast"

// ContainsParentReference reports whether a `^` parent marker appears
// anywhere in the subtree. Patterns correlating with an outer query are
// exempt from several filter performance rules.
func ContainsParentReference(e ast.Expr) bool {
	found := false
	ast.Walk(e, func(n ast.Expr, _ ast.WalkContext) {
		if _, ok := n.(*ast.Parent); ok {
			found = true
		}
	})
	return found
}

// IsLiteral reports whether an expression is a compile-time constant: a
// literal value, a parameter, a zero-argument now() call, or arithmetic
// over such operands. The recursive closure matters: `2 + 1` is literal,
// `price + 1` is not.
func IsLiteral(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Value, *ast.Parameter:
		return true
	case *ast.Group:
		return IsLiteral(e.Expr)
	case *ast.Neg:
		return IsLiteral(e.Expr)
	case *ast.Pos:
		return IsLiteral(e.Expr)
	case *ast.FuncCall:
		return (e.Namespace == "" || e.Namespace == "global") &&
			e.Name == "now" && len(e.Args) == 0
	case *ast.OpCall:
		return ast.IsArithmetic(e.Op) && IsLiteral(e.Left) && IsLiteral(e.Right)
	default:
		return false
	}
}

// CountDerefs counts dereference nodes in the subtree.
func CountDerefs(e ast.Expr) int {
	count := 0
	ast.Walk(e, func(n ast.Expr, _ ast.WalkContext) {
		if _, ok := n.(*ast.Deref); ok {
			count++
		}
	})
	return count
}

// ContainsFilter reports whether a Filter node appears in the subtree.
func ContainsFilter(e ast.Expr) bool {
	found := false
	ast.Walk(e, func(n ast.Expr, _ ast.WalkContext) {
		if _, ok := n.(*ast.Filter); ok {
			found = true
		}
	})
	return found
}

// TypeEquality matches a `_type == "literal"` comparison in either operand
// order and returns the literal value node.
func TypeEquality(op *ast.OpCall) (*ast.Value, bool) {
	if op.Op != "==" {
		return nil, false
	}
	if isBareTypeAttribute(op.Left) {
		if v, ok := stringValue(op.Right); ok {
			return v, true
		}
	}
	if isBareTypeAttribute(op.Right) {
		if v, ok := stringValue(op.Left); ok {
			return v, true
		}
	}
	return nil, false
}

// SingleTypeFilter returns the document type name when the constraint pins
// `_type` to exactly one literal, which is what makes a filter's item type
// concrete enough for field checking.
func SingleTypeFilter(constraint ast.Expr) (string, bool) {
	var names []string
	ast.Walk(constraint, func(n ast.Expr, _ ast.WalkContext) {
		if op, ok := n.(*ast.OpCall); ok {
			if v, ok := TypeEquality(op); ok {
				names = append(names, v.Raw.(string))
			}
		}
	})
	if len(names) == 1 {
		return names[0], true
	}
	return "", false
}

// IsTopLevelFilter reports whether the filter's base resolves to the `*`
// dataset root. Nested array filters discriminate object unions, not
// document types.
func IsTopLevelFilter(f *ast.Filter) bool {
	_, ok := ast.Root(f.Base).(*ast.Everything)
	return ok
}

func isBareTypeAttribute(e ast.Expr) bool {
	attr, ok := e.(*ast.AccessAttribute)
	return ok && attr.Base == nil && attr.Name == "_type"
}

func stringValue(e ast.Expr) (*ast.Value, bool) {
	v, ok := e.(*ast.Value)
	if !ok {
		return nil, false
	}
	_, isString := v.Raw.(string)
	return v, isString
}
