// Package order contains rules about the order() pipe function.
package order

import (
	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint"
	"github.com/groqkit/groqkit/pkg/lint/internal/astutil"
)

func init() {
	lint.Register(OrderOnExpr)
}

// OrderOnExpr flags order() arguments that are not plain attributes or one of
// the index-friendly wrappers lower(attr), dateTime(attr) and
// geo::distance(attr, literal). Ordering on anything else is computed per
// document and cannot use an index.
var OrderOnExpr = lint.RuleDef{
	ID:          "order-on-expr",
	Name:        "order.expression",
	Group:       lint.GroupPerformance,
	Description: "Ordering on a computed expression cannot use an index.",
	Severity:    lint.SeverityWarning,
	Check:       checkOrderOnExpr,
}

func checkOrderOnExpr(ctx *lint.QueryContext) []lint.Finding {
	var findings []lint.Finding
	ast.Walk(ctx.Root, func(n ast.Expr, _ ast.WalkContext) {
		pipe, ok := n.(*ast.PipeFuncCall)
		if !ok || pipe.Name != "order" {
			return
		}
		for _, arg := range pipe.Args {
			if allowedOrderArg(arg) {
				continue
			}
			findings = append(findings, lint.Finding{
				Message: "order() argument is a computed expression",
				Help:    "Order on a stored attribute, or one of lower(attr), dateTime(attr), geo::distance(attr, point).",
				Span:    arg.Span(),
			})
		}
	})
	return findings
}

// allowedOrderArg accepts an orderable term, optionally wrapped in an
// asc/desc direction marker.
func allowedOrderArg(e ast.Expr) bool {
	switch e := e.(type) {
	case *ast.Asc:
		return allowedOrderTerm(e.Base)
	case *ast.Desc:
		return allowedOrderTerm(e.Base)
	default:
		return allowedOrderTerm(e)
	}
}

func allowedOrderTerm(e ast.Expr) bool {
	if isAttributeChain(e) {
		return true
	}
	call, ok := e.(*ast.FuncCall)
	if !ok {
		return false
	}
	switch {
	case (call.Namespace == "" || call.Namespace == "global") &&
		(call.Name == "lower" || call.Name == "dateTime"):
		return len(call.Args) == 1 && isAttributeChain(call.Args[0])
	case call.Namespace == "geo" && call.Name == "distance":
		return len(call.Args) == 2 &&
			isAttributeChain(call.Args[0]) &&
			astutil.IsLiteral(call.Args[1])
	default:
		return false
	}
}

// isAttributeChain accepts `name` and dotted chains such as `slug.current`.
func isAttributeChain(e ast.Expr) bool {
	for {
		attr, ok := e.(*ast.AccessAttribute)
		if !ok {
			return false
		}
		if attr.Base == nil {
			return true
		}
		e = attr.Base
	}
}
