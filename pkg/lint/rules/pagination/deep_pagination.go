// Package pagination contains rules about slice-based result paging.
package pagination

import (
	"fmt"

	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint"
)

func init() {
	lint.Register(DeepPagination)
}

// deepStart is the slice start offset from which paging is considered deep.
const deepStart = 1000

// DeepPagination flags slices starting at a large literal offset. Offset
// paging skips and discards every row before the start on each request.
var DeepPagination = lint.RuleDef{
	ID:          "deep-pagination",
	Name:        "pagination.deep",
	Group:       lint.GroupPerformance,
	Description: "Slicing from a large offset scans and discards every earlier result.",
	Severity:    lint.SeverityWarning,
	Check:       checkDeepPagination,
}

func checkDeepPagination(ctx *lint.QueryContext) []lint.Finding {
	var findings []lint.Finding
	ast.Walk(ctx.Root, func(n ast.Expr, _ ast.WalkContext) {
		slice, ok := n.(*ast.Slice)
		if !ok {
			return
		}
		start, ok := numericBound(slice.Left)
		if !ok || start < deepStart {
			return
		}
		findings = append(findings, lint.Finding{
			Message: fmt.Sprintf("Slice starts at offset %d; deep offset paging scans all skipped results", int(start)),
			Help:    "Use keyset pagination: filter on the last seen sort key instead of slicing by offset.",
			Span:    slice.Span(),
		})
	})
	return findings
}

// numericBound extracts a literal numeric slice bound, looking through a
// leading minus sign.
func numericBound(e ast.Expr) (float64, bool) {
	switch e := e.(type) {
	case *ast.Value:
		f, ok := e.Raw.(float64)
		return f, ok
	case *ast.Neg:
		f, ok := numericBound(e.Expr)
		return -f, ok
	default:
		return 0, false
	}
}
