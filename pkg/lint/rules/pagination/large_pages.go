package pagination

import (
	"fmt"

	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint"
)

func init() {
	lint.Register(LargePages)
}

// maxPageSize is the largest first-page slice that goes unflagged.
const maxPageSize = 100

// LargePages flags first-page slices requesting more than maxPageSize items.
var LargePages = lint.RuleDef{
	ID:          "large-pages",
	Name:        "pagination.large_pages",
	Group:       lint.GroupPerformance,
	Description: "Fetching very large pages in one slice strains both server and client.",
	Severity:    lint.SeverityWarning,
	Check:       checkLargePages,
}

func checkLargePages(ctx *lint.QueryContext) []lint.Finding {
	var findings []lint.Finding
	ast.Walk(ctx.Root, func(n ast.Expr, _ ast.WalkContext) {
		slice, ok := n.(*ast.Slice)
		if !ok {
			return
		}
		if slice.Left != nil {
			start, ok := numericBound(slice.Left)
			if !ok || start != 0 {
				return
			}
		}
		end, ok := numericBound(slice.Right)
		if !ok || end <= maxPageSize {
			return
		}
		findings = append(findings, lint.Finding{
			Message: fmt.Sprintf("Slice requests up to %d items in one page", int(end)),
			Help:    "Page in smaller chunks; most consumers do not need more than 100 items at once.",
			Span:    slice.Span(),
		})
	})
	return findings
}
