package join

import (
	"fmt"

	"github.com/groqkit/groqkit/pkg/lint"
	"github.com/groqkit/groqkit/pkg/lint/internal/astutil"
)

func init() {
	lint.Register(ManyJoins)
}

// maxDerefs is the number of dereferences a query may contain before the
// fan-out is worth a warning.
const maxDerefs = 10

// ManyJoins emits a single finding when a query dereferences more than
// maxDerefs times in total.
var ManyJoins = lint.RuleDef{
	ID:          "many-joins",
	Name:        "join.many",
	Group:       lint.GroupPerformance,
	Description: "A query with many dereferences fans out into many document fetches.",
	Severity:    lint.SeverityWarning,
	Check:       checkManyJoins,
}

func checkManyJoins(ctx *lint.QueryContext) []lint.Finding {
	count := astutil.CountDerefs(ctx.Root)
	if count <= maxDerefs {
		return nil
	}
	return []lint.Finding{{
		Message: fmt.Sprintf("Query contains %d dereferences (limit %d)", count, maxDerefs),
		Help:    "Split the query, denormalize frequently joined fields, or fetch related documents in a follow-up query.",
		Span:    ctx.Root.Span(),
	}}
}
