package format

import (
	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/parser"
)

// Options controls formatting output.
type Options struct {
	Width  int // maximum line width; default 80
	Indent int // spaces per indentation level; default 2
}

// DefaultOptions returns the standard formatting options.
func DefaultOptions() Options {
	return Options{Width: 80, Indent: 2}
}

func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Indent <= 0 {
		o.Indent = 2
	}
	return o
}

// Format pretty-prints a parsed expression. It is total over any valid AST;
// an unknown node variant panics (a core bug, never partial output).
func Format(e ast.Expr, opts Options) string {
	opts = opts.normalized()
	p := newPrinter(opts)
	return render(p.exprDoc(e), opts.Width, opts.Indent)
}

// Query parses and formats a query in one call.
func Query(input string, opts Options) (string, error) {
	expr, err := parser.Parse(input)
	if err != nil {
		return "", err
	}
	return Format(expr, opts), nil
}
