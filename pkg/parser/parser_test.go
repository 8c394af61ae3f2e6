package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/parser"
)

func parse(t *testing.T, query string) ast.Expr {
	t.Helper()
	expr, err := parser.Parse(query)
	require.NoError(t, err)
	require.NotNil(t, expr)
	return expr
}

func TestParseLeaves(t *testing.T) {
	tests := []struct {
		name  string
		query string
		check func(t *testing.T, e ast.Expr)
	}{
		{
			name:  "everything",
			query: `*`,
			check: func(t *testing.T, e ast.Expr) {
				assert.IsType(t, &ast.Everything{}, e)
			},
		},
		{
			name:  "this",
			query: `@`,
			check: func(t *testing.T, e ast.Expr) {
				assert.IsType(t, &ast.This{}, e)
			},
		},
		{
			name:  "parent",
			query: `^`,
			check: func(t *testing.T, e ast.Expr) {
				assert.IsType(t, &ast.Parent{}, e)
			},
		},
		{
			name:  "parameter",
			query: `$slug`,
			check: func(t *testing.T, e ast.Expr) {
				p, ok := e.(*ast.Parameter)
				require.True(t, ok)
				assert.Equal(t, "slug", p.Name)
			},
		},
		{
			name:  "number",
			query: `42.5`,
			check: func(t *testing.T, e ast.Expr) {
				v, ok := e.(*ast.Value)
				require.True(t, ok)
				assert.Equal(t, 42.5, v.Raw)
			},
		},
		{
			name:  "string with escapes",
			query: `"a\n\"b\""`,
			check: func(t *testing.T, e ast.Expr) {
				v, ok := e.(*ast.Value)
				require.True(t, ok)
				assert.Equal(t, "a\n\"b\"", v.Raw)
			},
		},
		{
			name:  "unicode escape",
			query: `"\u0041"`,
			check: func(t *testing.T, e ast.Expr) {
				v, ok := e.(*ast.Value)
				require.True(t, ok)
				assert.Equal(t, "A", v.Raw)
			},
		},
		{
			name:  "booleans and null",
			query: `[true, false, null]`,
			check: func(t *testing.T, e ast.Expr) {
				arr, ok := e.(*ast.Array)
				require.True(t, ok)
				require.Len(t, arr.Elements, 3)
				assert.Equal(t, true, arr.Elements[0].Value.(*ast.Value).Raw)
				assert.Equal(t, false, arr.Elements[1].Value.(*ast.Value).Raw)
				assert.Nil(t, arr.Elements[2].Value.(*ast.Value).Raw)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, parse(t, tt.query))
		})
	}
}

func TestParseTraversals(t *testing.T) {
	t.Run("filter over everything", func(t *testing.T) {
		f, ok := parse(t, `*[_type == "post"]`).(*ast.Filter)
		require.True(t, ok)
		assert.IsType(t, &ast.Everything{}, f.Base)
		op, ok := f.Constraint.(*ast.OpCall)
		require.True(t, ok)
		assert.Equal(t, "==", op.Op)
	})

	t.Run("dot chain", func(t *testing.T) {
		outer, ok := parse(t, `slug.current`).(*ast.AccessAttribute)
		require.True(t, ok)
		assert.Equal(t, "current", outer.Name)
		inner, ok := outer.Base.(*ast.AccessAttribute)
		require.True(t, ok)
		assert.Equal(t, "slug", inner.Name)
		assert.Nil(t, inner.Base)
	})

	t.Run("string bracket is attribute access", func(t *testing.T) {
		attr, ok := parse(t, `@["og:title"]`).(*ast.AccessAttribute)
		require.True(t, ok)
		assert.Equal(t, "og:title", attr.Name)
		assert.IsType(t, &ast.This{}, attr.Base)
	})

	t.Run("element access", func(t *testing.T) {
		el, ok := parse(t, `tags[0]`).(*ast.AccessElement)
		require.True(t, ok)
		assert.Equal(t, float64(0), el.Index.(*ast.Value).Raw)
	})

	t.Run("bare deref", func(t *testing.T) {
		d, ok := parse(t, `author->`).(*ast.Deref)
		require.True(t, ok)
		attr, ok := d.Base.(*ast.AccessAttribute)
		require.True(t, ok)
		assert.Equal(t, "author", attr.Name)
	})

	t.Run("deref attribute", func(t *testing.T) {
		attr, ok := parse(t, `author->name`).(*ast.AccessAttribute)
		require.True(t, ok)
		assert.Equal(t, "name", attr.Name)
		assert.IsType(t, &ast.Deref{}, attr.Base)
	})

	t.Run("slice inclusive vs exclusive", func(t *testing.T) {
		incl, ok := parse(t, `*[0..10]`).(*ast.Slice)
		require.True(t, ok)
		assert.False(t, incl.Exclusive)

		excl, ok := parse(t, `*[0...10]`).(*ast.Slice)
		require.True(t, ok)
		assert.True(t, excl.Exclusive)
	})

	t.Run("negative slice bound", func(t *testing.T) {
		s, ok := parse(t, `*[0..-1]`).(*ast.Slice)
		require.True(t, ok)
		assert.IsType(t, &ast.Neg{}, s.Right)
	})

	t.Run("array coercion", func(t *testing.T) {
		c, ok := parse(t, `tags[]`).(*ast.ArrayCoerce)
		require.True(t, ok)
		attr, ok := c.Base.(*ast.AccessAttribute)
		require.True(t, ok)
		assert.Equal(t, "tags", attr.Name)
	})

	t.Run("projection over filter", func(t *testing.T) {
		proj, ok := parse(t, `*[_type == "post"]{title}`).(*ast.Projection)
		require.True(t, ok)
		assert.IsType(t, &ast.Filter{}, proj.Base)
		require.Len(t, proj.Object.Attributes, 1)
		av, ok := proj.Object.Attributes[0].(*ast.ObjectAttributeValue)
		require.True(t, ok)
		assert.Equal(t, "title", av.Name)
	})
}

func TestParseMapComposition(t *testing.T) {
	t.Run("coerce then deref projection", func(t *testing.T) {
		m, ok := parse(t, `tags[]->{title}`).(*ast.Map)
		require.True(t, ok)
		assert.IsType(t, &ast.ArrayCoerce{}, m.Base)

		proj, ok := m.Expr.(*ast.Projection)
		require.True(t, ok)
		assert.IsType(t, &ast.Deref{}, proj.Base)
		d := proj.Base.(*ast.Deref)
		assert.IsType(t, &ast.This{}, d.Base)
	})

	t.Run("coerce then dot access", func(t *testing.T) {
		m, ok := parse(t, `tags[].label`).(*ast.Map)
		require.True(t, ok)
		attr, ok := m.Expr.(*ast.AccessAttribute)
		require.True(t, ok)
		assert.Equal(t, "label", attr.Name)
		assert.IsType(t, &ast.This{}, attr.Base)
	})

	t.Run("coerce alone stays a coercion", func(t *testing.T) {
		_, ok := parse(t, `tags[]`).(*ast.ArrayCoerce)
		assert.True(t, ok)
	})
}

func TestParseOperators(t *testing.T) {
	t.Run("precedence and over or", func(t *testing.T) {
		or, ok := parse(t, `a == 1 && b == 2 || c == 3`).(*ast.Or)
		require.True(t, ok)
		assert.IsType(t, &ast.And{}, or.Left)
	})

	t.Run("arithmetic precedence", func(t *testing.T) {
		add, ok := parse(t, `a + b * c`).(*ast.OpCall)
		require.True(t, ok)
		assert.Equal(t, "+", add.Op)
		mul, ok := add.Right.(*ast.OpCall)
		require.True(t, ok)
		assert.Equal(t, "*", mul.Op)
	})

	t.Run("exponent right associative", func(t *testing.T) {
		outer, ok := parse(t, `a ** b ** c`).(*ast.OpCall)
		require.True(t, ok)
		assert.Equal(t, "**", outer.Op)
		inner, ok := outer.Right.(*ast.OpCall)
		require.True(t, ok)
		assert.Equal(t, "**", inner.Op)
	})

	t.Run("in range", func(t *testing.T) {
		ir, ok := parse(t, `score in 1..5`).(*ast.InRange)
		require.True(t, ok)
		assert.False(t, ir.Exclusive)
	})

	t.Run("in array", func(t *testing.T) {
		op, ok := parse(t, `status in ["a", "b"]`).(*ast.OpCall)
		require.True(t, ok)
		assert.Equal(t, "in", op.Op)
		assert.IsType(t, &ast.Array{}, op.Right)
	})

	t.Run("match", func(t *testing.T) {
		op, ok := parse(t, `title match "go*"`).(*ast.OpCall)
		require.True(t, ok)
		assert.Equal(t, "match", op.Op)
	})

	t.Run("unary not", func(t *testing.T) {
		n, ok := parse(t, `!defined(slug)`).(*ast.Not)
		require.True(t, ok)
		assert.IsType(t, &ast.FuncCall{}, n.Expr)
	})

	t.Run("tuple vs group", func(t *testing.T) {
		_, ok := parse(t, `(a, b)`).(*ast.Tuple)
		assert.True(t, ok)
		g, ok := parse(t, `(a)`).(*ast.Group)
		require.True(t, ok)
		assert.IsType(t, &ast.AccessAttribute{}, g.Expr)
	})
}

func TestParseCalls(t *testing.T) {
	t.Run("namespaced call", func(t *testing.T) {
		call, ok := parse(t, `geo::distance(location, $origin)`).(*ast.FuncCall)
		require.True(t, ok)
		assert.Equal(t, "geo", call.Namespace)
		assert.Equal(t, "distance", call.Name)
		require.Len(t, call.Args, 2)
	})

	t.Run("pipe with direction wrappers", func(t *testing.T) {
		pipe, ok := parse(t, `* | order(publishedAt desc, name asc, _id)`).(*ast.PipeFuncCall)
		require.True(t, ok)
		assert.Equal(t, "order", pipe.Name)
		require.Len(t, pipe.Args, 3)
		assert.IsType(t, &ast.Desc{}, pipe.Args[0])
		assert.IsType(t, &ast.Asc{}, pipe.Args[1])
		assert.IsType(t, &ast.AccessAttribute{}, pipe.Args[2])
	})

	t.Run("slice after pipe", func(t *testing.T) {
		s, ok := parse(t, `* | order(publishedAt desc)[0..9]`).(*ast.Slice)
		require.True(t, ok)
		assert.IsType(t, &ast.PipeFuncCall{}, s.Base)
	})

	t.Run("select with fallback", func(t *testing.T) {
		sel, ok := parse(t, `select(a > 1 => "x", b > 2 => "y", "z")`).(*ast.Select)
		require.True(t, ok)
		require.Len(t, sel.Alternatives, 2)
		require.NotNil(t, sel.Fallback)
	})
}

func TestParseObjects(t *testing.T) {
	proj := parse(t, `*{..., "key": value, cond => {x}, title}`).(*ast.Projection)
	attrs := proj.Object.Attributes
	require.Len(t, attrs, 4)

	splat, ok := attrs[0].(*ast.ObjectSplat)
	require.True(t, ok)
	assert.Nil(t, splat.Value)

	keyed, ok := attrs[1].(*ast.ObjectAttributeValue)
	require.True(t, ok)
	assert.Equal(t, "key", keyed.Name)

	cond, ok := attrs[2].(*ast.ObjectConditionalSplat)
	require.True(t, ok)
	assert.NotNil(t, cond.Condition)

	short, ok := attrs[3].(*ast.ObjectAttributeValue)
	require.True(t, ok)
	assert.Equal(t, "title", short.Name)
}

func TestParseSpans(t *testing.T) {
	f := parse(t, `*[_type == "post"]`).(*ast.Filter)
	span := f.Span()
	assert.Equal(t, 0, span.Start.Offset)
	assert.Equal(t, 1, span.Start.Line)
	assert.Equal(t, 1, span.Start.Column)
	assert.True(t, span.End.Offset >= len(`*[_type == "post"]`)-1)

	op := f.Constraint.(*ast.OpCall)
	assert.Equal(t, 2, op.Span().Start.Offset)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "empty", query: ``},
		{name: "whitespace only", query: `   `},
		{name: "unterminated filter", query: `*[`},
		{name: "unterminated string", query: `*[title == "oops]`},
		{name: "trailing garbage", query: `* ]`},
		{name: "param in slice", query: `*[$start..$end]`},
		{name: "lone operator", query: `&&`},
		{name: "bad escape", query: `"\q"`},
		{name: "missing object value", query: `*{"key":}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.query)
			require.Error(t, err)
			var perr *parser.ParseError
			require.ErrorAs(t, err, &perr)
			assert.NotEmpty(t, perr.Message)
		})
	}
}

func TestParseErrorPositions(t *testing.T) {
	_, err := parser.Parse("*[\n  title == \"oops]")
	require.Error(t, err)
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Pos.Line)
}

func TestParseComments(t *testing.T) {
	expr := parse(t, "// leading comment\n*[_type == \"post\"] // trailing\n")
	assert.IsType(t, &ast.Filter{}, expr)
}
