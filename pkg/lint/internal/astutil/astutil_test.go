package astutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/lint/internal/astutil"
	"github.com/groqkit/groqkit/pkg/parser"
)

func mustParse(t *testing.T, query string) ast.Expr {
	t.Helper()
	expr, err := parser.Parse(query)
	require.NoError(t, err)
	return expr
}

func TestIsLiteral(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "number", query: `1`, want: true},
		{name: "string", query: `"x"`, want: true},
		{name: "parameter", query: `$type`, want: true},
		{name: "negated number", query: `-3`, want: true},
		{name: "now call", query: `now()`, want: true},
		{name: "arithmetic over literals", query: `(2 + 1) * 3`, want: true},
		{name: "arithmetic over now", query: `now() - 86400`, want: true},
		{name: "attribute", query: `title`, want: false},
		{name: "arithmetic over attribute", query: `price + 1`, want: false},
		{name: "other function call", query: `count($items)`, want: false},
		{name: "now with arguments", query: `now(1)`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, astutil.IsLiteral(mustParse(t, tt.query)))
		})
	}
}

func TestTypeEquality(t *testing.T) {
	tests := []struct {
		name  string
		query string
		value string
		ok    bool
	}{
		{name: "attribute first", query: `_type == "post"`, value: "post", ok: true},
		{name: "literal first", query: `"post" == _type`, value: "post", ok: true},
		{name: "wrong operator", query: `_type != "post"`, ok: false},
		{name: "non-string literal", query: `_type == 1`, ok: false},
		{name: "other attribute", query: `kind == "post"`, ok: false},
		{name: "qualified attribute", query: `parent._type == "post"`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, isOp := mustParse(t, tt.query).(*ast.OpCall)
			require.True(t, isOp)

			v, ok := astutil.TypeEquality(op)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.NotNil(t, v)
				assert.Equal(t, tt.value, v.Raw)
			}
		})
	}
}

func TestSingleTypeFilter(t *testing.T) {
	tests := []struct {
		name       string
		constraint string
		typeName   string
		ok         bool
	}{
		{name: "single equality", constraint: `_type == "post"`, typeName: "post", ok: true},
		{name: "with extra conditions", constraint: `_type == "post" && defined(slug)`, typeName: "post", ok: true},
		{name: "union of types", constraint: `_type == "post" || _type == "page"`, ok: false},
		{name: "no type condition", constraint: `defined(slug)`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := astutil.SingleTypeFilter(mustParse(t, tt.constraint))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.typeName, name)
		})
	}
}

func TestIsTopLevelFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "dataset root", query: `*[_type == "post"]`, want: true},
		{name: "chained from root", query: `*[_type == "post"][defined(slug)]`, want: true},
		{name: "grouped root", query: `(*)[_type == "post"]`, want: true},
		{name: "attribute base", query: `tags[label == "go"]`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := mustParse(t, tt.query).(*ast.Filter)
			require.True(t, ok)
			assert.Equal(t, tt.want, astutil.IsTopLevelFilter(f))
		})
	}
}

func TestContainsParentReference(t *testing.T) {
	assert.True(t, astutil.ContainsParentReference(mustParse(t, `references(^._id)`)))
	assert.True(t, astutil.ContainsParentReference(mustParse(t, `^._id == author._ref`)))
	assert.False(t, astutil.ContainsParentReference(mustParse(t, `_id == author._ref`)))
}

func TestContainsFilter(t *testing.T) {
	assert.True(t, astutil.ContainsFilter(mustParse(t, `count(tags[label == "go"])`)))
	assert.False(t, astutil.ContainsFilter(mustParse(t, `count(tags)`)))
}

func TestCountDerefs(t *testing.T) {
	assert.Equal(t, 0, astutil.CountDerefs(mustParse(t, `title`)))
	assert.Equal(t, 1, astutil.CountDerefs(mustParse(t, `author->name`)))
	assert.Equal(t, 2, astutil.CountDerefs(mustParse(t, `author->team->name`)))
}
