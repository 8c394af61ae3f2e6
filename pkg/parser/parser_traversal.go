package parser

import (
	"fmt"

	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/token"
)

// parseTraversal applies traversal suffixes to base: attribute access,
// dereference, filters, slices, element access, array coercion and
// projections. These bind tighter than any infix operator.
func (p *Parser) parseTraversal(base ast.Expr) ast.Expr {
	for {
		start := p.token.Pos

		switch p.token.Type {
		case token.DOT:
			p.nextToken()
			if !p.check(token.IDENT) {
				p.addError(fmt.Sprintf(ErrExpectedToken, p.token.Type, token.IDENT))
				return nil
			}
			n := &ast.AccessAttribute{Base: base, Name: p.token.Literal}
			p.nextToken()
			n.SetSpan(p.spanFrom(start))
			base = n

		case token.ARROW:
			p.nextToken()
			deref := &ast.Deref{Base: base}
			deref.SetSpan(p.spanFrom(start))
			if p.check(token.IDENT) {
				n := &ast.AccessAttribute{Base: deref, Name: p.token.Literal}
				p.nextToken()
				n.SetSpan(p.spanFrom(start))
				base = n
			} else {
				base = deref
			}

		case token.LBRACKET:
			next := p.parseBracket(base, start)
			if next == nil {
				return nil
			}
			base = next

		case token.LBRACE:
			obj := p.parseObject()
			if obj == nil {
				return nil
			}
			n := &ast.Projection{Base: base, Object: obj}
			n.SetSpan(p.spanFrom(start))
			base = n

		default:
			return base
		}
	}
}

// parseBracket disambiguates the `[` suffix: array coercion, slice, element
// access, string attribute access, or filter.
func (p *Parser) parseBracket(base ast.Expr, start token.Position) ast.Expr {
	// `base[]` — array coercion, possibly continuing into a Map.
	if p.checkPeek(token.RBRACKET) {
		p.nextToken()
		p.nextToken()
		coerce := &ast.ArrayCoerce{Base: base}
		coerce.SetSpan(p.spanFrom(start))
		return p.parseMapContinuation(coerce, start)
	}

	p.nextToken()
	inner := p.parseExpression()
	if inner == nil {
		return nil
	}
	if !p.expect(token.RBRACKET) {
		return nil
	}

	switch e := inner.(type) {
	case *ast.Range:
		return p.sliceFromRange(base, e, start)

	case *ast.Value:
		switch raw := e.Raw.(type) {
		case float64:
			n := &ast.AccessElement{Base: base, Index: e}
			n.SetSpan(p.spanFrom(start))
			return n
		case string:
			n := &ast.AccessAttribute{Base: base, Name: raw}
			n.SetSpan(p.spanFrom(start))
			return n
		}
	}

	n := &ast.Filter{Base: base, Constraint: inner}
	n.SetSpan(p.spanFrom(start))
	return n
}

// sliceFromRange validates the bounds of `base[a..b]`. Parameters are
// rejected in slice position, matching the upstream grammar.
func (p *Parser) sliceFromRange(base ast.Expr, r *ast.Range, start token.Position) ast.Expr {
	for _, bound := range []ast.Expr{r.Left, r.Right} {
		switch b := bound.(type) {
		case *ast.Parameter:
			p.errors = append(p.errors, &ParseError{Pos: b.Span().Start, Message: ErrParamInSlice})
			return nil
		case *ast.Value:
			if _, ok := b.Raw.(float64); !ok {
				p.addError("slice bounds must be numbers")
				return nil
			}
		case *ast.Neg:
			// Negative bounds count from the end.
		default:
			p.addError("slice bounds must be numbers")
			return nil
		}
	}
	n := &ast.Slice{Base: base, Left: r.Left, Right: r.Right, Exclusive: r.Exclusive}
	n.SetSpan(p.spanFrom(start))
	return n
}

// parseMapContinuation handles traversals continuing past an array coercion:
// `a[]->{..}`, `a[].b`, `a[]{..}`. The continuation is parsed against the
// implicit current item and wrapped in a Map over the coerced array, so
// `a[]->` becomes Map(ArrayCoerce(a), Deref(This)).
func (p *Parser) parseMapContinuation(coerce *ast.ArrayCoerce, start token.Position) ast.Expr {
	switch p.token.Type {
	case token.ARROW, token.DOT, token.LBRACE:
		this := &ast.This{}
		this.SetSpan(token.Span{Start: p.token.Pos, End: p.token.Pos})
		inner := p.parseTraversal(this)
		if inner == nil {
			return nil
		}
		n := &ast.Map{Base: coerce, Expr: inner}
		n.SetSpan(p.spanFrom(start))
		return n
	default:
		return coerce
	}
}
