package parser

import (
	"fmt"

	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/token"
)

// parsePrefixExpr parses unary operators and primary expressions, then any
// traversal suffixes hanging off them.
func (p *Parser) parsePrefixExpr() ast.Expr {
	start := p.token.Pos

	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		operand := p.parseExpressionWithPrecedence(precUnary)
		n := &ast.Not{Expr: operand}
		n.SetSpan(p.spanFrom(start))
		return n
	case token.MINUS:
		p.nextToken()
		operand := p.parseExpressionWithPrecedence(precUnary)
		n := &ast.Neg{Expr: operand}
		n.SetSpan(p.spanFrom(start))
		return n
	case token.PLUS:
		p.nextToken()
		operand := p.parseExpressionWithPrecedence(precUnary)
		n := &ast.Pos{Expr: operand}
		n.SetSpan(p.spanFrom(start))
		return n
	}

	primary := p.parsePrimary()
	if primary == nil {
		return nil
	}
	return p.parseTraversal(primary)
}

// parsePrimary parses a single primary expression with no suffixes.
func (p *Parser) parsePrimary() ast.Expr {
	start := p.token.Pos

	switch p.token.Type {
	case token.STAR:
		p.nextToken()
		n := &ast.Everything{}
		n.SetSpan(p.spanFrom(start))
		return n

	case token.AT:
		p.nextToken()
		n := &ast.This{}
		n.SetSpan(p.spanFrom(start))
		return n

	case token.CARET:
		p.nextToken()
		n := &ast.Parent{}
		n.SetSpan(p.spanFrom(start))
		return n

	case token.DOLLAR:
		p.nextToken()
		if !p.check(token.IDENT) {
			p.addError(fmt.Sprintf(ErrExpectedToken, p.token.Type, token.IDENT))
			return nil
		}
		n := &ast.Parameter{Name: p.token.Literal}
		p.nextToken()
		n.SetSpan(p.spanFrom(start))
		return n

	case token.NUMBER:
		return p.parseNumber()

	case token.STRING:
		n := &ast.Value{Raw: p.token.Literal}
		p.nextToken()
		n.SetSpan(p.spanFrom(start))
		return n

	case token.TRUE:
		p.nextToken()
		n := &ast.Value{Raw: true}
		n.SetSpan(p.spanFrom(start))
		return n

	case token.FALSE:
		p.nextToken()
		n := &ast.Value{Raw: false}
		n.SetSpan(p.spanFrom(start))
		return n

	case token.NULL:
		p.nextToken()
		n := &ast.Value{Raw: nil}
		n.SetSpan(p.spanFrom(start))
		return n

	case token.IDENT:
		return p.parseIdent()

	case token.LPAREN:
		return p.parseParenOrTuple()

	case token.LBRACKET:
		return p.parseArray()

	case token.LBRACE:
		obj := p.parseObject()
		if obj == nil {
			return nil
		}
		return obj

	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, p.token.Type))
		return nil
	}
}

// parseIdent parses an identifier: attribute access, function call, or a
// namespaced function call.
func (p *Parser) parseIdent() ast.Expr {
	start := p.token.Pos
	name := p.token.Literal

	// ns::name(args)
	if p.checkPeek(token.DCOLON) {
		p.nextToken()
		p.nextToken()
		if !p.check(token.IDENT) {
			p.addError(fmt.Sprintf(ErrExpectedToken, p.token.Type, token.IDENT))
			return nil
		}
		fname := p.token.Literal
		p.nextToken()
		if !p.expect(token.LPAREN) {
			return nil
		}
		args := p.parseCallArgs()
		n := &ast.FuncCall{Namespace: name, Name: fname, Args: args}
		n.SetSpan(p.spanFrom(start))
		return n
	}

	if p.checkPeek(token.LPAREN) {
		p.nextToken()
		p.nextToken()

		if name == "select" {
			return p.parseSelect(start)
		}

		args := p.parseCallArgs()

		// before()/after() read the execution context rather than call a
		// function.
		if (name == "before" || name == "after") && len(args) == 0 {
			n := &ast.Context{Key: name}
			n.SetSpan(p.spanFrom(start))
			return n
		}

		n := &ast.FuncCall{Name: name, Args: args}
		n.SetSpan(p.spanFrom(start))
		return n
	}

	p.nextToken()
	n := &ast.AccessAttribute{Name: name}
	n.SetSpan(p.spanFrom(start))
	return n
}

// parseSelect parses the arms of select(..); the opening paren is consumed.
func (p *Parser) parseSelect(start token.Position) ast.Expr {
	sel := &ast.Select{}
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		armStart := p.token.Pos
		e := p.parseExpression()
		if e == nil {
			return nil
		}
		if p.match(token.ARROWFAT) {
			v := p.parseExpression()
			alt := &ast.SelectAlternative{Condition: e, Value: v}
			alt.SetSpan(p.spanFrom(armStart))
			sel.Alternatives = append(sel.Alternatives, alt)
		} else {
			sel.Fallback = e
			if p.check(token.COMMA) {
				p.addError("select() fallback must be the last argument")
				return nil
			}
			break
		}
		if !p.match(token.COMMA) {
			break
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	sel.SetSpan(p.spanFrom(start))
	return sel
}

// parseParenOrTuple parses `(expr)` or `(a, b, ..)`.
func (p *Parser) parseParenOrTuple() ast.Expr {
	start := p.token.Pos
	p.nextToken()

	first := p.parseExpression()
	if first == nil {
		return nil
	}

	if p.check(token.COMMA) {
		tup := &ast.Tuple{Members: []ast.Expr{first}}
		for p.match(token.COMMA) {
			m := p.parseExpression()
			if m == nil {
				return nil
			}
			tup.Members = append(tup.Members, m)
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		tup.SetSpan(p.spanFrom(start))
		return tup
	}

	if !p.expect(token.RPAREN) {
		return nil
	}
	n := &ast.Group{Expr: first}
	n.SetSpan(p.spanFrom(start))
	return n
}

// parseArray parses an array literal `[a, ...b]`.
func (p *Parser) parseArray() ast.Expr {
	start := p.token.Pos
	p.nextToken()

	arr := &ast.Array{}
	for !p.check(token.RBRACKET) && !p.check(token.EOF) {
		elemStart := p.token.Pos
		splat := p.match(token.ELLIPSIS)
		v := p.parseExpression()
		if v == nil {
			return nil
		}
		elem := &ast.ArrayElement{Value: v, Splat: splat}
		elem.SetSpan(p.spanFrom(elemStart))
		arr.Elements = append(arr.Elements, elem)
		if !p.match(token.COMMA) {
			break
		}
	}
	if !p.expect(token.RBRACKET) {
		return nil
	}
	arr.SetSpan(p.spanFrom(start))
	return arr
}

// parseObject parses an object literal `{..}` including splats, conditional
// splats, keyed attributes and shorthand attributes.
func (p *Parser) parseObject() *ast.Object {
	start := p.token.Pos
	p.nextToken()

	obj := &ast.Object{}
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		attr := p.parseObjectAttribute()
		if attr == nil {
			return nil
		}
		obj.Attributes = append(obj.Attributes, attr)
		if !p.match(token.COMMA) {
			break
		}
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	obj.SetSpan(p.spanFrom(start))
	return obj
}

func (p *Parser) parseObjectAttribute() ast.ObjectAttribute {
	start := p.token.Pos

	// `...` or `...expr`
	if p.match(token.ELLIPSIS) {
		splat := &ast.ObjectSplat{}
		if !p.check(token.COMMA) && !p.check(token.RBRACE) {
			splat.Value = p.parseExpression()
			if splat.Value == nil {
				return nil
			}
		}
		splat.SetSpan(p.spanFrom(start))
		return splat
	}

	// `"key": value` and `key: value`
	if (p.check(token.STRING) || p.check(token.IDENT)) && p.checkPeek(token.COLON) {
		name := p.token.Literal
		p.nextToken()
		p.nextToken()
		v := p.parseExpression()
		if v == nil {
			return nil
		}
		attr := &ast.ObjectAttributeValue{Name: name, Value: v}
		attr.SetSpan(p.spanFrom(start))
		return attr
	}

	e := p.parseExpression()
	if e == nil {
		return nil
	}

	// `cond => value`
	if p.match(token.ARROWFAT) {
		v := p.parseExpression()
		if v == nil {
			return nil
		}
		attr := &ast.ObjectConditionalSplat{Condition: e, Value: v}
		attr.SetSpan(p.spanFrom(start))
		return attr
	}

	// Shorthand: the key is inferred from the expression.
	name := ast.LeadingAttribute(e)
	if name == "" {
		p.addError("cannot determine an attribute key for this expression; use an explicit \"key\": value")
		return nil
	}
	attr := &ast.ObjectAttributeValue{Name: name, Value: e}
	attr.SetSpan(p.spanFrom(start))
	return attr
}
