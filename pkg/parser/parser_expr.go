package parser

import (
	"fmt"
	"strconv"

	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/token"
)

// Expression precedence parsing using a Pratt parser.
//
// Precedence levels:
//
//	precPipe       (| order(..))
//	precOr         (||)
//	precAnd        (&&)
//	precComparison (== != < > <= >= in match)
//	precRange      (.. ...)
//	precAdditive   (+ -)
//	precMultiply   (* / %)
//	precExponent   (**, right-associative)
//	precUnary      (! - +)
//
// Traversal suffixes (. -> [ { ) bind tighter than everything above and are
// handled by parseTraversal.
const (
	precLowest = iota
	precPipe
	precOr
	precAnd
	precComparison
	precRange
	precAdditive
	precMultiply
	precExponent
	precUnary
)

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseExpressionWithPrecedence(precLowest + 1)
}

// parseExpressionWithPrecedence implements Pratt parsing.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) ast.Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for {
		prec := p.infixPrecedence()
		if prec < minPrecedence {
			break
		}
		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}

	return left
}

// infixPrecedence returns the binding power of the current token as an
// infix operator, or precLowest if it is not one.
func (p *Parser) infixPrecedence() int {
	switch p.token.Type {
	case token.PIPE:
		return precPipe
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE,
		token.IN, token.MATCH:
		return precComparison
	case token.DOTDOT, token.ELLIPSIS:
		return precRange
	case token.PLUS, token.MINUS:
		return precAdditive
	case token.STAR, token.SLASH, token.PERCENT:
		return precMultiply
	case token.DSTAR:
		return precExponent
	default:
		return precLowest
	}
}

// parseInfixExpr parses the infix operator at the current token applied to
// left. Spans cover the whole operation, left operand included.
func (p *Parser) parseInfixExpr(left ast.Expr, prec int) ast.Expr {
	start := left.Span().Start
	op := p.token.Type

	switch op {
	case token.PIPE:
		p.nextToken()
		return p.parsePipeFuncCall(left, start)

	case token.AND:
		p.nextToken()
		right := p.parseExpressionWithPrecedence(prec + 1)
		n := &ast.And{Left: left, Right: right}
		n.SetSpan(p.spanFrom(start))
		return n

	case token.OR:
		p.nextToken()
		right := p.parseExpressionWithPrecedence(prec + 1)
		n := &ast.Or{Left: left, Right: right}
		n.SetSpan(p.spanFrom(start))
		return n

	case token.IN:
		p.nextToken()
		// Parse at range precedence so `x in 1..5` picks up the range.
		right := p.parseExpressionWithPrecedence(prec + 1)
		if r, ok := right.(*ast.Range); ok {
			n := &ast.InRange{Base: left, Left: r.Left, Right: r.Right, Exclusive: r.Exclusive}
			n.SetSpan(p.spanFrom(start))
			return n
		}
		n := &ast.OpCall{Op: "in", Left: left, Right: right}
		n.SetSpan(p.spanFrom(start))
		return n

	case token.DOTDOT, token.ELLIPSIS:
		p.nextToken()
		right := p.parseExpressionWithPrecedence(prec + 1)
		n := &ast.Range{Left: left, Right: right, Exclusive: op == token.ELLIPSIS}
		n.SetSpan(p.spanFrom(start))
		return n

	case token.DSTAR:
		p.nextToken()
		// Same precedence on the right for right-associativity.
		right := p.parseExpressionWithPrecedence(prec)
		n := &ast.OpCall{Op: "**", Left: left, Right: right}
		n.SetSpan(p.spanFrom(start))
		return n

	default:
		lit := op.String()
		p.nextToken()
		right := p.parseExpressionWithPrecedence(prec + 1)
		n := &ast.OpCall{Op: lit, Left: left, Right: right}
		n.SetSpan(p.spanFrom(start))
		return n
	}
}

// parsePipeFuncCall parses the function call after a `|`.
func (p *Parser) parsePipeFuncCall(base ast.Expr, start token.Position) ast.Expr {
	if !p.check(token.IDENT) {
		p.addError(fmt.Sprintf(ErrExpectedToken, p.token.Type, token.IDENT))
		return nil
	}
	name := p.token.Literal
	p.nextToken()
	if !p.expect(token.LPAREN) {
		return nil
	}
	args := p.parseCallArgs()
	n := &ast.PipeFuncCall{Base: base, Name: name, Args: args}
	n.SetSpan(p.spanFrom(start))
	// Suffixes such as `| order(..)[0..9]` apply to the piped result.
	return p.parseTraversal(n)
}

// parseCallArgs parses a comma-separated argument list up to and including
// the closing paren. Arguments accept trailing asc/desc order wrappers.
func (p *Parser) parseCallArgs() []ast.Expr {
	var args []ast.Expr
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		start := p.token.Pos
		arg := p.parseExpression()
		if arg == nil {
			return args
		}
		switch p.token.Type {
		case token.ASC:
			p.nextToken()
			a := &ast.Asc{Base: arg}
			a.SetSpan(p.spanFrom(start))
			arg = a
		case token.DESC:
			p.nextToken()
			d := &ast.Desc{Base: arg}
			d.SetSpan(p.spanFrom(start))
			arg = d
		}
		args = append(args, arg)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)
	return args
}

// parseNumber converts the current NUMBER token into a Value.
func (p *Parser) parseNumber() ast.Expr {
	start := p.token.Pos
	f, err := strconv.ParseFloat(p.token.Literal, 64)
	if err != nil {
		p.addError(ErrInvalidNumber)
		return nil
	}
	p.nextToken()
	n := &ast.Value{Raw: f}
	n.SetSpan(p.spanFrom(start))
	return n
}
