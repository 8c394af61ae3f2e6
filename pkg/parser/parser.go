// Package parser provides GROQ parsing.
//
// # Usage
//
//	expr, err := parser.Parse(`*[_type == "post"]{ title }`)
//	if err != nil {
//	    // handle *parser.ParseError
//	}
//
// # Grammar Overview
//
// The parser is a Pratt parser over the GROQ expression grammar:
//
//	expression → prefix (infix-op expression)*
//	prefix     → literal | "*" | "@" | "^" | "$" ident | ident | array
//	           | object | "(" expression ("," expression)* ")"
//	           | ("!" | "-" | "+") expression
//	traversal  → "." ident | "->" ident? | "[" ... "]" | "[]" | "{" ... "}"
//
// Traversals bind tighter than any infix operator. A traversal continuing
// past an array coercion (`a[]->`, `a[]{..}`, `a[].b`) composes into a Map
// over the coerced array, mirroring upstream GROQ semantics.
package parser

import (
	"fmt"

	"github.com/groqkit/groqkit/pkg/ast"
	"github.com/groqkit/groqkit/pkg/token"
)

// Parser parses GROQ into an AST.
type Parser struct {
	lexer  *Lexer
	token  token.Token // current token
	peek   token.Token // lookahead token
	errors []error
}

// NewParser creates a new parser for the given query text.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Read two tokens to initialize current and peek.
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a complete GROQ query and returns its expression tree.
// The returned error is a *ParseError.
func Parse(input string) (ast.Expr, error) {
	p := NewParser(input)

	if p.token.Type == token.EOF {
		return nil, &ParseError{Pos: p.token.Pos, Message: ErrEmptyQuery}
	}

	expr := p.parseExpression()

	if err := p.lexer.Err(); err != nil {
		return nil, &ParseError{Pos: err.Pos, Message: err.Message}
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0].(*ParseError)
	}
	if p.token.Type != token.EOF {
		return nil, &ParseError{
			Pos:     p.token.Pos,
			Message: fmt.Sprintf(ErrUnexpectedToken, p.token.Type),
		}
	}
	return expr, nil
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it is of the given type.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise records an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrExpectedToken, p.token.Type, t))
	return false
}

// addError records a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{Pos: p.token.Pos, Message: msg})
}

// spanFrom builds a span from a start position to the current token.
// The end is the start of the first token after the node, which is a close
// upper bound and monotonic, which is all diagnostics need.
func (p *Parser) spanFrom(start token.Position) token.Span {
	return token.Span{Start: start, End: p.token.Pos}
}
