// Package token defines the lexical tokens for GROQ parsing.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

// Token types for the GROQ grammar.
const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier
	NUMBER // 123, 45.67, 1e10
	STRING // "hello" or 'hello'

	// Operators
	PLUS     // +
	MINUS    // -
	STAR     // *
	SLASH    // /
	PERCENT  // %
	DSTAR    // ** (exponentiation)
	EQ       // ==
	NE       // !=
	LT       // <
	GT       // >
	LE       // <=
	GE       // >=
	NOT      // !
	AND      // &&
	OR       // ||
	PIPE     // |
	ARROW    // -> (dereference)
	DOT      // .
	DOTDOT   // .. (inclusive range)
	ELLIPSIS // ... (exclusive range / splat)
	ARROWFAT // => (conditional)
	COMMA    // ,
	COLON    // :
	DCOLON   // :: (namespace separator)
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	LBRACE   // {
	RBRACE   // }
	AT       // @ (this)
	CARET    // ^ (parent)
	DOLLAR   // $ (parameter prefix)

	// Keywords
	TRUE
	FALSE
	NULL
	IN
	MATCH
	ASC
	DESC
)

var tokenNames = map[TokenType]string{
	EOF:      "EOF",
	ILLEGAL:  "ILLEGAL",
	IDENT:    "IDENT",
	NUMBER:   "NUMBER",
	STRING:   "STRING",
	PLUS:     "+",
	MINUS:    "-",
	STAR:     "*",
	SLASH:    "/",
	PERCENT:  "%",
	DSTAR:    "**",
	EQ:       "==",
	NE:       "!=",
	LT:       "<",
	GT:       ">",
	LE:       "<=",
	GE:       ">=",
	NOT:      "!",
	AND:      "&&",
	OR:       "||",
	PIPE:     "|",
	ARROW:    "->",
	DOT:      ".",
	DOTDOT:   "..",
	ELLIPSIS: "...",
	ARROWFAT: "=>",
	COMMA:    ",",
	COLON:    ":",
	DCOLON:   "::",
	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	LBRACE:   "{",
	RBRACE:   "}",
	AT:       "@",
	CARET:    "^",
	DOLLAR:   "$",
	TRUE:     "true",
	FALSE:    "false",
	NULL:     "null",
	IN:       "in",
	MATCH:    "match",
	ASC:      "asc",
	DESC:     "desc",
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int32(t))
}

// keywords maps bare identifiers that carry grammatical meaning.
// GROQ keywords are contextual but none of these are useful as attribute
// names, so the lexer resolves them eagerly.
var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,
	"null":  NULL,
	"in":    IN,
	"match": MATCH,
	"asc":   ASC,
	"desc":  DESC,
}

// LookupIdent returns the keyword token type for an identifier, or IDENT.
func LookupIdent(ident string) TokenType {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return IDENT
}

// Token is a single lexical token with its source position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
