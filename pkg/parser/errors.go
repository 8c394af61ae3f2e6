package parser

import (
	"fmt"

	"github.com/groqkit/groqkit/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// LexError represents a lexical analysis error.
type LexError struct {
	Pos     token.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Common error messages
const (
	ErrUnterminatedString = "unterminated string literal"
	ErrInvalidEscape      = "invalid escape sequence"
	ErrInvalidNumber      = "invalid number literal"
	ErrUnexpectedToken    = "unexpected token %s"
	ErrExpectedToken      = "unexpected token %s, expected %s"
	ErrParamInSlice       = "parameters are not supported in slice bounds"
	ErrEmptyQuery         = "empty query"
)
