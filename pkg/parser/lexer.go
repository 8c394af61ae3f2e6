// Package parser provides GROQ lexing and parsing.
package parser

import (
	"strings"

	"github.com/groqkit/groqkit/pkg/token"
)

// Lexer tokenizes GROQ input.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // current line number (1-based)
	col     int  // current column number (1-based)

	err *LexError // first lexical error, if any
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// Err returns the first lexical error encountered, or nil.
func (l *Lexer) Err() *LexError { return l.err }

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++

	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the current position.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) newToken(t token.TokenType, lit string) token.Token {
	tok := token.Token{Type: t, Literal: lit, Pos: l.currentPos()}
	l.readChar()
	return tok
}

// twoChar consumes a two-character operator starting at the current char.
func (l *Lexer) twoChar(t token.TokenType, lit string, pos token.Position) token.Token {
	l.readChar()
	l.readChar()
	return token.Token{Type: t, Literal: lit, Pos: pos}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	pos := l.currentPos()

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Pos: pos}
	case '+':
		return l.newToken(token.PLUS, "+")
	case '-':
		if l.peekChar() == '>' {
			return l.twoChar(token.ARROW, "->", pos)
		}
		return l.newToken(token.MINUS, "-")
	case '*':
		if l.peekChar() == '*' {
			return l.twoChar(token.DSTAR, "**", pos)
		}
		return l.newToken(token.STAR, "*")
	case '/':
		return l.newToken(token.SLASH, "/")
	case '%':
		return l.newToken(token.PERCENT, "%")
	case '=':
		switch l.peekChar() {
		case '=':
			return l.twoChar(token.EQ, "==", pos)
		case '>':
			return l.twoChar(token.ARROWFAT, "=>", pos)
		}
		return l.newToken(token.ILLEGAL, "=")
	case '!':
		if l.peekChar() == '=' {
			return l.twoChar(token.NE, "!=", pos)
		}
		return l.newToken(token.NOT, "!")
	case '<':
		if l.peekChar() == '=' {
			return l.twoChar(token.LE, "<=", pos)
		}
		return l.newToken(token.LT, "<")
	case '>':
		if l.peekChar() == '=' {
			return l.twoChar(token.GE, ">=", pos)
		}
		return l.newToken(token.GT, ">")
	case '&':
		if l.peekChar() == '&' {
			return l.twoChar(token.AND, "&&", pos)
		}
		return l.newToken(token.ILLEGAL, "&")
	case '|':
		if l.peekChar() == '|' {
			return l.twoChar(token.OR, "||", pos)
		}
		return l.newToken(token.PIPE, "|")
	case '.':
		if l.peekChar() == '.' {
			l.readChar()
			if l.peekChar() == '.' {
				l.readChar()
				l.readChar()
				return token.Token{Type: token.ELLIPSIS, Literal: "...", Pos: pos}
			}
			l.readChar()
			return token.Token{Type: token.DOTDOT, Literal: "..", Pos: pos}
		}
		return l.newToken(token.DOT, ".")
	case ':':
		if l.peekChar() == ':' {
			return l.twoChar(token.DCOLON, "::", pos)
		}
		return l.newToken(token.COLON, ":")
	case ',':
		return l.newToken(token.COMMA, ",")
	case '(':
		return l.newToken(token.LPAREN, "(")
	case ')':
		return l.newToken(token.RPAREN, ")")
	case '[':
		return l.newToken(token.LBRACKET, "[")
	case ']':
		return l.newToken(token.RBRACKET, "]")
	case '{':
		return l.newToken(token.LBRACE, "{")
	case '}':
		return l.newToken(token.RBRACE, "}")
	case '@':
		return l.newToken(token.AT, "@")
	case '^':
		return l.newToken(token.CARET, "^")
	case '$':
		return l.newToken(token.DOLLAR, "$")
	case '"', '\'':
		return l.readString(pos)
	}

	if isLetter(l.ch) {
		return l.readIdentifier(pos)
	}
	if isDigit(l.ch) {
		return l.readNumber(pos)
	}

	return l.newToken(token.ILLEGAL, string(l.ch))
}

// readString reads a quoted string, decoding escape sequences. The token
// literal is the decoded value.
func (l *Lexer) readString(pos token.Position) token.Token {
	quote := l.ch
	l.readChar()

	var sb strings.Builder
	for l.ch != quote {
		if l.ch == 0 {
			l.fail(pos, ErrUnterminatedString)
			return token.Token{Type: token.ILLEGAL, Pos: pos}
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case '"', '\'', '\\', '/':
				sb.WriteByte(l.ch)
			case 'b':
				sb.WriteByte('\b')
			case 'f':
				sb.WriteByte('\f')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'u':
				r, ok := l.readUnicodeEscape()
				if !ok {
					l.fail(pos, ErrInvalidEscape)
					return token.Token{Type: token.ILLEGAL, Pos: pos}
				}
				sb.WriteRune(r)
			default:
				l.fail(pos, ErrInvalidEscape)
				return token.Token{Type: token.ILLEGAL, Pos: pos}
			}
			l.readChar()
			continue
		}
		sb.WriteByte(l.ch)
		l.readChar()
	}
	l.readChar() // closing quote
	return token.Token{Type: token.STRING, Literal: sb.String(), Pos: pos}
}

// readUnicodeEscape reads the 4 hex digits of a \uXXXX escape. The current
// char is 'u' on entry and the last hex digit on successful exit.
func (l *Lexer) readUnicodeEscape() (rune, bool) {
	var r rune
	for i := 0; i < 4; i++ {
		l.readChar()
		d := hexDigit(l.ch)
		if d < 0 {
			return 0, false
		}
		r = r<<4 | rune(d)
	}
	return r, true
}

func hexDigit(ch byte) int {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0')
	case ch >= 'a' && ch <= 'f':
		return int(ch-'a') + 10
	case ch >= 'A' && ch <= 'F':
		return int(ch-'A') + 10
	}
	return -1
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier(pos token.Position) token.Token {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.pos]
	return token.Token{Type: token.LookupIdent(lit), Literal: lit, Pos: pos}
}

// readNumber reads a numeric literal: integer, decimal, or exponent form.
// A trailing `.` is not consumed so `1..2` lexes as NUMBER DOTDOT NUMBER.
func (l *Lexer) readNumber(pos token.Position) token.Token {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		mark := l.pos
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			// Not an exponent after all; this cannot be rewound with a
			// byte-oriented lexer, so surface it as a bad number.
			_ = mark
			l.fail(pos, ErrInvalidNumber)
			return token.Token{Type: token.ILLEGAL, Pos: pos}
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return token.Token{Type: token.NUMBER, Literal: l.input[start:l.pos], Pos: pos}
}

func (l *Lexer) fail(pos token.Position, msg string) {
	if l.err == nil {
		l.err = &LexError{Pos: pos, Message: msg}
	}
}

func isLetter(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
