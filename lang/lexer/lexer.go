// Package lexer converts dice expression source text into a token stream.
//
// The scanner recognizes integer and decimal-float literals, single-letter
// variables (excluding the roll operator letter), the operators + - * / % ^,
// the roll operator d/D, parentheses, and the ',' separator. Whitespace is
// skipped. Any other rune is reported as an *Error.
package lexer

import (
	"fmt"

	"github.com/ardnew/droll/lang/token"
)

// Error reports an illegal rune encountered while scanning.
type Error struct {
	Rune   rune
	Line   int
	Column int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf(
		"illegal character %q at line %d, column %d",
		e.Rune, e.Line, e.Column,
	)
}

// Lexer scans a rune slice into tokens.
type Lexer struct {
	src    []rune
	pos    int
	line   int
	column int
}

// New creates a Lexer over the given source runes.
func New(src []rune) *Lexer {
	return &Lexer{src: src, line: 1, column: 1}
}

// Scan consumes the entire source and returns its tokens, terminated by an
// EOF token. On an illegal rune it returns the tokens scanned so far and an
// *Error describing the offending rune.
func (l *Lexer) Scan() ([]token.Token, error) {
	var toks []token.Token

	for {
		tok, err := l.Next()
		if err != nil {
			return toks, err
		}

		toks = append(toks, tok)

		if tok.Kind == token.EOF {
			return toks, nil
		}
	}
}

// Next scans and returns the next token.
func (l *Lexer) Next() (token.Token, error) {
	l.skipSpace()

	if l.pos >= len(l.src) {
		return l.make(token.EOF, ""), nil
	}

	r := l.src[l.pos]

	switch {
	case r >= '0' && r <= '9', r == '.':
		return l.scanNumber(), nil

	case r == 'd' || r == 'D':
		return l.emit(token.Dice, r), nil

	case isLetter(r):
		return l.emit(token.Variable, r), nil
	}

	switch r {
	case '+':
		return l.emit(token.Plus, r), nil
	case '-':
		return l.emit(token.Minus, r), nil
	case '*':
		return l.emit(token.Star, r), nil
	case '/':
		return l.emit(token.Slash, r), nil
	case '%':
		return l.emit(token.Percent, r), nil
	case '^':
		return l.emit(token.Caret, r), nil
	case ',':
		return l.emit(token.Comma, r), nil
	case '(':
		return l.emit(token.LParen, r), nil
	case ')':
		return l.emit(token.RParen, r), nil
	}

	return token.Token{}, &Error{Rune: r, Line: l.line, Column: l.column}
}

// skipSpace advances past spaces, tabs, and newlines, tracking position.
func (l *Lexer) skipSpace() {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\r':
			l.pos++
			l.column++

		case '\n':
			l.pos++
			l.line++
			l.column = 1

		default:
			return
		}
	}
}

// scanNumber scans an integer or decimal-float literal. A literal may contain
// at most one decimal point; a second point terminates the literal.
func (l *Lexer) scanNumber() token.Token {
	start := l.pos
	startCol := l.column
	dotted := false

	for l.pos < len(l.src) {
		r := l.src[l.pos]

		if r == '.' {
			if dotted {
				break
			}

			dotted = true
		} else if r < '0' || r > '9' {
			break
		}

		l.pos++
		l.column++
	}

	return token.Token{
		Kind:   token.Number,
		Lit:    string(l.src[start:l.pos]),
		Line:   l.line,
		Column: startCol,
	}
}

// emit produces a single-rune token and advances past it.
func (l *Lexer) emit(kind token.Kind, r rune) token.Token {
	tok := l.make(kind, string(r))
	l.pos++
	l.column++

	return tok
}

// make constructs a token at the current position without advancing.
func (l *Lexer) make(kind token.Kind, lit string) token.Token {
	return token.Token{Kind: kind, Lit: lit, Line: l.line, Column: l.column}
}

// isLetter reports whether r is an ASCII letter usable as a variable name.
// The roll operator letters d and D are excluded by the caller.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
