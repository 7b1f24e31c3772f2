// Package token defines the lexical tokens of the dice expression language.
package token

import "strconv"

// Kind identifies the class of a lexical token.
type Kind int

const (
	// EOF marks the end of the token stream.
	EOF Kind = iota

	// Number is an integer or decimal-float literal.
	Number

	// Variable is a single-letter variable reference.
	Variable

	// Dice is the roll operator ('d' or 'D').
	Dice

	// Plus is the '+' operator.
	Plus

	// Minus is the '-' operator.
	Minus

	// Star is the '*' operator.
	Star

	// Slash is the '/' operator.
	Slash

	// Percent is the '%' operator.
	Percent

	// Caret is the '^' operator.
	Caret

	// Comma is the ',' selector separator.
	Comma

	// LParen is the '(' grouping token.
	LParen

	// RParen is the ')' grouping token.
	RParen
)

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"

	case Number:
		return "Number"

	case Variable:
		return "Variable"

	case Dice:
		return "Dice"

	case Plus:
		return "'+'"

	case Minus:
		return "'-'"

	case Star:
		return "'*'"

	case Slash:
		return "'/'"

	case Percent:
		return "'%'"

	case Caret:
		return "'^'"

	case Comma:
		return "','"

	case LParen:
		return "'('"

	case RParen:
		return "')'"

	default:
		return "Unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is a single lexical token with its source position.
type Token struct {
	Kind   Kind
	Lit    string // literal text as written in the source
	Line   int    // 1-based line of the first rune
	Column int    // 1-based column of the first rune
}

// LiteralString returns the literal source text of the token.
func (t Token) LiteralString() string { return t.Lit }
