// Package parser builds a syntax tree from a dice expression token stream.
//
// Operator precedence, highest to lowest:
//
//	d (roll)          left associative
//	unary + -
//	^                 right associative
//	* / %             left associative
//	+ -               left associative
//	,                 left associative
//
// The tree produced here is a plain syntactic structure; the lang package
// converts it into its own expression type before compilation.
package parser

import (
	"strconv"
	"strings"

	"github.com/ardnew/droll/lang/token"
)

// NodeKind identifies the variant of a syntax tree node.
type NodeKind int

const (
	// KindNumber is a numeric literal leaf.
	KindNumber NodeKind = iota

	// KindBinary is a binary arithmetic operation (+ - * / % ^).
	KindBinary

	// KindRoll is the dice operator: count d sides.
	KindRoll

	// KindSeparator is the ',' highest/lowest selector.
	KindSeparator

	// KindVariable is a single-letter variable reference.
	KindVariable
)

// Node is one node of the syntax tree. Exactly the fields relevant to Kind
// are populated.
type Node struct {
	Kind   NodeKind
	Number float64 // KindNumber
	Op     byte    // KindBinary: one of + - * / % ^
	Name   rune    // KindVariable
	Left   *Node   // KindBinary, KindRoll, KindSeparator
	Right  *Node   // KindBinary, KindRoll, KindSeparator
}

// Error describes a syntax error with its source position and the token
// kinds that would have been accepted.
type Error struct {
	Line     int
	Column   int
	Token    string
	Expected []string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.String() }

// String formats the error without source context.
func (e *Error) String() string {
	var buf strings.Builder

	buf.WriteString("syntax error at line ")
	buf.WriteString(strconv.Itoa(e.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Column))

	if e.Token != "" {
		buf.WriteString(": unexpected ")
		buf.WriteString(e.Token)
	}

	if len(e.Expected) > 0 {
		buf.WriteString(" (expected ")
		buf.WriteString(strings.Join(e.Expected, ", "))
		buf.WriteString(")")
	}

	return buf.String()
}

// DefaultMaxDepth bounds expression nesting accepted by the parser.
const DefaultMaxDepth = 100

// Parse parses a token stream into a syntax tree using DefaultMaxDepth.
// The stream must be terminated by an EOF token (as produced by the lexer).
func Parse(toks []token.Token) (*Node, []*Error) {
	return ParseDepth(toks, DefaultMaxDepth)
}

// ParseDepth parses with an explicit nesting bound.
func ParseDepth(toks []token.Token, maxDepth int) (*Node, []*Error) {
	p := &parser{toks: toks, maxDepth: maxDepth}

	node := p.parseSeparator()
	if len(p.errs) > 0 {
		return nil, p.errs
	}

	if p.peek().Kind != token.EOF {
		p.fail(p.peek(), "end of expression")

		return nil, p.errs
	}

	return node, nil
}

// parser holds the token cursor and accumulated errors.
type parser struct {
	toks     []token.Token
	pos      int
	depth    int
	maxDepth int
	errs     []*Error
}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}

	return p.toks[p.pos]
}

func (p *parser) next() token.Token {
	tok := p.peek()
	p.pos++

	return tok
}

// fail records a syntax error at the given token.
func (p *parser) fail(tok token.Token, expected ...string) {
	p.errs = append(p.errs, &Error{
		Line:     tok.Line,
		Column:   tok.Column,
		Token:    tok.Kind.String(),
		Expected: expected,
	})
}

// enter guards recursion depth; it returns false after recording an error
// when the expression nests too deeply.
func (p *parser) enter() bool {
	p.depth++

	if p.depth > p.maxDepth {
		p.fail(p.peek(), "shallower expression nesting")

		return false
	}

	return true
}

func (p *parser) leave() { p.depth-- }

// parseSeparator : parseSum { ',' parseSum }.
func (p *parser) parseSeparator() *Node {
	left := p.parseSum()

	for left != nil && p.peek().Kind == token.Comma {
		p.next()

		right := p.parseSum()
		if right == nil {
			return nil
		}

		left = &Node{Kind: KindSeparator, Left: left, Right: right}
	}

	return left
}

// parseSum : parseProduct { ('+' | '-') parseProduct }.
func (p *parser) parseSum() *Node {
	left := p.parseProduct()

	for left != nil {
		var op byte

		switch p.peek().Kind {
		case token.Plus:
			op = '+'
		case token.Minus:
			op = '-'
		default:
			return left
		}

		p.next()

		right := p.parseProduct()
		if right == nil {
			return nil
		}

		left = &Node{Kind: KindBinary, Op: op, Left: left, Right: right}
	}

	return left
}

// parseProduct : parsePower { ('*' | '/' | '%') parsePower }.
func (p *parser) parseProduct() *Node {
	left := p.parsePower()

	for left != nil {
		var op byte

		switch p.peek().Kind {
		case token.Star:
			op = '*'
		case token.Slash:
			op = '/'
		case token.Percent:
			op = '%'
		default:
			return left
		}

		p.next()

		right := p.parsePower()
		if right == nil {
			return nil
		}

		left = &Node{Kind: KindBinary, Op: op, Left: left, Right: right}
	}

	return left
}

// parsePower : parseUnary [ '^' parsePower ]. Right associative.
func (p *parser) parsePower() *Node {
	left := p.parseUnary()

	if left == nil || p.peek().Kind != token.Caret {
		return left
	}

	p.next()

	right := p.parsePower()
	if right == nil {
		return nil
	}

	return &Node{Kind: KindBinary, Op: '^', Left: left, Right: right}
}

// parseUnary : [ '+' | '-' ] parseUnary | parseRoll.
// Unary minus is desugared to 0 - operand so the tree stays within the
// closed set of node kinds.
func (p *parser) parseUnary() *Node {
	switch p.peek().Kind {
	case token.Plus:
		p.next()

		return p.parseUnary()

	case token.Minus:
		p.next()

		operand := p.parseUnary()
		if operand == nil {
			return nil
		}

		return &Node{
			Kind: KindBinary,
			Op:   '-',
			Left: &Node{Kind: KindNumber, Number: 0},
			Right: operand,
		}

	default:
		return p.parseRoll()
	}
}

// parseRoll : parsePrimary { 'd' parsePrimary }. Left associative.
// A leading 'd' takes an implicit count of 1 (d6 reads as 1d6).
func (p *parser) parseRoll() *Node {
	var left *Node

	if p.peek().Kind == token.Dice {
		left = &Node{Kind: KindNumber, Number: 1}
	} else {
		left = p.parsePrimary()
	}

	for left != nil && p.peek().Kind == token.Dice {
		p.next()

		right := p.parsePrimary()
		if right == nil {
			return nil
		}

		left = &Node{Kind: KindRoll, Left: left, Right: right}
	}

	return left
}

// parsePrimary : number | variable | '(' parseSeparator ')'.
func (p *parser) parsePrimary() *Node {
	tok := p.peek()

	switch tok.Kind {
	case token.Number:
		p.next()

		val, err := strconv.ParseFloat(tok.Lit, 64)
		if err != nil {
			p.fail(tok, "numeric literal")

			return nil
		}

		return &Node{Kind: KindNumber, Number: val}

	case token.Variable:
		p.next()

		return &Node{Kind: KindVariable, Name: []rune(tok.Lit)[0]}

	case token.LParen:
		if !p.enter() {
			return nil
		}
		defer p.leave()

		p.next()

		inner := p.parseSeparator()
		if inner == nil {
			return nil
		}

		if p.peek().Kind != token.RParen {
			p.fail(p.peek(), "')'")

			return nil
		}

		p.next()

		return inner

	default:
		p.fail(tok, "number", "variable", "'('")

		return nil
	}
}
