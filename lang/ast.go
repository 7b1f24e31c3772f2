package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/droll/lang/lexer"
	"github.com/ardnew/droll/lang/parser"
	"github.com/ardnew/droll/log"
)

// Expr is one node of a dice expression tree. It is an immutable closed sum:
// exactly the fields relevant to Kind are populated, and every child is
// itself a valid Expr.
type Expr struct {
	Kind   Kind
	Number float64 // KindNumber
	Op     byte    // KindBinary: one of + - * / % ^
	Name   rune    // KindVariable
	Left   *Expr   // KindBinary, KindRoll, KindSeparator
	Right  *Expr   // KindBinary, KindRoll, KindSeparator
}

// Kind indicates the variant of an expression node.
type Kind int

const (
	// KindNumber is a numeric literal.
	KindNumber Kind = iota

	// KindBinary is a binary arithmetic operation.
	KindBinary

	// KindRoll is the dice operator: count d sides.
	KindRoll

	// KindSeparator is the ',' highest/lowest selector.
	KindSeparator

	// KindVariable is a single-letter variable reference.
	KindVariable
)

// String returns a string representation of the expression kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"

	case KindBinary:
		return "Binary"

	case KindRoll:
		return "Roll"

	case KindSeparator:
		return "Separator"

	case KindVariable:
		return "Variable"

	default:
		return "Unknown"
	}
}

// Num constructs a numeric literal node.
func Num(v float64) *Expr { return &Expr{Kind: KindNumber, Number: v} }

// Bin constructs a binary operation node.
func Bin(op byte, left, right *Expr) *Expr {
	return &Expr{Kind: KindBinary, Op: op, Left: left, Right: right}
}

// Dice constructs a roll node: count d sides.
func Dice(count, sides *Expr) *Expr {
	return &Expr{Kind: KindRoll, Left: count, Right: sides}
}

// Sep constructs a ',' selector node.
func Sep(left, right *Expr) *Expr {
	return &Expr{Kind: KindSeparator, Left: left, Right: right}
}

// Var constructs a variable reference node.
func Var(name rune) *Expr { return &Expr{Kind: KindVariable, Name: name} }

// DefaultMaxDepth is the default maximum expression nesting depth accepted
// by ParseString.
const DefaultMaxDepth = parser.DefaultMaxDepth

// config holds compile-time configuration for a Roll.
// The hashable subset (maxDepth) participates in the cache key; roller and
// logger are excluded and force a cache bypass when customized.
type config struct {
	maxDepth int
	roller   Roller
	logger   log.Logger

	// nocache is set when an option that cannot participate in the cache
	// key (roller, logger) is customized.
	nocache bool
}

// Roller produces a single die result in [1, sides] given sides >= 1.
// The default roller draws from math/rand/v2, which is safe for concurrent
// use by independent invocations.
type Roller func(sides int) int

// Option configures compilation behavior.
type Option func(*config)

// WithMaxDepth sets the maximum expression nesting depth for parsing.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithRoller replaces the random die source. Tests use this to make rolls
// deterministic. A custom roller bypasses the compile cache.
func WithRoller(roller Roller) Option {
	return func(c *config) {
		c.roller = roller
		c.nocache = true
	}
}

// WithLogger sets the structured logger for trace-level diagnostics.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
		c.nocache = true
	}
}

// applyDefaults sets default configuration values.
func applyDefaults(c *config) {
	c.maxDepth = DefaultMaxDepth
	c.roller = defaultRoller
}

// applyOptions applies functional options to a config.
func applyOptions(c *config, opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ParseString tokenizes and parses a dice expression source string into an
// expression tree.
func ParseString(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Expr, error) {
	var cfg config

	applyDefaults(&cfg)
	applyOptions(&cfg, opts...)

	cfg.logger.TraceContext(
		ctx,
		"parse start",
		slog.Int("source_length", len(source)),
	)

	toks, err := lexer.New([]rune(source)).Scan()
	if err != nil {
		return nil, NewTokenizeError(err, source)
	}

	node, errs := parser.ParseDepth(toks, cfg.maxDepth)
	if len(errs) > 0 {
		return nil, NewParseError(errs, source)
	}

	expr := buildExpr(node)

	cfg.logger.TraceContext(
		ctx,
		"parse complete",
		slog.Int("token_count", len(toks)),
	)

	return expr, nil
}

// buildExpr converts the parser's syntax tree into the expression type used
// by the compiler. The parser guarantees a finite, acyclic tree.
func buildExpr(n *parser.Node) *Expr {
	switch n.Kind {
	case parser.KindNumber:
		return Num(n.Number)

	case parser.KindBinary:
		return Bin(n.Op, buildExpr(n.Left), buildExpr(n.Right))

	case parser.KindRoll:
		return Dice(buildExpr(n.Left), buildExpr(n.Right))

	case parser.KindSeparator:
		return Sep(buildExpr(n.Left), buildExpr(n.Right))

	case parser.KindVariable:
		return Var(n.Name)

	default:
		panic("lang: unknown parser node kind")
	}
}
