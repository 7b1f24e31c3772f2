package lang

import (
	"context"
	"log/slog"
)

// Roll is a compiled dice expression: a reusable, deferred computation that
// can be invoked any number of times, each invocation independently
// randomized. A Roll is immutable and safe for concurrent invocation
// provided its roller is (the default roller is).
type Roll struct {
	root   compiled
	source string // original text when compiled from source, else ""
	cfg    config
}

// Options is the set of invocation-time flags recognized by a compiled roll.
// Options are read-only per invocation and apply uniformly across the whole
// expression.
type Options struct {
	// Explode rerolls and accumulates a die whenever it lands on its
	// maximum face.
	Explode bool

	// Keep returns every individual die result as a list instead of a
	// single summed total.
	Keep bool

	// Lowest makes the ',' selector prefer the lower value. The default
	// preference is highest.
	Lowest bool

	// Filters post-process the final value in order.
	Filters []Filter
}

// InvokeOption configures a single invocation of a compiled roll.
type InvokeOption func(*Options)

// WithExplode enables exploding dice for this invocation.
func WithExplode() InvokeOption {
	return func(o *Options) { o.Explode = true }
}

// WithKeep keeps individual die results as a list for this invocation.
func WithKeep() InvokeOption {
	return func(o *Options) { o.Keep = true }
}

// WithLowest makes ',' selectors prefer the lower value.
func WithLowest() InvokeOption {
	return func(o *Options) { o.Lowest = true }
}

// WithHighest makes ',' selectors prefer the higher value (the default).
func WithHighest() InvokeOption {
	return func(o *Options) { o.Lowest = false }
}

// WithFilter appends result filters applied after final rounding.
func WithFilter(filters ...Filter) InvokeOption {
	return func(o *Options) { o.Filters = append(o.Filters, filters...) }
}

// invocation carries the per-invocation state threaded through the compiled
// closure tree.
type invocation struct {
	cfg      *config
	opts     Options
	bindings Bindings
}

// evalFunc is a deferred computation over one expression subtree.
type evalFunc func(ctx context.Context, inv *invocation) (Value, error)

// compiled is the result of compiling one subtree: either a folded constant
// value or a deferred computation.
type compiled struct {
	value Value
	eval  evalFunc
}

// constant wraps a statically known value.
func constant(v Value) compiled { return compiled{value: v} }

// deferred wraps a dynamic computation.
func deferred(fn evalFunc) compiled { return compiled{eval: fn} }

// static reports whether the subtree folded to a constant at compile time.
func (c compiled) static() bool { return c.eval == nil }

// run produces the subtree's value for this invocation.
func (c compiled) run(ctx context.Context, inv *invocation) (Value, error) {
	if c.eval == nil {
		return c.value, nil
	}

	return c.eval(ctx, inv)
}

// Compile compiles an expression tree into a Roll. Constant subtrees fold
// immediately; dynamic subtrees (rolls and variables, and anything above
// them) compile to closures that are evaluated per invocation.
//
// Compilation itself cannot fail: evaluation errors that are detectable in
// constant subtrees (such as a literal division by zero) are deferred and
// reported when the Roll is invoked, matching the behavior of the same
// expression with runtime-bound operands.
func Compile(ctx context.Context, expr *Expr, opts ...Option) *Roll {
	var cfg config

	applyDefaults(&cfg)
	applyOptions(&cfg, opts...)

	cfg.logger.TraceContext(
		ctx,
		"compile start",
		slog.String("kind", expr.Kind.String()),
	)

	r := &Roll{cfg: cfg}
	r.root = r.compile(expr)

	cfg.logger.TraceContext(
		ctx,
		"compile complete",
		slog.Bool("static", r.root.static()),
	)

	return r
}

// compile dispatches on the expression kind. A kind outside the closed set
// is a programming error, not user input, and panics.
func (r *Roll) compile(e *Expr) compiled {
	switch e.Kind {
	case KindNumber:
		return constant(NumValue(e.Number))

	case KindBinary:
		return r.compileBinary(e)

	case KindRoll:
		return r.compileRoll(e)

	case KindSeparator:
		return r.compileSeparator(e)

	case KindVariable:
		return r.compileVariable(e)

	default:
		panic("lang: compile: unknown expression kind " + e.Kind.String())
	}
}

// Static reports whether the compiled roll contains no dice and no
// variables: invoking it yields the same value every time.
func (r *Roll) Static() bool { return r.root.static() }

// Source returns the original expression text the roll was compiled from,
// or "" if it was compiled directly from an expression tree.
func (r *Roll) Source() string { return r.source }

// Invoke evaluates the compiled roll with the given variable bindings and
// invocation options. Every numeric leaf of the result is rounded half away
// from zero, then any filters are applied in order. A scalar result passed
// through filters comes back as a (possibly empty) list.
func (r *Roll) Invoke(
	ctx context.Context,
	bindings Bindings,
	opts ...InvokeOption,
) (Value, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	return r.invokeWith(ctx, bindings, o)
}

// invokeWith is the resolved-options form of Invoke. Bound compiled rolls
// re-enter here with the outer invocation's options.
func (r *Roll) invokeWith(
	ctx context.Context,
	bindings Bindings,
	o Options,
) (Value, error) {
	inv := &invocation{cfg: &r.cfg, opts: o, bindings: bindings}

	val, err := r.root.run(ctx, inv)
	if err != nil {
		r.cfg.logger.TraceContext(
			ctx,
			"invoke failed",
			slog.Any("error", err),
		)

		return Value{}, err
	}

	val = val.Round()

	if len(o.Filters) > 0 {
		val = applyFilters(val, o.Filters)
	}

	r.cfg.logger.TraceContext(
		ctx,
		"invoke complete",
		slog.String("shape", val.Shape.String()),
		slog.Int("len", val.Len()),
	)

	return val, nil
}

// CompileString tokenizes, parses, and compiles a source string.
func CompileString(
	ctx context.Context,
	source string,
	opts ...Option,
) (*Roll, error) {
	expr, err := ParseString(ctx, source, opts...)
	if err != nil {
		return nil, err
	}

	r := Compile(ctx, expr, opts...)
	r.source = source

	return r, nil
}

// RollString compiles source (through the compile cache) and invokes it once
// with the given bindings and options. It is the one-step front end for
// callers that do not need to hold the compiled roll.
func RollString(
	ctx context.Context,
	source string,
	bindings Bindings,
	opts ...InvokeOption,
) (Value, error) {
	r, err := Obtain(ctx, source)
	if err != nil {
		return Value{}, err
	}

	return r.Invoke(ctx, bindings, opts...)
}
