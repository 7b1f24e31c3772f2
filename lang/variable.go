package lang

import (
	"context"
	"log/slog"
)

// Bindings maps single-character variable names to their values for one
// invocation. A bound value may be:
//
//   - a number (any Go integer or float type)
//   - a string holding a dice expression, tokenized, parsed, and compiled
//     on demand through the full pipeline
//   - an already-compiled *Roll, invoked with the current invocation's
//     options and no bindings (compiled rolls are self-contained)
//   - a Value produced by a prior invocation
//   - a (possibly nested) list of any of the above, resolved element-wise
//     and flattened
//
// Bindings are supplied fresh by the caller at invocation time and are
// never mutated by the compiler.
type Bindings map[rune]any

// compileVariable compiles a variable reference into a closure that
// resolves the name against the invocation's bindings.
func (r *Roll) compileVariable(e *Expr) compiled {
	name := e.Name

	return deferred(
		func(ctx context.Context, inv *invocation) (Value, error) {
			bound, ok := inv.bindings[name]
			if !ok {
				return Value{}, ErrUndefinedVariable.With(
					slog.String("name", string(name)),
				)
			}

			return resolveBinding(ctx, inv, name, bound)
		},
	)
}

// resolveBinding applies the binding resolution rules, recursively for
// strings (which re-enter the pipeline) and lists (which resolve
// element-wise and flatten).
func resolveBinding(
	ctx context.Context,
	inv *invocation,
	name rune,
	bound any,
) (Value, error) {
	switch v := bound.(type) {
	case Value:
		return v, nil

	case float64:
		return NumValue(v), nil

	case float32:
		return NumValue(float64(v)), nil

	case int:
		return NumValue(float64(v)), nil

	case int64:
		return NumValue(float64(v)), nil

	case int32:
		return NumValue(float64(v)), nil

	case uint:
		return NumValue(float64(v)), nil

	case uint64:
		return NumValue(float64(v)), nil

	case *Roll:
		return invokeBound(ctx, inv, v)

	case string:
		sub, err := CompileString(
			ctx,
			v,
			WithMaxDepth(inv.cfg.maxDepth),
			WithRoller(inv.cfg.roller),
			WithLogger(inv.cfg.logger),
		)
		if err != nil {
			return Value{}, WrapError(err).With(
				slog.String("name", string(name)),
				slog.String("source", v),
			)
		}

		return invokeBound(ctx, inv, sub)

	case []any:
		return resolveList(ctx, inv, name, v)

	default:
		return Value{}, ErrInvalidBinding.With(
			slog.String("name", string(name)),
			slog.Any("value", bound),
		)
	}
}

// invokeBound invokes a bound compiled roll with the current invocation's
// options. Bindings do not propagate (a compiled roll is self-contained)
// and filters are withheld so they apply only once, at the outermost roll.
func invokeBound(
	ctx context.Context,
	inv *invocation,
	sub *Roll,
) (Value, error) {
	opts := inv.opts
	opts.Filters = nil

	return sub.invokeWith(ctx, nil, opts)
}

// resolveList resolves every element of a list binding and flattens the
// results into one ordered vector. Nested lists flatten recursively.
func resolveList(
	ctx context.Context,
	inv *invocation,
	name rune,
	list []any,
) (Value, error) {
	var out []float64

	for _, el := range list {
		val, err := resolveBinding(ctx, inv, name, el)
		if err != nil {
			return Value{}, err
		}

		out = append(out, val.Nums()...)
	}

	return VecValue(out), nil
}
