package lang

import (
	"context"
	"log/slog"
	"math"
)

// compileBinary compiles a binary operation node. Both operands compile
// independently; if both fold to constants the combination is computed
// immediately, otherwise the result is a closure evaluating both sides
// under the same invocation and combining them through the broadcast
// helper.
func (r *Roll) compileBinary(e *Expr) compiled {
	left := r.compile(e.Left)
	right := r.compile(e.Right)

	op := string(e.Op)
	f := operator(e.Op)

	if left.static() && right.static() {
		val, err := combine(op, left.value, right.value, f)
		if err != nil {
			// Constant subtrees with degenerate arithmetic (1/0) defer
			// the error to invocation time, matching runtime-bound
			// operands.
			return deferred(
				func(context.Context, *invocation) (Value, error) {
					return Value{}, err
				},
			)
		}

		return constant(val)
	}

	return deferred(
		func(ctx context.Context, inv *invocation) (Value, error) {
			a, err := left.run(ctx, inv)
			if err != nil {
				return Value{}, err
			}

			b, err := right.run(ctx, inv)
			if err != nil {
				return Value{}, err
			}

			return combine(op, a, b, f)
		},
	)
}

// operator returns the scalar combiner for a binary operator byte.
// An operator outside the closed set is a defect in the parser, not user
// input, and panics.
func operator(op byte) binaryFunc {
	switch op {
	case '+':
		return add
	case '-':
		return sub
	case '*':
		return mul
	case '/':
		return div
	case '%':
		return mod
	case '^':
		return pow
	default:
		panic("lang: unknown binary operator " + string(op))
	}
}

func add(a, b float64) (float64, error) { return a + b, nil }

func sub(a, b float64) (float64, error) { return a - b, nil }

func mul(a, b float64) (float64, error) { return a * b, nil }

// div performs real division, kept as floating point until final rounding.
func div(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero.With(
			slog.String("operation", "/"),
			slog.Float64("dividend", a),
		)
	}

	return a / b, nil
}

// mod requires both operands integral; integrality is checked before the
// zero-divisor check so 1.5 % 0 reports the non-integer operand.
func mod(a, b float64) (float64, error) {
	if !isIntegral(a) || !isIntegral(b) {
		return 0, ErrNonIntegerModulo.With(
			slog.Float64("left", a),
			slog.Float64("right", b),
		)
	}

	if b == 0 {
		return 0, ErrDivisionByZero.With(
			slog.String("operation", "%"),
			slog.Float64("dividend", a),
		)
	}

	return float64(int64(a) % int64(b)), nil
}

func pow(a, b float64) (float64, error) { return math.Pow(a, b), nil }
