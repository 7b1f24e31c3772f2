package lang

import "context"

// compileSeparator compiles a ',' selector node. Both sides evaluate under
// the same invocation; the combiner keeps the higher value unless the
// lowest option is set. Identical values pass through without comparison.
// List operands pair index-wise through the broadcast helper, so unequal
// lengths are a hard error.
//
// The preference is an invocation-time option, so a selector can fold at
// compile time only when both sides are constants with the same value.
func (r *Roll) compileSeparator(e *Expr) compiled {
	left := r.compile(e.Left)
	right := r.compile(e.Right)

	if left.static() && right.static() && left.value.Equal(right.value) {
		return constant(left.value)
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

			return selectValue(a, b, inv.opts.Lowest)
		},
	)
}

// selectValue keeps the preferred of two values, pairwise over lists.
func selectValue(a, b Value, lowest bool) (Value, error) {
	if a.Equal(b) {
		return a, nil
	}

	pick := higher
	if lowest {
		pick = lower
	}

	return combine(",", a, b, pick)
}

func higher(a, b float64) (float64, error) {
	if a >= b {
		return a, nil
	}

	return b, nil
}

func lower(a, b float64) (float64, error) {
	if a <= b {
		return a, nil
	}

	return b, nil
}
