package lang

import "log/slog"

// binaryFunc combines two scalar operands.
type binaryFunc func(a, b float64) (float64, error)

// combine applies f across two values under the broadcasting policy shared
// by the arithmetic, roll, and selector combiners:
//
//	scalar op scalar          -> scalar
//	vector op scalar          -> element-wise over the vector
//	scalar op vector          -> element-wise over the vector
//	vector op vector, n == m  -> index-wise pairing
//	vector op vector, n != m  -> ErrMismatchedList
//
// The operation name appears in error attributes. Order is preserved, and
// the result is always flat: nested lists cannot arise because both inputs
// are already flat.
func combine(op string, a, b Value, f binaryFunc) (Value, error) {
	switch {
	case !a.IsVector() && !b.IsVector():
		n, err := f(a.Num, b.Num)
		if err != nil {
			return Value{}, err
		}

		return NumValue(n), nil

	case a.IsVector() && !b.IsVector():
		out := make([]float64, len(a.Vec))

		for i, x := range a.Vec {
			n, err := f(x, b.Num)
			if err != nil {
				return Value{}, err
			}

			out[i] = n
		}

		return VecValue(out), nil

	case !a.IsVector() && b.IsVector():
		out := make([]float64, len(b.Vec))

		for i, y := range b.Vec {
			n, err := f(a.Num, y)
			if err != nil {
				return Value{}, err
			}

			out[i] = n
		}

		return VecValue(out), nil

	default:
		if len(a.Vec) != len(b.Vec) {
			return Value{}, ErrMismatchedList.With(
				slog.String("operation", op),
				slog.Int("left_len", len(a.Vec)),
				slog.Int("right_len", len(b.Vec)),
			)
		}

		out := make([]float64, len(a.Vec))

		for i := range a.Vec {
			n, err := f(a.Vec[i], b.Vec[i])
			if err != nil {
				return Value{}, err
			}

			out[i] = n
		}

		return VecValue(out), nil
	}
}

// pair is one broadcast operand pairing produced by pairs.
type pair struct {
	a, b float64
}

// pairs enumerates the broadcast pairings of two values under the same
// policy as combine, without applying a combiner. The roll combiner uses
// this to expand each pairing into a variable number of dice rather than a
// single result.
func pairs(op string, a, b Value) ([]pair, error) {
	switch {
	case !a.IsVector() && !b.IsVector():
		return []pair{{a.Num, b.Num}}, nil

	case a.IsVector() && !b.IsVector():
		out := make([]pair, len(a.Vec))
		for i, x := range a.Vec {
			out[i] = pair{x, b.Num}
		}

		return out, nil

	case !a.IsVector() && b.IsVector():
		out := make([]pair, len(b.Vec))
		for i, y := range b.Vec {
			out[i] = pair{a.Num, y}
		}

		return out, nil

	default:
		if len(a.Vec) != len(b.Vec) {
			return nil, ErrMismatchedList.With(
				slog.String("operation", op),
				slog.Int("left_len", len(a.Vec)),
				slog.Int("right_len", len(b.Vec)),
			)
		}

		out := make([]pair, len(a.Vec))
		for i := range a.Vec {
			out[i] = pair{a.Vec[i], b.Vec[i]}
		}

		return out, nil
	}
}
