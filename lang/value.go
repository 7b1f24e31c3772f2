package lang

import (
	"math"
	"strconv"
	"strings"
)

// Shape indicates whether a Value holds a single number or an ordered list.
type Shape int

const (
	// Scalar is a single numeric result.
	Scalar Shape = iota

	// Vector is a non-empty ordered list of numeric results, produced when
	// the keep option is active for one or more roll or selector subtrees.
	Vector
)

// String returns a string representation of the value shape.
func (s Shape) String() string {
	switch s {
	case Scalar:
		return "Scalar"

	case Vector:
		return "Vector"

	default:
		return "Unknown"
	}
}

// Value is the result of invoking a compiled roll: either a single number or
// an ordered list of numbers. The zero value is the scalar 0.
type Value struct {
	Shape  Shape
	Num    float64   // Scalar
	Vec    []float64 // Vector
}

// NumValue constructs a scalar value.
func NumValue(v float64) Value { return Value{Shape: Scalar, Num: v} }

// VecValue constructs a vector value. The caller retains no reference to vs.
func VecValue(vs []float64) Value { return Value{Shape: Vector, Vec: vs} }

// IsVector reports whether the value is a list.
func (v Value) IsVector() bool { return v.Shape == Vector }

// Nums returns the value's numbers: the vector itself, or a one-element
// slice for a scalar.
func (v Value) Nums() []float64 {
	if v.Shape == Vector {
		return v.Vec
	}

	return []float64{v.Num}
}

// Sum returns the sum of all numbers in the value.
func (v Value) Sum() float64 {
	if v.Shape == Scalar {
		return v.Num
	}

	var sum float64
	for _, n := range v.Vec {
		sum += n
	}

	return sum
}

// Len returns the number of elements: 1 for a scalar.
func (v Value) Len() int {
	if v.Shape == Vector {
		return len(v.Vec)
	}

	return 1
}

// Equal reports whether two values have the same shape and contents.
func (v Value) Equal(o Value) bool {
	if v.Shape != o.Shape {
		return false
	}

	if v.Shape == Scalar {
		return v.Num == o.Num
	}

	if len(v.Vec) != len(o.Vec) {
		return false
	}

	for i := range v.Vec {
		if v.Vec[i] != o.Vec[i] {
			return false
		}
	}

	return true
}

// Round returns the value with every numeric leaf rounded to an integer.
// Rounding is half away from zero: 2.5 rounds to 3 and -2.5 rounds to -3.
func (v Value) Round() Value {
	if v.Shape == Scalar {
		return NumValue(math.Round(v.Num))
	}

	out := make([]float64, len(v.Vec))
	for i, n := range v.Vec {
		out[i] = math.Round(n)
	}

	return VecValue(out)
}

// String formats the value: a bare number for scalars, or a bracketed
// comma-separated list for vectors.
func (v Value) String() string {
	if v.Shape == Scalar {
		return formatNum(v.Num)
	}

	parts := make([]string, len(v.Vec))
	for i, n := range v.Vec {
		parts[i] = formatNum(n)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// formatNum renders integral floats without a decimal point. Values outside
// the int64 range fall through to the float formatter.
func formatNum(f float64) string {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return strconv.FormatInt(int64(f), 10)
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// isIntegral reports whether f has no fractional part.
func isIntegral(f float64) bool {
	return f == math.Trunc(f) && !math.IsInf(f, 0) && !math.IsNaN(f)
}
