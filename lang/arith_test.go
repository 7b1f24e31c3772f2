package lang

import (
	"errors"
	"testing"
)

func TestArith_DivisionByZero(t *testing.T) {
	_, err := RollString(t.Context(), "x/0", Bindings{'x': 1})
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestArith_ModuloByZero(t *testing.T) {
	_, err := RollString(t.Context(), "x%0", Bindings{'x': 1})
	if !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestArith_ModuloNonInteger(t *testing.T) {
	// Integrality is checked before the zero divisor, so 1.5 % 0 reports
	// the non-integer operand.
	for _, source := range []string{"1.5%x", "x%2.5", "1.5%(x-1)"} {
		_, err := RollString(t.Context(), source, Bindings{'x': 1})
		if !errors.Is(err, ErrNonIntegerModulo) {
			t.Errorf("%s: expected ErrNonIntegerModulo, got %v", source, err)
		}
	}
}

func TestArith_ModuloSign(t *testing.T) {
	// Truncated (Go-style) remainder: sign follows the dividend.
	tests := []struct {
		source string
		want   float64
	}{
		{"7%3", 1},
		{"(0-7)%3", -1},
		{"7%(0-3)", 1},
	}

	for _, tt := range tests {
		val, err := RollString(t.Context(), tt.source, nil)
		if err != nil {
			t.Fatalf("%s: roll error: %v", tt.source, err)
		}

		if !val.Equal(NumValue(tt.want)) {
			t.Errorf("%s: expected %v, got %v", tt.source, tt.want, val)
		}
	}
}

func TestArith_RealDivisionUntilRounding(t *testing.T) {
	// Intermediate values stay fractional; only the final result rounds.
	// 5/2*2 = 5 exactly, not round(2.5)*2 = 6.
	val, err := RollString(t.Context(), "5/2*2", nil)
	if err != nil {
		t.Fatalf("roll error: %v", err)
	}

	if !val.Equal(NumValue(5)) {
		t.Errorf("expected 5, got %v", val)
	}
}

func TestBroadcast_ScalarList(t *testing.T) {
	roll, err := CompileString(
		t.Context(),
		"3d6+2",
		WithRoller(seqRoller(1, 2, 3)),
	)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	val, err := roll.Invoke(t.Context(), nil, WithKeep())
	if err != nil {
		t.Fatalf("invoke error: %v", err)
	}

	if !val.Equal(VecValue([]float64{3, 4, 5})) {
		t.Errorf("expected [3, 4, 5], got %v", val)
	}
}

func TestBroadcast_ListScalar(t *testing.T) {
	roll, err := CompileString(
		t.Context(),
		"10-2d4",
		WithRoller(seqRoller(1, 2)),
	)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	val, err := roll.Invoke(t.Context(), nil, WithKeep())
	if err != nil {
		t.Fatalf("invoke error: %v", err)
	}

	if !val.Equal(VecValue([]float64{9, 8})) {
		t.Errorf("expected [9, 8], got %v", val)
	}
}

func TestBroadcast_PairwiseEqualLengths(t *testing.T) {
	roll, err := CompileString(
		t.Context(),
		"2d6+2d6",
		WithRoller(seqRoller(1, 2, 3, 4)),
	)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	val, err := roll.Invoke(t.Context(), nil, WithKeep())
	if err != nil {
		t.Fatalf("invoke error: %v", err)
	}

	if !val.Equal(VecValue([]float64{4, 6})) {
		t.Errorf("expected [4, 6], got %v", val)
	}
}

func TestBroadcast_MismatchedLengths(t *testing.T) {
	roll, err := CompileString(t.Context(), "2d6+3d6")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	_, err = roll.Invoke(t.Context(), nil, WithKeep())
	if !errors.Is(err, ErrMismatchedList) {
		t.Errorf("expected ErrMismatchedList, got %v", err)
	}
}
