package lang

import (
	"errors"
	"testing"
)

func TestRoll_SumWithinBounds(t *testing.T) {
	roll, err := CompileString(t.Context(), "3d6")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	for range 100 {
		val, err := roll.Invoke(t.Context(), nil)
		if err != nil {
			t.Fatalf("invoke error: %v", err)
		}

		if val.IsVector() {
			t.Fatalf("expected scalar sum, got %v", val)
		}

		if val.Num < 3 || val.Num > 18 {
			t.Errorf("3d6 out of range: %v", val.Num)
		}
	}
}

func TestRoll_KeepCardinality(t *testing.T) {
	roll, err := CompileString(
		t.Context(),
		"4d8",
		WithRoller(seqRoller(1, 2, 3, 4)),
	)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	val, err := roll.Invoke(t.Context(), nil, WithKeep())
	if err != nil {
		t.Fatalf("invoke error: %v", err)
	}

	if !val.Equal(VecValue([]float64{1, 2, 3, 4})) {
		t.Errorf("expected [1, 2, 3, 4], got %v", val)
	}
}

func TestRoll_ImplicitCount(t *testing.T) {
	val, err := RollString(t.Context(), "d20", nil)
	if err != nil {
		t.Fatalf("roll error: %v", err)
	}

	if val.Num < 1 || val.Num > 20 {
		t.Errorf("d20 out of range: %v", val.Num)
	}
}

func TestRoll_Explode(t *testing.T) {
	// First die explodes twice (6, 6, 2 = 14), second die is a plain 3.
	roll, err := CompileString(
		t.Context(),
		"2d6",
		WithRoller(seqRoller(6, 6, 2, 3)),
	)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	val, err := roll.Invoke(t.Context(), nil, WithExplode())
	if err != nil {
		t.Fatalf("invoke error: %v", err)
	}

	if !val.Equal(NumValue(17)) {
		t.Errorf("expected 17, got %v", val)
	}
}

func TestRoll_ExplodeOneSidedTerminates(t *testing.T) {
	roll, err := CompileString(t.Context(), "3d1")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	val, err := roll.Invoke(t.Context(), nil, WithExplode())
	if err != nil {
		t.Fatalf("invoke error: %v", err)
	}

	// Each one-sided die contributes exactly one draw.
	if !val.Equal(NumValue(3)) {
		t.Errorf("expected 3, got %v", val)
	}
}

func TestRoll_ZeroDice(t *testing.T) {
	for _, source := range []string{"0d6", "3d0"} {
		val, err := RollString(t.Context(), source, nil)
		if err != nil {
			t.Fatalf("%s: roll error: %v", source, err)
		}

		if !val.Equal(NumValue(0)) {
			t.Errorf("%s: expected 0, got %v", source, val)
		}
	}
}

func TestRoll_NegativeArguments(t *testing.T) {
	for _, source := range []string{"(0-1)d6", "3d(0-6)"} {
		_, err := RollString(t.Context(), source, nil)
		if !errors.Is(err, ErrNegativeDice) {
			t.Errorf("%s: expected ErrNegativeDice, got %v", source, err)
		}
	}
}

func TestRoll_NestedOperands(t *testing.T) {
	// (1d4)d(1d6): inner rolls produce 2 and 3, outer rolls 2d3.
	roll, err := CompileString(
		t.Context(),
		"(1d4)d(1d6)",
		WithRoller(seqRoller(2, 3, 1, 2)),
	)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	val, err := roll.Invoke(t.Context(), nil)
	if err != nil {
		t.Fatalf("invoke error: %v", err)
	}

	if !val.Equal(NumValue(3)) {
		t.Errorf("expected 3, got %v", val)
	}
}

func TestRoll_ListSidesExpandsGroups(t *testing.T) {
	// Sides bound to a list: each pairing rolls its own group of dice.
	// 2 dice against [6, 8] yields four dice: two d6 then two d8.
	roll, err := CompileString(
		t.Context(),
		"2dx",
		WithRoller(seqRoller(1, 2, 3, 4)),
	)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	val, err := roll.Invoke(
		t.Context(),
		Bindings{'x': []any{6, 8}},
		WithKeep(),
	)
	if err != nil {
		t.Fatalf("invoke error: %v", err)
	}

	if !val.Equal(VecValue([]float64{1, 2, 3, 4})) {
		t.Errorf("expected [1, 2, 3, 4], got %v", val)
	}
}

func TestRoll_ListCountMismatch(t *testing.T) {
	roll, err := CompileString(t.Context(), "xdy")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	_, err = roll.Invoke(t.Context(), Bindings{
		'x': []any{1, 2},
		'y': []any{6, 6, 6},
	})
	if !errors.Is(err, ErrMismatchedList) {
		t.Errorf("expected ErrMismatchedList, got %v", err)
	}
}

func TestRoll_FractionalOperandsRound(t *testing.T) {
	// 2.5d6 rounds the count to 3 dice before rolling.
	roll, err := CompileString(
		t.Context(),
		"2.5d6",
		WithRoller(seqRoller(1, 1, 1, 1)),
	)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	val, err := roll.Invoke(t.Context(), nil)
	if err != nil {
		t.Fatalf("invoke error: %v", err)
	}

	if !val.Equal(NumValue(3)) {
		t.Errorf("expected 3 dice summing to 3, got %v", val)
	}
}
