package lang

import (
	"testing"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		spec string
		want Filter
	}{
		{">=:4", Filter{Kind: FilterGE, Threshold: 4}},
		{"<=:2", Filter{Kind: FilterLE, Threshold: 2}},
		{"=:3", Filter{Kind: FilterEQ, Threshold: 3}},
		{"==:3", Filter{Kind: FilterEQ, Threshold: 3}},
		{"!=:1", Filter{Kind: FilterNE, Threshold: 1}},
		{">:2.5", Filter{Kind: FilterGT, Threshold: 2.5}},
		{"<:6", Filter{Kind: FilterLT, Threshold: 6}},
		{"drop-lowest", Filter{Kind: FilterDropLowest}},
		{"drop-highest", Filter{Kind: FilterDropHighest}},
		{"drop-both", Filter{Kind: FilterDropBoth}},
	}

	for _, tt := range tests {
		got, err := ParseFilter(tt.spec)
		if err != nil {
			t.Fatalf("%s: parse error: %v", tt.spec, err)
		}

		if got != tt.want {
			t.Errorf("%s: expected %+v, got %+v", tt.spec, tt.want, got)
		}
	}
}

func TestParseFilter_Invalid(t *testing.T) {
	for _, spec := range []string{"", "drop", ">=", ">=:", ">=:x", "~:1"} {
		_, err := ParseFilter(spec)
		if err == nil {
			t.Errorf("%q: expected error", spec)
		}
	}
}

func TestApplyFilters_Comparator(t *testing.T) {
	val := applyFilters(
		VecValue([]float64{1, 4, 2, 6, 4}),
		[]Filter{{Kind: FilterGE, Threshold: 4}},
	)

	if !val.Equal(VecValue([]float64{4, 6, 4})) {
		t.Errorf("expected [4, 6, 4], got %v", val)
	}
}

func TestApplyFilters_DropLowest(t *testing.T) {
	val := applyFilters(
		VecValue([]float64{3, 1, 4, 1}),
		[]Filter{{Kind: FilterDropLowest}},
	)

	// Only one instance of the minimum drops, order preserved.
	if !val.Equal(VecValue([]float64{3, 4, 1})) {
		t.Errorf("expected [3, 4, 1], got %v", val)
	}
}

func TestApplyFilters_DropBoth(t *testing.T) {
	val := applyFilters(
		VecValue([]float64{3, 1, 4, 2}),
		[]Filter{{Kind: FilterDropBoth}},
	)

	if !val.Equal(VecValue([]float64{3, 2})) {
		t.Errorf("expected [3, 2], got %v", val)
	}
}

func TestApplyFilters_ScalarWrapped(t *testing.T) {
	val := applyFilters(
		NumValue(5),
		[]Filter{{Kind: FilterGE, Threshold: 4}},
	)

	if !val.Equal(VecValue([]float64{5})) {
		t.Errorf("expected [5], got %v", val)
	}
}

func TestApplyFilters_EmptyResult(t *testing.T) {
	val := applyFilters(
		NumValue(2),
		[]Filter{{Kind: FilterGE, Threshold: 4}},
	)

	if !val.IsVector() || val.Len() != 0 {
		t.Errorf("expected empty list, got %v", val)
	}
}

func TestApplyFilters_Chained(t *testing.T) {
	val := applyFilters(
		VecValue([]float64{1, 2, 3, 4, 5, 6}),
		[]Filter{
			{Kind: FilterGE, Threshold: 3},
			{Kind: FilterDropHighest},
		},
	)

	if !val.Equal(VecValue([]float64{3, 4, 5})) {
		t.Errorf("expected [3, 4, 5], got %v", val)
	}
}

func TestInvoke_FilterAfterRounding(t *testing.T) {
	// 5/2 rounds to 3 before the filter sees it.
	roll, err := CompileString(t.Context(), "5/2")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	val, err := roll.Invoke(
		t.Context(),
		nil,
		WithFilter(Filter{Kind: FilterGE, Threshold: 3}),
	)
	if err != nil {
		t.Fatalf("invoke error: %v", err)
	}

	if !val.Equal(VecValue([]float64{3})) {
		t.Errorf("expected [3], got %v", val)
	}
}
