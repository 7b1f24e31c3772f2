package lang

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadBindings(t *testing.T) {
	const doc = `
x: 3
y: 2.5
s: 2d6+1
l:
  - 1
  - 2
  - 3
`

	bindings, err := LoadBindings(t.Context(), strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if len(bindings) != 4 {
		t.Fatalf("expected 4 bindings, got %d", len(bindings))
	}

	roll, err := CompileString(
		t.Context(),
		"x+y",
		WithRoller(seqRoller(1)),
	)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	val, err := roll.Invoke(t.Context(), bindings)
	if err != nil {
		t.Fatalf("invoke error: %v", err)
	}

	// 3 + 2.5 rounds to 6.
	if !val.Equal(NumValue(6)) {
		t.Errorf("expected 6, got %v", val)
	}

	list, err := CompileString(t.Context(), "l")
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	lv, err := list.Invoke(t.Context(), bindings)
	if err != nil {
		t.Fatalf("invoke error: %v", err)
	}

	if !lv.Equal(VecValue([]float64{1, 2, 3})) {
		t.Errorf("expected [1, 2, 3], got %v", lv)
	}
}

func TestLoadBindings_MultiCharacterName(t *testing.T) {
	_, err := LoadBindings(t.Context(), strings.NewReader("ab: 1\n"))
	if !errors.Is(err, ErrInvalidBinding) {
		t.Errorf("expected ErrInvalidBinding, got %v", err)
	}
}

func TestLoadBindings_Malformed(t *testing.T) {
	_, err := LoadBindings(t.Context(), strings.NewReader("x: [1,\n"))
	if err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValue_FormatYAML(t *testing.T) {
	var sb strings.Builder

	err := NumValue(7).FormatYAML(t.Context(), &sb, 0)
	if err != nil {
		t.Fatalf("format error: %v", err)
	}

	if strings.TrimSpace(sb.String()) != "7" {
		t.Errorf("expected scalar 7, got %q", sb.String())
	}

	sb.Reset()

	err = VecValue([]float64{1, 2}).FormatYAML(t.Context(), &sb, 0)
	if err != nil {
		t.Fatalf("format error: %v", err)
	}

	got := strings.TrimSpace(sb.String())
	if !strings.Contains(got, "1") || !strings.Contains(got, "2") {
		t.Errorf("expected flow sequence of 1 and 2, got %q", got)
	}
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		val  Value
		want string
	}{
		{NumValue(3), "3"},
		{NumValue(2.5), "2.5"},
		{NumValue(-4), "-4"},
		{VecValue([]float64{1, 2, 3}), "[1, 2, 3]"},
		{VecValue(nil), "[]"},
	}

	for _, tt := range tests {
		if got := tt.val.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
