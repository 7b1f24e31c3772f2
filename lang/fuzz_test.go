package lang

import "testing"

// FuzzParseString checks that parsing arbitrary input never panics and that
// the canonical form of any accepted expression is a fixed point: it must
// reparse, and reformat to itself.
func FuzzParseString(f *testing.F) {
	for _, seed := range []string{
		"3d6+2",
		"d20",
		"(1d4)d(1d6)",
		"2^3^2",
		"-x*2.5",
		"1,2d6,x",
		"7%3/2",
		"2d(3+1)",
		"",
		"((((1))))",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, src string) {
		expr, err := ParseString(t.Context(), src)
		if err != nil {
			return
		}

		canon := expr.String()

		again, err := ParseString(t.Context(), canon)
		if err != nil {
			t.Fatalf("canonical form %q of %q does not reparse: %v",
				canon, src, err)
		}

		if got := again.String(); got != canon {
			t.Fatalf("canonical form not stable: %q reformats to %q",
				canon, got)
		}
	})
}
