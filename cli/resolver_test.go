package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolve(t *testing.T, yaml, flagName string) any {
	t.Helper()

	r, err := resolveYAML(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	value, err := r.Resolve(nil, nil, &kong.Flag{
		Value: &kong.Value{Name: flagName},
	})
	if err != nil {
		t.Fatalf("resolve %q: %v", flagName, err)
	}

	return value
}

func TestResolveYAML_HyphenAndUnderscore(t *testing.T) {
	const doc = "log_level: debug\nlog-format: text\n"

	if got := resolve(t, doc, "log-level"); got != "debug" {
		t.Errorf("expected underscore key to resolve, got %v", got)
	}

	if got := resolve(t, doc, "log-format"); got != "text" {
		t.Errorf("expected hyphen key to resolve, got %v", got)
	}
}

func TestResolveYAML_NumbersAsStrings(t *testing.T) {
	const doc = "times: 3\ndepth: 2.5\n"

	got := resolve(t, doc, "times")
	if s, ok := got.(string); !ok || s != "3" {
		t.Errorf("expected integer as string \"3\", got %#v", got)
	}

	got = resolve(t, doc, "depth")
	if s, ok := got.(string); !ok || s != "2.5" {
		t.Errorf("expected float as string \"2.5\", got %#v", got)
	}
}

func TestResolveYAML_MissingKey(t *testing.T) {
	if got := resolve(t, "times: 3\n", "explode"); got != nil {
		t.Errorf("expected nil for unset flag, got %v", got)
	}
}

func TestResolveYAML_Malformed(t *testing.T) {
	r, err := resolveYAML(strings.NewReader("times: [1,\n"))
	if err != nil {
		t.Fatalf("expected malformed config to be ignored, got %v", err)
	}

	value, err := r.Resolve(nil, nil, &kong.Flag{
		Value: &kong.Value{Name: "times"},
	})
	if err != nil || value != nil {
		t.Errorf("expected empty resolver, got %v, %v", value, err)
	}
}
