package lang

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
)

// ToValue returns the value in its natural Go shape for serialization:
// float64 for scalars, []float64 for lists.
func (v Value) ToValue() any {
	if v.IsVector() {
		return v.Nums()
	}

	return v.Num
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (v Value) MarshalYAML() (any, error) { return v.ToValue(), nil }

// FormatYAML writes the value as YAML to the writer. An indent of zero
// produces flow style on one line.
func (v Value) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v.ToValue(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(data))

	return err
}

// LoadBindings reads a YAML mapping of variable bindings. Keys must be
// single characters; values may be numbers, expression strings, or lists
// of either.
func LoadBindings(ctx context.Context, r io.Reader) (Bindings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "bindings"))
	}

	var raw map[string]any
	if err := yaml.UnmarshalContext(ctx, data, &raw); err != nil {
		return nil, ErrInvalidBinding.Wrap(err)
	}

	bindings := make(Bindings, len(raw))

	for key, val := range raw {
		name, size := utf8.DecodeRuneInString(key)
		if size != len(key) || name == utf8.RuneError {
			return nil, ErrInvalidBinding.With(
				slog.String("name", key),
				slog.String("issue", "binding names are single characters"),
			)
		}

		bindings[name] = val
	}

	return bindings, nil
}
