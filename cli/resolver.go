package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] that reads flag defaults from
// a YAML mapping. It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolveYAML, "/path/to/config.yaml")
//
// Flag names with hyphens (e.g., "log-level") may use underscores in the
// config file (e.g., "log_level"); both spellings resolve. Command-line
// flags override config file values.
//
// Example config file:
//
//	log_level: debug
//	log_format: text
//	log_pretty: true
//	explode: false
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		// Malformed config - ignore it and fall back to flag defaults
		return config{}, nil
	}

	return config(values), nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	// No validation needed - the config was already parsed successfully
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Kong flags use hyphens (e.g., "log-level") but YAML keys may use
	// underscores. Try both forms.
	name := flag.Name
	underscoreName := strings.ReplaceAll(name, "-", "_")

	value, ok := r[name]
	if !ok {
		value, ok = r[underscoreName]
	}

	if !ok {
		// Not found - return nil to let Kong use defaults
		return nil, nil
	}

	// Kong requires numbers as strings for parsing
	switch num := value.(type) {
	case int64:
		return strconv.FormatInt(num, 10), nil
	case uint64:
		return strconv.FormatUint(num, 10), nil
	case float64:
		return strconv.FormatFloat(num, 'f', -1, 64), nil
	default:
		return value, nil
	}
}
