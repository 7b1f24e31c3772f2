package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/droll/log"
)

// Init writes a default configuration file to the user config directory.
type Init struct {
	Path  string `default:"${config}" help:"Configuration file path"`
	Force bool   `                    help:"Overwrite an existing file" short:"f"`
}

// defaultConfig holds the flag defaults written by init. Keys use the
// underscore spelling accepted by the config resolver.
var defaultConfig = map[string]any{
	"log_level":  "info",
	"log_format": "json",
	"log_pretty": true,
	"explode":    false,
	"keep":       false,
	"lowest":     false,
	"times":      1,
	"depth":      100,
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	if !i.Force {
		if _, err := os.Stat(i.Path); err == nil {
			return ErrFileExists.With(slog.String("path", i.Path))
		}
	}

	data, err := yaml.MarshalContext(ctx, defaultConfig)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	err = os.MkdirAll(filepath.Dir(i.Path), 0o700)
	if err != nil {
		return ErrWriteConfig.Wrap(err).With(slog.String("path", i.Path))
	}

	err = os.WriteFile(i.Path, data, 0o600)
	if err != nil {
		return ErrWriteConfig.Wrap(err).With(slog.String("path", i.Path))
	}

	log.InfoContext(ctx, "configuration written",
		slog.String("path", i.Path),
	)

	return nil
}
