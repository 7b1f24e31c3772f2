package cmd

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/droll/lang"
	"github.com/ardnew/droll/log"
)

// Roll compiles dice expressions and invokes them, printing one result per
// line. Expressions are given as arguments, or read one per line from the
// global --source files (or stdin) when no arguments are present.
type Roll struct {
	Expr []string `arg:"" help:"Dice expressions to roll" name:"expr" optional:""`

	Times    int      `default:"1"   help:"Invocations per expression"                                     short:"n"`
	Explode  bool     `              help:"Reroll and accumulate dice landing on their maximum face"       negatable:""`
	Keep     bool     `              help:"Keep individual die results as a list"                          negatable:"" short:"k"`
	Lowest   bool     `              help:"Prefer the lower value at ',' selectors"                        negatable:""`
	Filter   []string `              help:"Result filter: 'OP:N' or drop-lowest|drop-highest|drop-both"    short:"F"`
	Bindings string   `              help:"YAML file of variable bindings"                                 short:"b"    type:"existingfile"`
	Depth    int      `default:"100" help:"Maximum expression nesting depth"`
	YAML     bool     `              help:"Emit results as YAML"                                           negatable:""`
}

// Run executes the roll command.
func (r *Roll) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	sources, err := expressionSources(ctx, r.Expr)
	if err != nil {
		return err
	}

	opts, err := r.invokeOptions()
	if err != nil {
		return err
	}

	bindings, err := r.loadBindings(ctx)
	if err != nil {
		return err
	}

	out := stdout(ctx)

	for _, source := range sources {
		roll, err := lang.Obtain(ctx, source, lang.WithMaxDepth(r.Depth))
		if err != nil {
			return err
		}

		for range max(r.Times, 1) {
			val, err := roll.Invoke(ctx, bindings, opts...)
			if err != nil {
				return lang.WrapError(err).With(
					slog.String("source", source),
				)
			}

			if r.YAML {
				err = val.FormatYAML(ctx, out, 0)
				if err != nil {
					return err
				}

				continue
			}

			fmt.Fprintln(out, val)
		}
	}

	return nil
}

// invokeOptions converts the command flags into invocation options.
func (r *Roll) invokeOptions() ([]lang.InvokeOption, error) {
	var opts []lang.InvokeOption

	if r.Explode {
		opts = append(opts, lang.WithExplode())
	}

	if r.Keep {
		opts = append(opts, lang.WithKeep())
	}

	if r.Lowest {
		opts = append(opts, lang.WithLowest())
	}

	for _, spec := range r.Filter {
		f, err := lang.ParseFilter(spec)
		if err != nil {
			return nil, err
		}

		opts = append(opts, lang.WithFilter(f))
	}

	return opts, nil
}

// loadBindings reads the --bindings YAML file, if given.
func (r *Roll) loadBindings(ctx context.Context) (lang.Bindings, error) {
	if r.Bindings == "" {
		return nil, nil
	}

	file, err := os.Open(r.Bindings)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	bindings, err := lang.LoadBindings(ctx, bufio.NewReader(file))
	if err != nil {
		return nil, err
	}

	log.DebugContext(ctx, "bindings loaded",
		slog.String("path", r.Bindings),
		slog.Int("count", len(bindings)),
	)

	return bindings, nil
}

// expressionSources returns the expressions to process: the arguments as
// given, or otherwise one expression per non-blank line of the source files
// attached to the context.
func expressionSources(ctx context.Context, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	src := sourceFilesFrom(ctx)
	if src == nil {
		return nil, ErrNoExpression
	}

	var sources []string

	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		sources = append(sources, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(sources) == 0 {
		return nil, ErrNoExpression
	}

	return sources, nil
}
