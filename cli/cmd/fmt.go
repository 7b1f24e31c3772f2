package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/droll/lang"
)

// Fmt parses dice expressions and prints their canonical form: minimal
// parentheses, no whitespace, lowercase d. Formatting then re-parsing an
// expression yields an identical tree.
type Fmt struct {
	Expr []string `arg:"" help:"Dice expressions to format" name:"expr" optional:""`

	Tree bool `help:"Print the expression tree instead of canonical text" negatable:""`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	sources, err := expressionSources(ctx, f.Expr)
	if err != nil {
		return err
	}

	out := stdout(ctx)

	for _, source := range sources {
		expr, err := lang.ParseString(ctx, source)
		if err != nil {
			return lang.WrapError(err).With(
				slog.String("source", source),
			)
		}

		if f.Tree {
			printTree(out, expr, 0)

			continue
		}

		fmt.Fprintln(out, expr)
	}

	return nil
}

// printTree writes an indented rendering of the expression tree.
func printTree(w io.Writer, e *lang.Expr, depth int) {
	for range depth {
		fmt.Fprint(w, "  ")
	}

	switch e.Kind {
	case lang.KindNumber:
		fmt.Fprintf(w, "Number %s\n", lang.NumValue(e.Number))

	case lang.KindVariable:
		fmt.Fprintf(w, "Variable %c\n", e.Name)

	case lang.KindBinary:
		fmt.Fprintf(w, "Binary %c\n", e.Op)
		printTree(w, e.Left, depth+1)
		printTree(w, e.Right, depth+1)

	case lang.KindRoll:
		fmt.Fprintln(w, "Roll")
		printTree(w, e.Left, depth+1)
		printTree(w, e.Right, depth+1)

	case lang.KindSeparator:
		fmt.Fprintln(w, "Separator")
		printTree(w, e.Left, depth+1)
		printTree(w, e.Right, depth+1)
	}
}
