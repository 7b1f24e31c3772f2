package lang

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Operator binding strength, loosest to tightest. The formatter uses these
// to emit only the parentheses the grammar requires.
const (
	precSeparator = iota
	precSum
	precProduct
	precPower
	precRoll
	precAtom
)

func precedence(e *Expr) int {
	switch e.Kind {
	case KindBinary:
		switch e.Op {
		case '+', '-':
			return precSum
		case '*', '/', '%':
			return precProduct
		case '^':
			return precPower
		}

		return precAtom

	case KindRoll:
		return precRoll

	case KindSeparator:
		return precSeparator

	default:
		return precAtom
	}
}

// String renders the expression in canonical source syntax: minimal
// parentheses, no whitespace, lowercase d. Formatting then re-parsing an
// expression yields an identical tree.
func (e *Expr) String() string {
	var sb strings.Builder

	formatExpr(&sb, e, precSeparator)

	return sb.String()
}

// Format writes the expression in canonical source syntax to the writer.
func (e *Expr) Format(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, e.String())

	return err
}

// formatExpr writes e, parenthesizing when its binding is looser than the
// context requires.
func formatExpr(sb *strings.Builder, e *Expr, min int) {
	prec := precedence(e)

	if prec < min {
		sb.WriteByte('(')
		formatExpr(sb, e, precSeparator)
		sb.WriteByte(')')

		return
	}

	switch e.Kind {
	case KindNumber:
		sb.WriteString(formatNum(e.Number))

	case KindVariable:
		sb.WriteRune(e.Name)

	case KindBinary:
		// Left-associative at equal precedence, so the right operand of
		// a non-commutative chain needs one level tighter. '^' is the
		// right-associative exception.
		rightMin := prec + 1
		if e.Op == '^' {
			formatExpr(sb, e.Left, prec+1)
			sb.WriteByte(e.Op)
			formatExpr(sb, e.Right, prec)

			return
		}

		formatExpr(sb, e.Left, prec)
		sb.WriteByte(e.Op)
		formatExpr(sb, e.Right, rightMin)

	case KindRoll:
		formatExpr(sb, e.Left, precRoll)
		sb.WriteByte('d')
		formatExpr(sb, e.Right, precRoll+1)

	case KindSeparator:
		formatExpr(sb, e.Left, precSeparator)
		sb.WriteByte(',')
		formatExpr(sb, e.Right, precSum)

	default:
		sb.WriteString("<unknown>")
	}
}
