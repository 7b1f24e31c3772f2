package lang

import (
	"context"
	"log/slog"
	"math"
	"math/rand/v2"
)

// defaultRoller draws a uniform die result in [1, sides] from the shared
// math/rand/v2 source, which is safe for concurrent use by independent
// invocations.
func defaultRoller(sides int) int {
	return rand.IntN(sides) + 1
}

// compileRoll compiles a dice node: count d sides. Count and sides compile
// independently like arithmetic operands, but the combination is always
// deferred since every invocation must consume fresh randomness.
func (r *Roll) compileRoll(e *Expr) compiled {
	count := r.compile(e.Left)
	sides := r.compile(e.Right)

	return deferred(
		func(ctx context.Context, inv *invocation) (Value, error) {
			n, err := count.run(ctx, inv)
			if err != nil {
				return Value{}, err
			}

			s, err := sides.run(ctx, inv)
			if err != nil {
				return Value{}, err
			}

			return rollDice(inv, n, s)
		},
	)
}

// rollDice evaluates the roll combination for one invocation.
//
// When either operand is a list, the pairing follows the shared broadcast
// policy, but each pairing expands to its own group of dice and the groups
// concatenate into one flat ordered list. This is deliberately different
// from the index-wise pairing of arithmetic: 2 rolls against [6, 8] yields
// four dice (two d6 then two d8), not two.
//
// With the keep option set the flat list of die results is returned as a
// vector; otherwise their sum is returned as a scalar. A roll with zero
// count or zero sides contributes no dice and short-circuits to 0 without
// consuming randomness.
func rollDice(inv *invocation, n, s Value) (Value, error) {
	groups, err := pairs("d", n, s)
	if err != nil {
		return Value{}, err
	}

	var results []float64

	for _, g := range groups {
		if g.a < 0 || g.b < 0 {
			return Value{}, ErrNegativeDice.With(
				slog.Float64("count", g.a),
				slog.Float64("sides", g.b),
			)
		}

		count := int(math.Round(g.a))
		sides := int(math.Round(g.b))

		if count == 0 || sides == 0 {
			continue
		}

		for range count {
			results = append(
				results,
				float64(rollDie(inv.cfg.roller, sides, inv.opts.Explode)),
			)
		}
	}

	if len(results) == 0 {
		return NumValue(0), nil
	}

	if inv.opts.Keep {
		return VecValue(results), nil
	}

	var sum float64
	for _, v := range results {
		sum += v
	}

	return NumValue(sum), nil
}

// rollDie produces a single die result. Without explode it is one uniform
// draw in [1, sides]. With explode, draws accumulate and continue as long
// as each lands on the maximum face. A one-sided die always lands on its
// maximum, so it is treated as a single non-exploding draw to guarantee
// termination.
func rollDie(roll Roller, sides int, explode bool) int {
	if !explode || sides <= 1 {
		return roll(sides)
	}

	total := 0

	for {
		v := roll(sides)
		total += v

		if v != sides {
			return total
		}
	}
}
