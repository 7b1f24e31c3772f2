package lang

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// FilterKind enumerates the result filters.
type FilterKind int

// Filter kinds. Comparators keep the elements satisfying the relation
// against a threshold; drops discard extreme elements.
const (
	FilterGE FilterKind = iota // keep >= threshold
	FilterLE                   // keep <= threshold
	FilterEQ                   // keep == threshold
	FilterNE                   // keep != threshold
	FilterGT                   // keep > threshold
	FilterLT                   // keep < threshold
	FilterDropLowest
	FilterDropHighest
	FilterDropBoth
)

// String returns the canonical spelling of the filter kind.
func (k FilterKind) String() string {
	switch k {
	case FilterGE:
		return ">="
	case FilterLE:
		return "<="
	case FilterEQ:
		return "="
	case FilterNE:
		return "!="
	case FilterGT:
		return ">"
	case FilterLT:
		return "<"
	case FilterDropLowest:
		return "drop-lowest"
	case FilterDropHighest:
		return "drop-highest"
	case FilterDropBoth:
		return "drop-both"
	default:
		return "FilterKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Filter is one post-evaluation result filter. Threshold is meaningful only
// for comparator kinds.
type Filter struct {
	Kind      FilterKind
	Threshold float64
}

// String returns the filter in the form accepted by ParseFilter.
func (f Filter) String() string {
	switch f.Kind {
	case FilterDropLowest, FilterDropHighest, FilterDropBoth:
		return f.Kind.String()
	default:
		return f.Kind.String() + ":" + formatNum(f.Threshold)
	}
}

// ParseFilter parses a filter specification of the form "OP:N" for
// comparators (">=:4", "!=:1") or a bare drop name ("drop-lowest",
// "drop-highest", "drop-both").
func ParseFilter(spec string) (Filter, error) {
	switch spec {
	case "drop-lowest":
		return Filter{Kind: FilterDropLowest}, nil
	case "drop-highest":
		return Filter{Kind: FilterDropHighest}, nil
	case "drop-both":
		return Filter{Kind: FilterDropBoth}, nil
	}

	op, num, ok := strings.Cut(spec, ":")
	if !ok {
		return Filter{}, NewError("unrecognized filter").With(
			slog.String("filter", spec),
		)
	}

	var kind FilterKind

	switch op {
	case ">=":
		kind = FilterGE
	case "<=":
		kind = FilterLE
	case "=", "==":
		kind = FilterEQ
	case "!=":
		kind = FilterNE
	case ">":
		kind = FilterGT
	case "<":
		kind = FilterLT
	default:
		return Filter{}, NewError("unrecognized filter operator").With(
			slog.String("filter", spec),
			slog.String("operator", op),
		)
	}

	threshold, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Filter{}, NewError("invalid filter threshold").Wrap(err).With(
			slog.String("filter", spec),
		)
	}

	return Filter{Kind: kind, Threshold: threshold}, nil
}

// applyFilters runs each filter over the value in order. A scalar is first
// wrapped as a one-element list, so filtered results are always lists, and
// a filter may legitimately produce an empty list.
func applyFilters(v Value, filters []Filter) Value {
	elems := append([]float64(nil), v.Nums()...)

	for _, f := range filters {
		elems = f.apply(elems)
	}

	return VecValue(elems)
}

func (f Filter) apply(elems []float64) []float64 {
	switch f.Kind {
	case FilterDropLowest:
		return dropExtreme(elems, true, false)
	case FilterDropHighest:
		return dropExtreme(elems, false, true)
	case FilterDropBoth:
		return dropExtreme(elems, true, true)
	}

	kept := elems[:0]

	for _, e := range elems {
		if f.keeps(e) {
			kept = append(kept, e)
		}
	}

	return kept
}

func (f Filter) keeps(e float64) bool {
	switch f.Kind {
	case FilterGE:
		return e >= f.Threshold
	case FilterLE:
		return e <= f.Threshold
	case FilterEQ:
		return e == f.Threshold
	case FilterNE:
		return e != f.Threshold
	case FilterGT:
		return e > f.Threshold
	case FilterLT:
		return e < f.Threshold
	default:
		return true
	}
}

// dropExtreme removes one instance of the minimum and/or maximum element,
// preserving the relative order of the rest. Ties drop a single instance.
func dropExtreme(elems []float64, low, high bool) []float64 {
	if len(elems) == 0 {
		return elems
	}

	idx := make([]int, len(elems))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		return elems[idx[a]] < elems[idx[b]]
	})

	skip := map[int]bool{}
	if low {
		skip[idx[0]] = true
	}

	if high {
		skip[idx[len(idx)-1]] = true
	}

	kept := make([]float64, 0, len(elems))

	for i, e := range elems {
		if !skip[i] {
			kept = append(kept, e)
		}
	}

	return kept
}
