package analysis

import (
	"errors"
	"math"
	"sort"
)

// quantileDisabledAt is the quantile at or above which trimming is off.
const quantileDisabledAt = 0.9999

// ErrMatchWithQuantile rejects episode matching combined with trimming.
var ErrMatchWithQuantile = errors.New("do not support matching with quantiles")

// Reduction is applied to every input after trial filtering. Exactly one of
// NoReduction, MatchEpisodes or QuantileTrim.
type Reduction interface {
	// apply reduces the step tables in place. Nil entries are absent inputs.
	apply(steps [][][]int, episodes int)
}

// NoReduction leaves tables as filtered.
type NoReduction struct{}

// MatchEpisodes sorts every column independently and truncates all inputs to
// the smallest row count among them (capped by the retained episode count).
//
// Sorting columns independently breaks the link between values of one trial
// row. This matches how results have always been compared, and is probably
// not what was intended.
type MatchEpisodes struct{}

// QuantileTrim sorts every column and drops DropCount(episodes) rows from
// each end.
type QuantileTrim struct {
	Quantile float64
}

// NewReduction picks the reduction for the given options. Matching together
// with an active quantile is rejected.
func NewReduction(match bool, quantile float64) (Reduction, error) {
	useQuantile := quantile < quantileDisabledAt
	switch {
	case match && useQuantile:
		return nil, ErrMatchWithQuantile
	case match:
		return MatchEpisodes{}, nil
	case useQuantile:
		return QuantileTrim{Quantile: quantile}, nil
	default:
		return NoReduction{}, nil
	}
}

// DropCount is floor((1-q) * 0.5 * episodes + 0.5). episodes is the number of
// retained reference labels, not the rows of any particular input.
func (q QuantileTrim) DropCount(episodes int) int {
	return int(math.Floor((1.0-q.Quantile)*0.5*float64(episodes) + 0.5))
}

func (NoReduction) apply([][][]int, int) {}

func (MatchEpisodes) apply(steps [][][]int, episodes int) {
	n := episodes
	for _, s := range steps {
		if s != nil && len(s) < n {
			n = len(s)
		}
	}
	for i, s := range steps {
		if s == nil {
			continue
		}
		sortColumns(s)
		if len(s) > n {
			steps[i] = s[:n]
		}
	}
}

func (q QuantileTrim) apply(steps [][][]int, episodes int) {
	drop := q.DropCount(episodes)
	for i, s := range steps {
		if s == nil {
			continue
		}
		sortColumns(s)
		switch {
		case drop <= 0:
		case 2*drop >= len(s):
			steps[i] = s[:0]
		default:
			steps[i] = s[drop : len(s)-drop]
		}
	}
}

// Reduce applies r across all inputs at once.
func Reduce(r Reduction, steps [][][]int, episodes int) {
	r.apply(steps, episodes)
}

// sortColumns sorts each column ascending, independently of the others.
func sortColumns(rows [][]int) {
	if len(rows) == 0 {
		return
	}
	col := make([]int, len(rows))
	for j := range rows[0] {
		for i := range rows {
			col[i] = rows[i][j]
		}
		sort.Ints(col)
		for i := range rows {
			rows[i][j] = col[i]
		}
	}
}
