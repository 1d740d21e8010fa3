package results

import (
	"errors"
	"fmt"
)

// Table holds one row per trial: column 0 is the trial index, the remaining
// columns are that trial's step counts.
type Table struct {
	Rows [][]int
	// Skipped lists files left out of the table because their row width
	// disagreed with the rows already stacked.
	Skipped []string
}

// ErrShapeMismatch is returned by Stack when widths disagree.
var ErrShapeMismatch = errors.New("row width mismatch")

// Len returns the number of trial rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Width returns the number of columns, or 0 for an empty table.
func (t *Table) Width() int {
	if t == nil || len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

// Stack appends rows below the existing ones. An empty side never conflicts.
func (t *Table) Stack(rows [][]int) error {
	if len(rows) == 0 {
		return nil
	}
	if w := t.Width(); w != 0 && len(rows[0]) != w {
		return fmt.Errorf("%w: have %d columns, got %d", ErrShapeMismatch, w, len(rows[0]))
	}
	t.Rows = append(t.Rows, rows...)
	return nil
}

// FilterTrials keeps the rows whose trial index is in keep, preserving order.
func (t *Table) FilterTrials(keep map[int]struct{}) *Table {
	out := &Table{Skipped: t.Skipped}
	for _, row := range t.Rows {
		if len(row) == 0 {
			continue
		}
		if _, ok := keep[row[0]]; ok {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Steps returns a copy of the step-count columns (every column but the trial index).
func (t *Table) Steps() [][]int {
	out := make([][]int, 0, t.Len())
	for _, row := range t.Rows {
		steps := make([]int, 0, len(row))
		if len(row) > 1 {
			steps = append(steps, row[1:]...)
		}
		out = append(out, steps)
	}
	return out
}
