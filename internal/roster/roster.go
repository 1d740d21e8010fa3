// Package roster reads the reference list of trial labels. A label's 0-based
// line position is the trial index stored in column 0 of result rows.
package roster

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Roster is the ordered list of canonical trial labels.
type Roster struct {
	Labels []string
}

// UnknownLabelError reports an include/exclude label missing from the roster.
type UnknownLabelError struct {
	Kind  string // "include" or "exclude"
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("unknown %s student: %s", e.Kind, e.Label)
}

// Load reads one label per line, trimming surrounding whitespace.
func Load(path string) (*Roster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read students file: %w", err)
	}
	return Parse(b)
}

// Parse builds a roster from file content.
func Parse(data []byte) (*Roster, error) {
	var labels []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		labels = append(labels, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan students: %w", err)
	}
	return &Roster{Labels: labels}, nil
}

// Len returns the number of labels.
func (r *Roster) Len() int { return len(r.Labels) }

// Select returns the indices of retained labels in roster order. A non-empty
// include list keeps only those labels; exclude then drops labels. Every
// include/exclude label must be known, otherwise nothing is selected.
func (r *Roster) Select(include, exclude []string) ([]int, error) {
	known := make(map[string]struct{}, len(r.Labels))
	for _, l := range r.Labels {
		known[l] = struct{}{}
	}
	inc, err := labelSet("include", include, known)
	if err != nil {
		return nil, err
	}
	exc, err := labelSet("exclude", exclude, known)
	if err != nil {
		return nil, err
	}
	inds := make([]int, 0, len(r.Labels))
	for i, l := range r.Labels {
		if len(inc) > 0 {
			if _, ok := inc[l]; !ok {
				continue
			}
		}
		if _, ok := exc[l]; ok {
			continue
		}
		inds = append(inds, i)
	}
	return inds, nil
}

func labelSet(kind string, labels []string, known map[string]struct{}) (map[string]struct{}, error) {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, ok := known[l]; !ok {
			return nil, &UnknownLabelError{Kind: kind, Label: l}
		}
		set[l] = struct{}{}
	}
	return set, nil
}

// IndexSet turns selected indices into a lookup set.
func IndexSet(inds []int) map[int]struct{} {
	set := make(map[int]struct{}, len(inds))
	for _, i := range inds {
		set[i] = struct{}{}
	}
	return set
}
