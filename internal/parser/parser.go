package parser

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Parser defines a result file parser implementation. Parse returns one
// row per trial: the trial index followed by its step counts.
type Parser interface {
	CanParse(filename string) bool
	Parse(data []byte) ([][]int, error)
}

var registry []Parser

// Register adds a parser implementation to the registry.
func Register(p Parser) {
	registry = append(registry, p)
}

// IsResultFile reports whether some registered parser claims filename.
func IsResultFile(filename string) bool {
	_, ok := lookup(filename)
	return ok
}

// ParseFile selects a parser based on filename and returns the parsed rows.
// Files no parser claims are read as CSV, since an explicitly named file is
// always treated as a result file.
func ParseFile(path string) ([][]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	p, ok := lookup(path)
	if !ok {
		p = csvParser{}
	}
	rows, err := p.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

func lookup(filename string) (Parser, bool) {
	for _, p := range registry {
		if p.CanParse(filename) {
			return p, true
		}
	}
	return nil, false
}

func init() {
	Register(csvParser{})
}

// ErrRaggedRow indicates rows of different widths inside one file.
var ErrRaggedRow = errors.New("row width differs from first row")
