package results

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/KaramelBytes/resultkit-cli/internal/parser"
)

// ErrNoData marks a directory where no result files were found, neither
// directly nor under its results/ subdirectory. It differs from a table that
// exists but has zero rows.
var ErrNoData = errors.New("no result files found")

const resultsSubdir = "results"

// Loader resolves input paths into result tables.
type Loader struct {
	logger *zap.Logger
}

// NewLoader returns a Loader. A nil logger disables logging.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load parses a single result file, or stacks every result file of a
// directory. A directory without result files is retried as <dir>/results.
func (l *Loader) Load(path string) (*Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		rows, err := parser.ParseFile(path)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded result file", zap.String("path", path), zap.Int("rows", len(rows)))
		return &Table{Rows: rows}, nil
	}
	t, err := l.loadDir(path)
	if !errors.Is(err, ErrNoData) {
		return t, err
	}
	sub := filepath.Join(path, resultsSubdir)
	if info, statErr := os.Stat(sub); statErr != nil || !info.IsDir() {
		return nil, err
	}
	l.logger.Debug("no result files at top level, trying subdirectory", zap.String("dir", sub))
	return l.loadDir(sub)
}

func (l *Loader) loadDir(dir string) (*Table, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !parser.IsResultFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoData)
	}
	return l.stackFiles(files)
}

// stackFiles stacks files in order. A file whose width disagrees with the
// rows stacked so far is recorded in Table.Skipped and otherwise ignored.
func (l *Loader) stackFiles(files []string) (*Table, error) {
	t := &Table{}
	for _, f := range files {
		rows, err := parser.ParseFile(f)
		if err != nil {
			return nil, err
		}
		if err := t.Stack(rows); err != nil {
			if errors.Is(err, ErrShapeMismatch) {
				l.logger.Debug("skipping result file", zap.String("path", f), zap.Error(err))
				t.Skipped = append(t.Skipped, f)
				continue
			}
			return nil, err
		}
	}
	l.logger.Debug("stacked result files",
		zap.Int("files", len(files)),
		zap.Int("skipped", len(t.Skipped)),
		zap.Int("rows", t.Len()))
	return t, nil
}
