package analysis

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/KaramelBytes/resultkit-cli/internal/results"
	"github.com/KaramelBytes/resultkit-cli/internal/roster"
	"github.com/KaramelBytes/resultkit-cli/internal/utils"
)

// Settings is the aggregate configuration, fixed once options are parsed.
type Settings struct {
	CSV       bool
	Reduction Reduction
	// ConfigLabel, when set, is a gjson path looked up in <dir>/config.json
	// to label directory inputs.
	ConfigLabel string
}

// NewSettings validates option combinations before any input is touched.
// Matching with an active quantile is rejected before the range check.
func NewSettings(csv, match bool, quantile float64, configLabel string) (Settings, error) {
	red, err := NewReduction(match, quantile)
	if err != nil {
		return Settings{}, err
	}
	// quantiles at or above 1 simply disable trimming
	if quantile <= 0 {
		return Settings{}, fmt.Errorf("invalid quantile %g: must be positive", quantile)
	}
	return Settings{CSV: csv, Reduction: red, ConfigLabel: configLabel}, nil
}

// Aggregator loads, filters, reduces and prints summaries of result inputs.
type Aggregator struct {
	settings Settings
	retained []int
	loader   *results.Loader
	logger   *zap.Logger
	out      io.Writer
	diag     io.Writer
}

// NewAggregator builds an Aggregator keeping only rows whose trial index is in
// retained. Summaries go to out, diagnostics to diag.
func NewAggregator(settings Settings, retained []int, logger *zap.Logger, out, diag io.Writer) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		settings: settings,
		retained: retained,
		loader:   results.NewLoader(logger),
		logger:   logger,
		out:      out,
		diag:     diag,
	}
}

// Run summarizes each path in order. Every input is loaded before any
// summary is printed, since episode matching depends on all of them.
func (a *Aggregator) Run(paths []string) error {
	episodes := len(a.retained)
	switch r := a.settings.Reduction.(type) {
	case QuantileTrim:
		fmt.Fprintf(a.diag, "Removing bottom and top %d episodes for quantile %g\n", r.DropCount(episodes), r.Quantile)
	case MatchEpisodes:
		fmt.Fprintln(a.diag, "MATCHING number of episodes, via sorting first axis (MIGHT BE WRONG)")
	}

	keep := roster.IndexSet(a.retained)
	steps := make([][][]int, len(paths))
	for i, p := range paths {
		t, err := a.loader.Load(p)
		if err != nil {
			if errors.Is(err, results.ErrNoData) {
				a.logger.Debug("no data for input", zap.String("path", p))
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
		filtered := t.FilterTrials(keep)
		a.logger.Debug("filtered input",
			zap.String("path", p),
			zap.Int("rows", t.Len()),
			zap.Int("kept", filtered.Len()))
		steps[i] = filtered.Steps()
	}

	Reduce(a.settings.Reduction, steps, episodes)

	for i, p := range paths {
		s := Summarize(a.label(p), steps[i])
		var err error
		if a.settings.CSV {
			err = WriteCSV(a.out, s, i == 0)
		} else {
			err = WriteText(a.out, s)
		}
		if err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}

func (a *Aggregator) label(path string) string {
	if a.settings.ConfigLabel == "" || !utils.IsDir(path) {
		return path
	}
	b, ok, err := utils.ReadOptional(filepath.Join(path, "config.json"))
	if err != nil || !ok {
		return path
	}
	if v := gjson.GetBytes(b, a.settings.ConfigLabel); v.Exists() {
		return v.String()
	}
	return path
}
