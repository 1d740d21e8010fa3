// Package combine concatenates numbered result shards of a run directory
// into one CSV and copies the run's config next to it.
package combine

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/KaramelBytes/resultkit-cli/internal/utils"
)

const (
	configFileName = "config.json"
	shardsDirName  = "results"
	configsDirName = "configs"
)

// SourceConfigMissingError reports a source directory without config.json.
type SourceConfigMissingError struct {
	Path string
}

func (e *SourceConfigMissingError) Error() string {
	return "source json not found: " + e.Path
}

// TargetExistsError reports a target output that is already present.
type TargetExistsError struct {
	Kind string // "csv" or "json"
	Path string
}

func (e *TargetExistsError) Error() string {
	return fmt.Sprintf("target %s already exists: %s", e.Kind, e.Path)
}

// Result describes the outputs of one combined source directory.
type Result struct {
	Name         string
	TargetCSV    string
	TargetConfig string
	Shards       int
	// Truncated is set when result CSVs exist past the first missing index.
	Truncated bool
	// ConfigValid reports whether the copied config parsed as JSON. It is
	// advisory: the copy is verbatim either way.
	ConfigValid bool
}

// Combiner writes combined outputs under TargetBase.
type Combiner struct {
	TargetBase string
	logger     *zap.Logger
}

// New returns a Combiner. A nil logger disables logging.
func New(targetBase string, logger *zap.Logger) *Combiner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Combiner{TargetBase: targetBase, logger: logger}
}

// TargetName derives the output name from the last path component; a
// trailing separator refers to the component before it.
func TargetName(sourceDir string) string {
	return filepath.Base(sourceDir)
}

// Targets returns the combined CSV path and the copied config path for name.
func (c *Combiner) Targets(name string) (csvPath, configPath string) {
	return filepath.Join(c.TargetBase, name+".csv"),
		filepath.Join(c.TargetBase, configsDirName, name+".json")
}

// Run combines one source directory. Nothing is written when the source
// config is missing or either target already exists.
func (c *Combiner) Run(sourceDir string) (*Result, error) {
	srcConfig := filepath.Join(sourceDir, configFileName)
	if !utils.IsFile(srcConfig) {
		return nil, &SourceConfigMissingError{Path: srcConfig}
	}
	name := TargetName(sourceDir)
	targetCSV, targetConfig := c.Targets(name)
	if utils.Exists(targetCSV) {
		return nil, &TargetExistsError{Kind: "csv", Path: targetCSV}
	}
	if utils.Exists(targetConfig) {
		return nil, &TargetExistsError{Kind: "json", Path: targetConfig}
	}

	shards, truncated := Shards(sourceDir)
	if truncated {
		c.logger.Debug("shard enumeration stopped at first missing index",
			zap.String("dir", sourceDir), zap.Int("shards", len(shards)))
	}
	var buf bytes.Buffer
	for _, s := range shards {
		b, err := os.ReadFile(s)
		if err != nil {
			return nil, fmt.Errorf("read shard: %w", err)
		}
		buf.Write(b)
	}
	cfgData, err := os.ReadFile(srcConfig)
	if err != nil {
		return nil, fmt.Errorf("read source config: %w", err)
	}
	configValid := gjson.ValidBytes(cfgData)
	if !configValid {
		c.logger.Warn("source config is not valid JSON, copying verbatim", zap.String("path", srcConfig))
	}

	if err := utils.EnsureDir(filepath.Dir(targetConfig)); err != nil {
		return nil, fmt.Errorf("ensure target dirs: %w", err)
	}
	if err := utils.SafeWriteFile(targetCSV, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("write combined csv: %w", err)
	}
	if err := utils.SafeWriteFile(targetConfig, cfgData); err != nil {
		return nil, fmt.Errorf("copy config: %w", err)
	}
	c.logger.Debug("combined source directory",
		zap.String("source", sourceDir),
		zap.String("target", targetCSV),
		zap.Int("shards", len(shards)),
		zap.Int("bytes", buf.Len()))
	return &Result{
		Name:         name,
		TargetCSV:    targetCSV,
		TargetConfig: targetConfig,
		Shards:       len(shards),
		Truncated:    truncated,
		ConfigValid:  configValid,
	}, nil
}

// Shards lists <sourceDir>/results/0.csv, 1.csv, ... up to the first missing
// index. truncated reports whether numbered shards exist beyond that gap;
// those are not combined.
func Shards(sourceDir string) (paths []string, truncated bool) {
	dir := filepath.Join(sourceDir, shardsDirName)
	for i := 0; ; i++ {
		p := filepath.Join(dir, strconv.Itoa(i)+".csv")
		if !utils.IsFile(p) {
			return paths, hasShardBeyond(dir, i)
		}
		paths = append(paths, p)
	}
}

func hasShardBeyond(dir string, gap int) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		idx, ok := strings.CutSuffix(e.Name(), ".csv")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(idx); err == nil && n > gap {
			return true
		}
	}
	return false
}
