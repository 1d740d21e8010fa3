package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// TargetBase is where combine writes <name>.csv and configs/<name>.json.
	TargetBase string `mapstructure:"target_base" yaml:"target_base"`
	// StudentsFile lists the canonical trial labels, one per line.
	StudentsFile    string  `mapstructure:"students_file" yaml:"students_file"`
	DefaultQuantile float64 `mapstructure:"default_quantile" yaml:"default_quantile"`
}

const (
	DefaultTargetBase   = "results"
	DefaultStudentsFile = "data/newStudents29.txt"
)

// Default returns the configuration used when nothing could be loaded.
func Default() *Global {
	return &Global{
		TargetBase:      DefaultTargetBase,
		StudentsFile:    DefaultStudentsFile,
		DefaultQuantile: 1.0,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.resultkit/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".resultkit")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("RESULTKIT")
	v.AutomaticEnv()

	v.SetDefault("target_base", DefaultTargetBase)
	v.SetDefault("students_file", DefaultStudentsFile)
	v.SetDefault("default_quantile", 1.0)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".resultkit"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.TargetBase == "" {
		c.TargetBase = DefaultTargetBase
	}
	if c.StudentsFile == "" {
		c.StudentsFile = DefaultStudentsFile
	}
	if c.DefaultQuantile <= 0 {
		return nil, fmt.Errorf("invalid default_quantile %g: must be positive", c.DefaultQuantile)
	}
	return &c, nil
}
