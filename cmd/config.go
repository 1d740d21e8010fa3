package cmd

import (
	"fmt"
	"strconv"

	cfgpkg "github.com/KaramelBytes/resultkit-cli/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set resultkit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := settingsOrDefault()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "target_base: %s\n", c.TargetBase)
		fmt.Fprintf(out, "students_file: %s\n", c.StudentsFile)
		fmt.Fprintf(out, "default_quantile: %g\n", c.DefaultQuantile)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "target_base":
			if val == "" {
				return fmt.Errorf("target_base must not be empty")
			}
			cfg.TargetBase = val
		case "students_file":
			if val == "" {
				return fmt.Errorf("students_file must not be empty")
			}
			cfg.StudentsFile = val
		case "default_quantile":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("invalid float for default_quantile: %v (want q > 0)", val)
			}
			cfg.DefaultQuantile = f
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
