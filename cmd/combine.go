package cmd

import (
	"fmt"

	"github.com/KaramelBytes/resultkit-cli/internal/combine"
	"github.com/spf13/cobra"
)

var combineCmd = &cobra.Command{
	Use:   "combine <sourceDir> [sourceDir ...]",
	Short: "Concatenate numbered result shards of each run directory into one CSV",
	Long: `For every source directory, concatenates results/0.csv, results/1.csv, ... (stopping at
the first missing index) into <target>/<name>.csv and copies config.json to
<target>/configs/<name>.json. The target defaults to "results".

Stops at the first source that fails: exit 2 when a target already exists,
exit 3 when the source has no config.json.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		out := cmd.OutOrStdout()
		c := combine.New(settingsOrDefault().TargetBase, logger)
		for _, dir := range args {
			fmt.Fprintln(out, "Combining", dir)
			res, err := c.Run(dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "✓ Wrote %d shard(s) to %s\n", res.Shards, res.TargetCSV)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(combineCmd)
}
