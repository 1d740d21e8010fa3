package cmd

import (
	"github.com/KaramelBytes/resultkit-cli/internal/analysis"
	"github.com/KaramelBytes/resultkit-cli/internal/roster"
	"github.com/spf13/cobra"
)

var (
	agCSV         bool
	agInclude     []string
	agExclude     []string
	agMatch       bool
	agQuantile    float64
	agStudents    string
	agConfigLabel string
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate [options] <path> [path ...]",
	Short: "Print episode statistics for result files or directories",
	Long: `Loads each path (a CSV file, or a directory of CSV files, falling back to its
results/ subdirectory), keeps rows of the selected students, optionally trims
quantiles or matches episode counts, and prints count, mean, median, std, min
and max per path.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		c := settingsOrDefault()
		quantile := agQuantile
		if !cmd.Flags().Changed("quantile") {
			quantile = c.DefaultQuantile
		}
		settings, err := analysis.NewSettings(agCSV, agMatch, quantile, agConfigLabel)
		if err != nil {
			return err
		}

		studentsFile := agStudents
		if studentsFile == "" {
			studentsFile = c.StudentsFile
		}
		r, err := roster.Load(studentsFile)
		if err != nil {
			return err
		}
		retained, err := r.Select(agInclude, agExclude)
		if err != nil {
			return err
		}
		return analysis.NewAggregator(settings, retained, logger, cmd.OutOrStdout(), cmd.ErrOrStderr()).Run(args)
	},
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
	aggregateCmd.Flags().BoolVarP(&agCSV, "csv", "c", false, "output in csv format")
	aggregateCmd.Flags().StringArrayVarP(&agInclude, "include", "i", nil, "output only for specified students (repeatable)")
	aggregateCmd.Flags().StringArrayVarP(&agExclude, "exclude", "x", nil, "output excluding specified students (repeatable)")
	aggregateCmd.Flags().BoolVarP(&agMatch, "match", "m", false, "match the number of episodes between the results")
	aggregateCmd.Flags().Float64VarP(&agQuantile, "quantile", "q", 1.0, "fraction of data to use, 0.9 removes the lowest and highest 0.05")
	aggregateCmd.Flags().StringVar(&agStudents, "students", "", "students file, one label per line (overrides config)")
	aggregateCmd.Flags().StringVar(&agConfigLabel, "config-label", "", "JSON path in <dir>/config.json used as the label of directory inputs")
}
