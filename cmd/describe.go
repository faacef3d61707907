package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/surveylens/surveylens-cli/internal/render"
	"github.com/surveylens/surveylens-cli/internal/session"
	"github.com/surveylens/surveylens-cli/internal/stats"
)

var (
	descColumns    []string
	descConvert    []string
	descJSON       bool
	descDelimiter  string
	descSheet      string
	descSheetIndex int
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Descriptive statistics for numeric columns",
	Long: `Compute count, mean, sample standard deviation, min, quartiles and max
for each selected numeric column. Columns named with --convert are first
coerced to numeric; values that fail to parse become missing. Without
--columns, all numeric columns are summarized.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := loadOptions(descDelimiter, descSheet, descSheetIndex)
		if err != nil {
			return err
		}
		s, err := session.Open(args[0], opt)
		if err != nil {
			return err
		}
		if err := s.Convert(descConvert); err != nil {
			return err
		}
		cols := descColumns
		if len(cols) == 0 {
			cols = s.Data.NumericColumns()
			if len(cols) == 0 {
				return fmt.Errorf("no numeric columns detected; try --convert on text columns")
			}
		}
		summary, err := stats.Describe(s.Data, cols)
		if err != nil {
			return err
		}
		if descJSON {
			b, err := render.StatsJSON(summary)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			return nil
		}
		render.StatsTable(os.Stdout, summary)
		return nil
	},
}

func init() {
	describeCmd.Flags().StringSliceVar(&descColumns, "columns", nil, "columns to summarize (default: all numeric)")
	describeCmd.Flags().StringSliceVar(&descConvert, "convert", nil, "columns to coerce to numeric before analysis")
	describeCmd.Flags().BoolVar(&descJSON, "json", false, "emit JSON instead of a table")
	describeCmd.Flags().StringVar(&descDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab' (default: auto)")
	describeCmd.Flags().StringVar(&descSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	describeCmd.Flags().IntVar(&descSheetIndex, "sheet-index", 0, "XLSX sheet position, 1-based")
	rootCmd.AddCommand(describeCmd)
}
