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
	assocX          string
	assocY          string
	assocConvert    []string
	assocPlotPath   string
	assocJSON       bool
	assocAlpha      float64
	assocDelimiter  string
	assocSheet      string
	assocSheetIndex int
)

var associateCmd = &cobra.Command{
	Use:   "associate <file>",
	Short: "Correlation analysis between two numeric columns",
	Long: `Run the association pipeline for variables X and Y: clean the pair
(rows with a missing or non-numeric value on either side are dropped),
test each side for normality with Shapiro-Wilk, correlate with Pearson
when both sides look normal and Spearman otherwise, and interpret the
coefficient's direction and strength. At least 3 valid paired rows are
required. With --plot, a scatter plot with the fitted regression line is
written as PNG.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := loadOptions(assocDelimiter, assocSheet, assocSheetIndex)
		if err != nil {
			return err
		}
		s, err := session.Open(args[0], opt)
		if err != nil {
			return err
		}
		if err := s.Convert(assocConvert); err != nil {
			return err
		}

		aopt := stats.DefaultOptions()
		if assocAlpha > 0 {
			aopt.Alpha = assocAlpha
		} else if c := effectiveConfig(); c.Alpha > 0 {
			aopt.Alpha = c.Alpha
		}
		res, err := stats.Associate(s.Data, assocX, assocY, aopt)
		if err != nil {
			return err
		}

		if assocJSON {
			b, err := render.AssociationJSON(res, assocX, assocY)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
		} else {
			render.AssociationText(os.Stdout, res, assocX, assocY)
		}

		if assocPlotPath != "" {
			c := effectiveConfig()
			f, err := os.Create(assocPlotPath)
			if err != nil {
				return fmt.Errorf("create plot file: %w", err)
			}
			defer f.Close()
			if err := render.ScatterPNG(f, res, assocX, assocY, c.PlotWidth, c.PlotHeight); err != nil {
				return err
			}
			if !assocJSON {
				fmt.Printf("✓ Wrote scatter plot to %s\n", assocPlotPath)
			}
		}
		return nil
	},
}

func init() {
	associateCmd.Flags().StringVar(&assocX, "x", "", "X variable column name (required)")
	associateCmd.Flags().StringVar(&assocY, "y", "", "Y variable column name (required)")
	associateCmd.Flags().StringSliceVar(&assocConvert, "convert", nil, "columns to coerce to numeric before analysis")
	associateCmd.Flags().StringVar(&assocPlotPath, "plot", "", "write scatter + regression line PNG to this path")
	associateCmd.Flags().BoolVar(&assocJSON, "json", false, "emit JSON instead of text")
	associateCmd.Flags().Float64Var(&assocAlpha, "alpha", 0, "normality significance threshold (default 0.05)")
	associateCmd.Flags().StringVar(&assocDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab' (default: auto)")
	associateCmd.Flags().StringVar(&assocSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	associateCmd.Flags().IntVar(&assocSheetIndex, "sheet-index", 0, "XLSX sheet position, 1-based")
	_ = associateCmd.MarkFlagRequired("x")
	_ = associateCmd.MarkFlagRequired("y")
	rootCmd.AddCommand(associateCmd)
}
