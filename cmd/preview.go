package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/surveylens/surveylens-cli/internal/render"
	"github.com/surveylens/surveylens-cli/internal/session"
)

var (
	prevRows       int
	prevDelimiter  string
	prevSheet      string
	prevSheetIndex int
)

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Show the first rows of a CSV/TSV/XLSX file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := loadOptions(prevDelimiter, prevSheet, prevSheetIndex)
		if err != nil {
			return err
		}
		s, err := session.Open(args[0], opt)
		if err != nil {
			return err
		}
		n := prevRows
		if n <= 0 {
			n = effectiveConfig().PreviewRows
		}
		if n > s.Data.Rows() {
			n = s.Data.Rows()
		}
		rows := make([][]string, 0, n)
		for i := 0; i < n; i++ {
			rows = append(rows, s.Data.Record(i))
		}
		fmt.Printf("%s: %d rows, %d columns\n", s.Source, s.Data.Rows(), len(s.Data.ColumnNames()))
		render.PreviewTable(os.Stdout, s.Data.ColumnNames(), rows)
		return nil
	},
}

func init() {
	previewCmd.Flags().IntVar(&prevRows, "rows", 0, "number of rows to show (default from config)")
	previewCmd.Flags().StringVar(&prevDelimiter, "delimiter", "", "CSV delimiter: ','|';'|'tab' (default: auto)")
	previewCmd.Flags().StringVar(&prevSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	previewCmd.Flags().IntVar(&prevSheetIndex, "sheet-index", 0, "XLSX sheet position, 1-based")
	rootCmd.AddCommand(previewCmd)
}
