package render

import (
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/surveylens/surveylens-cli/internal/stats"
)

// PreviewTable writes the first rows of a dataset as an aligned table.
func PreviewTable(w io.Writer, header []string, rows [][]string) {
	t := tablewriter.NewWriter(w)
	t.SetHeader(header)
	t.SetAutoFormatHeaders(false)
	t.SetAutoWrapText(false)
	for _, r := range rows {
		t.Append(r)
	}
	t.Render()
}

// StatsTable writes descriptive statistics, one row per column.
func StatsTable(w io.Writer, cols []stats.ColumnStats) {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"})
	t.SetAutoFormatHeaders(false)
	t.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, c := range cols {
		t.Append([]string{
			c.Name,
			strconv.Itoa(c.Count),
			num(c.Mean), num(c.Std), num(c.Min),
			num(c.Q1), num(c.Median), num(c.Q3), num(c.Max),
		})
	}
	t.Render()
}

// num formats a statistic for tabular display; NaN renders as a gap marker.
func num(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "N/A"
	}
	return strconv.FormatFloat(f, 'f', 4, 64)
}
