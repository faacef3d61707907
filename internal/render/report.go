package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/surveylens/surveylens-cli/internal/stats"
)

// AssociationText writes the human-readable association report: normality
// p-values (with N/A markers), the selected method, the coefficient and
// significance, and the interpretation sentence.
func AssociationText(w io.Writer, res *stats.Association, xName, yName string) {
	fmt.Fprintf(w, "Pairs analyzed: %d\n", res.N)
	fmt.Fprintln(w, "Normality (Shapiro-Wilk):")
	fmt.Fprintf(w, "  p-value %s: %s\n", xName, normP(res.NormalityX))
	fmt.Fprintf(w, "  p-value %s: %s\n", yName, normP(res.NormalityY))
	fmt.Fprintf(w, "Method:      %s\n", res.Method)
	fmt.Fprintf(w, "Coefficient: %s\n", num(res.Coefficient))
	fmt.Fprintf(w, "p-value:     %s\n", num(res.PValue))
	fmt.Fprintf(w, "The correlation between %s and %s is %s and %s.\n",
		xName, yName, res.Direction, res.Strength)
	if res.Line != nil {
		fmt.Fprintf(w, "Regression:  y = %s + %s*x\n", num(res.Line.Intercept), num(res.Line.Slope))
	}
}

// AssociationJSON marshals the result for machine consumption. NaN values
// (degenerate coefficient or p-value) become null, not-computable
// normality becomes "N/A".
func AssociationJSON(res *stats.Association, xName, yName string) ([]byte, error) {
	type line struct {
		Slope     float64 `json:"slope"`
		Intercept float64 `json:"intercept"`
		XMin      float64 `json:"x_min"`
		XMax      float64 `json:"x_max"`
	}
	doc := map[string]any{
		"x":           xName,
		"y":           yName,
		"n":           res.N,
		"method":      res.Method,
		"coefficient": nullableFloat(res.Coefficient),
		"p_value":     nullableFloat(res.PValue),
		"normality_x": normalityValue(res.NormalityX),
		"normality_y": normalityValue(res.NormalityY),
		"direction":   res.Direction,
		"strength":    res.Strength,
		"pairs_x":     res.X,
		"pairs_y":     res.Y,
	}
	if res.Line != nil {
		doc["regression"] = line{
			Slope: res.Line.Slope, Intercept: res.Line.Intercept,
			XMin: res.Line.XMin, XMax: res.Line.XMax,
		}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// StatsJSON marshals descriptive statistics with NaN replaced by null.
func StatsJSON(cols []stats.ColumnStats) ([]byte, error) {
	out := make([]map[string]any, 0, len(cols))
	for _, c := range cols {
		out = append(out, map[string]any{
			"name":   c.Name,
			"count":  c.Count,
			"mean":   nullableFloat(c.Mean),
			"std":    nullableFloat(c.Std),
			"min":    nullableFloat(c.Min),
			"q1":     nullableFloat(c.Q1),
			"median": nullableFloat(c.Median),
			"q3":     nullableFloat(c.Q3),
			"max":    nullableFloat(c.Max),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

func normP(n stats.Normality) string {
	if !n.OK {
		return "N/A"
	}
	return fmt.Sprintf("%.4f", n.PValue)
}

func normalityValue(n stats.Normality) any {
	if !n.OK {
		return "N/A"
	}
	return n.PValue
}

func nullableFloat(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
