package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/surveylens/surveylens-cli/internal/dataset"
)

// ColumnStats summarizes one numeric column over its non-missing values.
type ColumnStats struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
}

// Describe computes per-column summary statistics for the named columns,
// in caller order. Missing values are skipped; a column with no numeric
// values yields a zero-count record with NaN statistics. An empty column
// list yields an empty result.
func Describe(d *dataset.Dataset, cols []string) ([]ColumnStats, error) {
	out := make([]ColumnStats, 0, len(cols))
	for _, name := range cols {
		col, err := d.Column(name)
		if err != nil {
			return nil, err
		}
		out = append(out, summarize(name, col.Numbers()))
	}
	return out, nil
}

func summarize(name string, vals []float64) ColumnStats {
	s := ColumnStats{Name: name, Count: len(vals)}
	if len(vals) == 0 {
		nan := math.NaN()
		s.Mean, s.Std, s.Min, s.Q1, s.Median, s.Q3, s.Max = nan, nan, nan, nan, nan, nan, nan
		return s
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(vals, nil)
	if len(vals) > 1 {
		s.Std = stat.StdDev(vals, nil)
	} else {
		s.Std = math.NaN()
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Q1 = quantile(sorted, 0.25)
	s.Median = quantile(sorted, 0.5)
	s.Q3 = quantile(sorted, 0.75)
	return s
}

// quantile interpolates linearly between order statistics at positions
// p*(n-1), the convention survey tools report for quartiles.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	h := p * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
