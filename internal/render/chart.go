package render

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/surveylens/surveylens-cli/internal/stats"
)

// ScatterPNG renders the cleaned pairs as a scatter plot, with the fitted
// regression line dashed across the x-domain when one is available, and
// writes the PNG to w.
func ScatterPNG(w io.Writer, res *stats.Association, xName, yName string, width, height int) error {
	if width <= 0 {
		width = 900
	}
	if height <= 0 {
		height = 500
	}
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "observations",
			XValues: res.X,
			YValues: res.Y,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
			},
		},
	}
	if res.Line != nil {
		series = append(series, chart.ContinuousSeries{
			Name:    "fit",
			XValues: []float64{res.Line.XMin, res.Line.XMax},
			YValues: []float64{res.Line.At(res.Line.XMin), res.Line.At(res.Line.XMax)},
			Style: chart.Style{
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
		})
	}
	ch := chart.Chart{
		Title:      fmt.Sprintf("%s vs %s", xName, yName),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: xName},
		YAxis:      chart.YAxis{Name: yName},
		Series:     series,
	}
	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render scatter: %w", err)
	}
	return nil
}
