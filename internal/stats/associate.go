package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/surveylens/surveylens-cli/internal/dataset"
)

// ErrInsufficientData indicates fewer than 3 valid paired observations
// remained after cleaning; the analysis cannot proceed.
var ErrInsufficientData = errors.New("stats: need at least 3 valid paired observations")

// Method identifies the correlation method the analyzer selected.
type Method string

const (
	MethodPearson  Method = "Pearson"
	MethodSpearman Method = "Spearman"
)

// Direction is the sign interpretation of the coefficient.
type Direction string

const (
	DirectionPositive Direction = "positive"
	DirectionNegative Direction = "negative"
)

// Strength buckets the coefficient magnitude.
type Strength string

const (
	StrengthVeryWeak Strength = "very weak"
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

// Normality is a per-variable Shapiro-Wilk outcome. OK is false when the
// test is not computable (too few values, constant series, or a numeric
// failure inside the test); that is a data state, not an error.
type Normality struct {
	PValue float64
	OK     bool
}

// Line is an ordinary least-squares fit over the cleaned pairs, kept for
// rendering only; it plays no part in the method decision.
type Line struct {
	Slope     float64
	Intercept float64
	XMin      float64
	XMax      float64
}

// At evaluates the line at x.
func (l *Line) At(x float64) float64 { return l.Intercept + l.Slope*x }

// Association is the full result of one analyzer run.
type Association struct {
	Method      Method
	Coefficient float64
	PValue      float64
	NormalityX  Normality
	NormalityY  Normality
	Direction   Direction
	Strength    Strength
	// Line is nil when the fit failed; the rest of the result stands.
	Line *Line
	// X, Y are the cleaned paired series, in source row order.
	X, Y []float64
	N    int
}

// Options tunes the analyzer.
type Options struct {
	// Alpha is the normality-test significance threshold steering method
	// selection. Zero means the 0.05 default.
	Alpha float64
}

// DefaultOptions returns the standard analyzer settings.
func DefaultOptions() Options { return Options{Alpha: 0.05} }

// Associate runs the association pipeline for columns x and y: clean the
// pair, test each side for normality, pick Pearson only when both sides
// look normal at the alpha level (any non-computable or significant result
// forces Spearman), compute the coefficient and its p-value, classify
// direction and strength, and fit a display regression line. Each call is
// independent; nothing is cached across invocations. x == y is permitted
// and simply self-correlates.
func Associate(d *dataset.Dataset, x, y string, opt Options) (*Association, error) {
	xs, ys, err := dataset.CleanPair(d, x, y)
	if err != nil {
		return nil, err
	}
	if len(xs) < 3 {
		return nil, ErrInsufficientData
	}

	nx := normality(xs)
	ny := normality(ys)

	alpha := opt.Alpha
	if alpha <= 0 {
		alpha = 0.05
	}
	method := MethodSpearman
	if nx.OK && ny.OK && nx.PValue > alpha && ny.PValue > alpha {
		method = MethodPearson
	}

	var r, p float64
	if method == MethodPearson {
		r, p = Pearson(xs, ys)
	} else {
		r, p = Spearman(xs, ys)
	}

	return &Association{
		Method:      method,
		Coefficient: r,
		PValue:      p,
		NormalityX:  nx,
		NormalityY:  ny,
		Direction:   direction(r),
		Strength:    classifyStrength(r),
		Line:        fitLine(xs, ys),
		X:           xs,
		Y:           ys,
		N:           len(xs),
	}, nil
}

// normality wraps ShapiroWilk, degrading every failure mode to a
// not-computable result.
func normality(v []float64) Normality {
	if len(v) < 3 || isConstant(v) {
		return Normality{}
	}
	_, p, err := ShapiroWilk(v)
	if err != nil || math.IsNaN(p) {
		return Normality{}
	}
	return Normality{PValue: p, OK: true}
}

// direction classifies the coefficient sign. Zero and NaN count as
// negative.
func direction(r float64) Direction {
	if r > 0 {
		return DirectionPositive
	}
	return DirectionNegative
}

// classifyStrength buckets |r| into lower-inclusive bins:
// [0,0.3) very weak, [0.3,0.5) weak, [0.5,0.7) moderate, [0.7,1] strong.
// A NaN coefficient reads as very weak.
func classifyStrength(r float64) Strength {
	a := math.Abs(r)
	switch {
	case math.IsNaN(a) || a < 0.3:
		return StrengthVeryWeak
	case a < 0.5:
		return StrengthWeak
	case a < 0.7:
		return StrengthModerate
	default:
		return StrengthStrong
	}
}

// fitLine computes the OLS line over the pair. A degenerate fit (for
// example zero-variance x) returns nil rather than an error so the main
// result is never lost to a rendering aid.
func fitLine(xs, ys []float64) *Line {
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if !isFinite(intercept) || !isFinite(slope) {
		return nil
	}
	lo, hi := xs[0], xs[0]
	for _, v := range xs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return &Line{Slope: slope, Intercept: intercept, XMin: lo, XMax: hi}
}

func isConstant(v []float64) bool {
	for _, x := range v[1:] {
		if x != v[0] {
			return false
		}
	}
	return true
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
