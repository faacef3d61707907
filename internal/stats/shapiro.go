package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// Errors reported by ShapiroWilk. Callers treating normality as optional
// map these to a "not computable" result rather than failing.
var (
	ErrSampleTooSmall = errors.New("stats: shapiro-wilk requires at least 3 observations")
	ErrNoVariation    = errors.New("stats: shapiro-wilk undefined for constant sample")
)

// Polynomial coefficients from Royston's AS R94 approximation of the
// Shapiro-Wilk test (Applied Statistics 44, 1995), constant term first.
var (
	swC1 = []float64{0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}
	swC2 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.5440, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
	swG  = []float64{-2.273, 0.459}
)

// ShapiroWilk tests the sample against normality and returns the W
// statistic with its two-sided p-value. The input need not be sorted.
func ShapiroWilk(sample []float64) (w, p float64, err error) {
	n := len(sample)
	if n < 3 {
		return 0, 0, ErrSampleTooSmall
	}
	x := make([]float64, n)
	copy(x, sample)
	sort.Float64s(x)
	if x[n-1] == x[0] {
		return 0, 0, ErrNoVariation
	}

	a := shapiroWeights(n)

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)
	ssq := 0.0
	for _, v := range x {
		d := v - mean
		ssq += d * d
	}
	if ssq <= 0 || math.IsNaN(ssq) {
		return 0, 0, ErrNoVariation
	}

	b := 0.0
	for i := 1; i <= n/2; i++ {
		b += a[i] * (x[n-i] - x[i-1])
	}
	w = b * b / ssq
	if w > 1 {
		w = 1
	}

	p = shapiroPValue(w, n)
	return w, p, nil
}

// shapiroWeights returns the upper-half coefficients a[1..n/2] (1-based).
func shapiroWeights(n int) []float64 {
	nn2 := n / 2
	a := make([]float64, nn2+1)
	if n == 3 {
		a[1] = math.Sqrt(0.5)
		return a
	}
	an := float64(n)
	m := make([]float64, nn2+1)
	summ2 := 0.0
	for i := 1; i <= nn2; i++ {
		m[i] = distuv.UnitNormal.Quantile((float64(i) - 0.375) / (an + 0.25))
		summ2 += m[i] * m[i]
	}
	summ2 *= 2
	ssumm2 := math.Sqrt(summ2)
	rsn := 1 / math.Sqrt(an)

	a1 := polyval(swC1, rsn) - m[1]/ssumm2
	first := 2
	var fac float64
	if n > 5 {
		first = 3
		a2 := -m[2]/ssumm2 + polyval(swC2, rsn)
		fac = math.Sqrt((summ2 - 2*m[1]*m[1] - 2*m[2]*m[2]) /
			(1 - 2*a1*a1 - 2*a2*a2))
		a[2] = a2
	} else {
		fac = math.Sqrt((summ2 - 2*m[1]*m[1]) / (1 - 2*a1*a1))
	}
	a[1] = a1
	for i := first; i <= nn2; i++ {
		a[i] = -m[i] / fac
	}
	return a
}

func shapiroPValue(w float64, n int) float64 {
	an := float64(n)
	if n == 3 {
		// Exact small-sample form.
		const pi6 = 6 / math.Pi
		stqr := math.Asin(math.Sqrt(0.75))
		p := pi6 * (math.Asin(math.Sqrt(w)) - stqr)
		return math.Max(0, math.Min(1, p))
	}
	y := math.Log1p(-w)
	var mu, sigma float64
	if n <= 11 {
		gamma := polyval(swG, an)
		if y >= gamma {
			return 1e-99
		}
		y = -math.Log(gamma - y)
		mu = polyval(swC3, an)
		sigma = math.Exp(polyval(swC4, an))
	} else {
		logn := math.Log(an)
		mu = polyval(swC5, logn)
		sigma = math.Exp(polyval(swC6, logn))
	}
	return 1 - distuv.UnitNormal.CDF((y-mu)/sigma)
}

// polyval evaluates a polynomial with coefficients in ascending order.
func polyval(coef []float64, x float64) float64 {
	v := 0.0
	for i := len(coef) - 1; i >= 0; i-- {
		v = v*x + coef[i]
	}
	return v
}
