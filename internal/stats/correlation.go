package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Pearson returns the linear correlation coefficient between x and y and
// its two-sided p-value. A zero-variance series yields NaN for both.
func Pearson(x, y []float64) (r, p float64) {
	r = stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return math.NaN(), math.NaN()
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, corrPValue(r, len(x))
}

// Spearman returns the rank correlation coefficient between x and y and
// its two-sided p-value, computed as Pearson over average-tie ranks.
func Spearman(x, y []float64) (r, p float64) {
	return Pearson(ranks(x), ranks(y))
}

// corrPValue is the two-sided significance of r under the null of no
// association, via the t-distribution with n-2 degrees of freedom.
func corrPValue(r float64, n int) float64 {
	if n < 3 {
		return math.NaN()
	}
	denom := 1 - r*r
	if denom <= 0 {
		return 0
	}
	t := r * math.Sqrt(float64(n-2)/denom)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return 2 * dist.CDF(-math.Abs(t))
}

// ranks assigns 1-based ranks to v, averaging ranks across ties.
func ranks(v []float64) []float64 {
	n := len(v)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return v[idx[a]] < v[idx[b]] })

	out := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && v[idx[j+1]] == v[idx[i]] {
			j++
		}
		// ranks i+1..j+1 share one averaged rank
		avg := float64(i+j+2) / 2
		for k := i; k <= j; k++ {
			out[idx[k]] = avg
		}
		i = j + 1
	}
	return out
}
