package stats

import (
	"math"
	"testing"
)

func TestPearsonPerfectLine(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{2, 4, 6, 8, 10}
	r, p := Pearson(x, y)
	if math.Abs(r-1) > 1e-12 {
		t.Errorf("r = %v, want 1", r)
	}
	if p != 0 {
		t.Errorf("p = %v, want 0 for |r| = 1", p)
	}

	for i := range y {
		y[i] = -y[i]
	}
	r, _ = Pearson(x, y)
	if math.Abs(r+1) > 1e-12 {
		t.Errorf("r = %v, want -1", r)
	}
}

func TestPearsonConstantSeriesIsNaN(t *testing.T) {
	r, p := Pearson([]float64{1, 1, 1, 1}, []float64{1, 2, 3, 4})
	if !math.IsNaN(r) || !math.IsNaN(p) {
		t.Errorf("constant series: r=%v p=%v, want NaN NaN", r, p)
	}
}

func TestPearsonPValueDecreasesWithAssociation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	noisy := []float64{2.1, 3.8, 6.3, 7.9, 9.8, 12.4, 13.9, 16.2}
	scrambled := []float64{9.8, 2.1, 13.9, 3.8, 16.2, 6.3, 7.9, 12.4}
	_, pStrong := Pearson(x, noisy)
	_, pWeak := Pearson(x, scrambled)
	if pStrong >= pWeak {
		t.Errorf("pStrong=%v should be below pWeak=%v", pStrong, pWeak)
	}
	if pStrong > 0.01 {
		t.Errorf("near-linear data: p = %v, want << 0.05", pStrong)
	}
}

func TestSpearmanMonotoneNonlinear(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = v * v * v
	}
	r, p := Spearman(x, y)
	if math.Abs(r-1) > 1e-12 {
		t.Errorf("r = %v, want 1 for a monotone relation", r)
	}
	if p != 0 {
		t.Errorf("p = %v, want 0", p)
	}
}

func TestRanksAverageTies(t *testing.T) {
	got := ranks([]float64{1, 2, 2, 3})
	want := []float64{1, 2.5, 2.5, 4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ranks = %v, want %v", got, want)
		}
	}
}

func TestRanksOrderIndependent(t *testing.T) {
	got := ranks([]float64{30, 10, 20})
	want := []float64{3, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ranks = %v, want %v", got, want)
		}
	}
}
