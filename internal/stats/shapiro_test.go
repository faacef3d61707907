package stats

import (
	"errors"
	"math"
	"testing"
)

func TestShapiroWilkThreeSymmetricPoints(t *testing.T) {
	// For n=3 the p-value has a closed form; a symmetric, equidistant
	// sample attains W=1 and p=1 exactly.
	w, p, err := ShapiroWilk([]float64{1, 2, 3})
	if err != nil {
		t.Fatalf("ShapiroWilk: %v", err)
	}
	if math.Abs(w-1) > 1e-12 {
		t.Errorf("W = %v, want 1", w)
	}
	if math.Abs(p-1) > 1e-9 {
		t.Errorf("p = %v, want 1", p)
	}
}

func TestShapiroWilkEquidistantFive(t *testing.T) {
	// Reference values for [1..5]: W ≈ 0.9868, p ≈ 0.967.
	w, p, err := ShapiroWilk([]float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("ShapiroWilk: %v", err)
	}
	if w < 0.985 || w > 0.989 {
		t.Errorf("W = %v, want ≈0.9868", w)
	}
	if p < 0.9 || p > 1 {
		t.Errorf("p = %v, want ≈0.967", p)
	}
}

func TestShapiroWilkRejectsHeavySkew(t *testing.T) {
	sample := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 100}
	_, p, err := ShapiroWilk(sample)
	if err != nil {
		t.Fatalf("ShapiroWilk: %v", err)
	}
	if p >= 0.05 {
		t.Errorf("p = %v, want < 0.05 for a heavily skewed sample", p)
	}
}

func TestShapiroWilkLargeSampleBranch(t *testing.T) {
	// n >= 12 exercises the log-n approximation branch.
	sample := []float64{2.1, 3.4, 1.9, 2.8, 3.1, 2.5, 2.9, 3.3, 2.2, 2.7, 3.0, 2.4, 2.6, 3.2}
	w, p, err := ShapiroWilk(sample)
	if err != nil {
		t.Fatalf("ShapiroWilk: %v", err)
	}
	if w <= 0 || w > 1 {
		t.Errorf("W = %v out of range", w)
	}
	if p < 0 || p > 1 {
		t.Errorf("p = %v out of range", p)
	}
	if p < 0.05 {
		t.Errorf("p = %v; unremarkable sample should not be rejected", p)
	}
}

func TestShapiroWilkInputErrors(t *testing.T) {
	if _, _, err := ShapiroWilk([]float64{1, 2}); !errors.Is(err, ErrSampleTooSmall) {
		t.Errorf("short sample: err = %v, want ErrSampleTooSmall", err)
	}
	if _, _, err := ShapiroWilk([]float64{5, 5, 5, 5}); !errors.Is(err, ErrNoVariation) {
		t.Errorf("constant sample: err = %v, want ErrNoVariation", err)
	}
}

func TestShapiroWilkDoesNotMutateInput(t *testing.T) {
	sample := []float64{3, 1, 2, 5, 4}
	if _, _, err := ShapiroWilk(sample); err != nil {
		t.Fatalf("ShapiroWilk: %v", err)
	}
	want := []float64{3, 1, 2, 5, 4}
	for i := range want {
		if sample[i] != want[i] {
			t.Fatalf("input mutated: %v", sample)
		}
	}
}
