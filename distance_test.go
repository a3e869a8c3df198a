package hcluster

import (
	"errors"
	"math"
	"testing"
)

func TestMetrics(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{4, 6, 3}

	for _, tc := range []struct {
		name   string
		metric DistanceMetric
		want   float64
	}{
		{"euclidean", EuclideanMetric{}, 5},
		{"manhattan", ManhattanMetric{}, 7},
		{"chebyshev", ChebyshevMetric{}, 4},
		{"minkowski p=1", MinkowskiMetric{P: 1}, 7},
		{"minkowski p=2", MinkowskiMetric{P: 2}, 5},
		{"func adapter", DistanceFunc(func(a, b []float64) float64 { return 42 }), 42},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.metric.Distance(a, b); math.Abs(got-tc.want) > 1e-12 {
				t.Errorf("Distance(%v, %v) = %v, want %v", a, b, got, tc.want)
			}
		})
	}
}

func TestCosineMetric(t *testing.T) {
	var m CosineMetric
	if got := m.Distance([]float64{1, 0}, []float64{0, 1}); math.Abs(got-1) > 1e-12 {
		t.Errorf("orthogonal vectors: got %v, want 1", got)
	}
	if got := m.Distance([]float64{2, 2}, []float64{5, 5}); math.Abs(got) > 1e-12 {
		t.Errorf("parallel vectors: got %v, want 0", got)
	}
	if got := m.Distance([]float64{1, 1}, []float64{-1, -1}); math.Abs(got-2) > 1e-12 {
		t.Errorf("opposite vectors: got %v, want 2", got)
	}
	if got := m.Distance([]float64{0, 0}, []float64{0, 0}); !math.IsNaN(got) {
		t.Errorf("zero vectors: got %v, want NaN", got)
	}
}

func TestMinkowskiMetric_PanicsBelowOne(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for P < 1")
		}
	}()
	MinkowskiMetric{P: 0.5}.Distance([]float64{0}, []float64{1})
}

func TestCondensedIndex(t *testing.T) {
	// The condensed layout is the row-major upper triangle.
	n := 5
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if got := condensedIndex(n, i, j); got != k {
				t.Errorf("condensedIndex(%d, %d, %d) = %d, want %d", n, i, j, got, k)
			}
			if got := condensedIndex(n, j, i); got != k {
				t.Errorf("condensedIndex(%d, %d, %d) = %d, want %d", n, j, i, got, k)
			}
			k++
		}
	}
}

func TestNumObsY(t *testing.T) {
	for _, tc := range []struct {
		m, n int
	}{
		{1, 2}, {3, 3}, {6, 4}, {10, 5}, {15, 6}, {435, 30},
	} {
		got, err := NumObsY(make([]float64, tc.m))
		if err != nil {
			t.Fatalf("NumObsY(len %d): %v", tc.m, err)
		}
		if got != tc.n {
			t.Errorf("NumObsY(len %d) = %d, want %d", tc.m, got, tc.n)
		}
	}
	for _, m := range []int{0, 2, 4, 5, 7, 11} {
		if _, err := NumObsY(make([]float64, m)); !errors.Is(err, ErrValidation) {
			t.Errorf("NumObsY(len %d): error = %v, want ErrValidation", m, err)
		}
	}
}

func TestPDist(t *testing.T) {
	X := [][]float64{{0, 0}, {3, 4}, {0, 8}}

	y, err := PDist(X, nil)
	if err != nil {
		t.Fatal(err)
	}
	compareFloat64Slices(t, "pdist euclidean", []float64{5, 8, 5}, y, 1e-12)

	y, err = PDist(X, ManhattanMetric{})
	if err != nil {
		t.Fatal(err)
	}
	compareFloat64Slices(t, "pdist manhattan", []float64{7, 8, 7}, y, 1e-12)

	// A pdist result always has a valid binomial length.
	if _, err := NumObsY(y); err != nil {
		t.Errorf("NumObsY of PDist output: %v", err)
	}
}

func TestPDist_Errors(t *testing.T) {
	if _, err := PDist(nil, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("no observations: error = %v, want ErrValidation", err)
	}
	if _, err := PDist([][]float64{{1, 2}}, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("one observation: error = %v, want ErrValidation", err)
	}
	if _, err := PDist([][]float64{{1, 2}, {1}}, nil); !errors.Is(err, ErrValidation) {
		t.Errorf("ragged dimensions: error = %v, want ErrValidation", err)
	}
}
