package hcluster

import (
	"fmt"
	"math"
)

// DistanceMetric measures the dissimilarity between two observation vectors.
type DistanceMetric interface {
	Distance(a, b []float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64 { return f(a, b) }

// EuclideanMetric computes the Euclidean (L2) distance. It is the only
// metric valid for the ward, centroid and median linkage methods, whose
// update recurrences assume Euclidean geometry.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	var maxVal float64
	for i := range a {
		if v := math.Abs(a[i] - b[i]); v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// MinkowskiMetric computes the Minkowski distance parameterized by P.
// P must be >= 1. Panics if P < 1.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	if m.P < 1 {
		panic("MinkowskiMetric: P must be >= 1")
	}
	var sum float64
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), m.P)
	}
	return math.Pow(sum, 1.0/m.P)
}

// CosineMetric computes the cosine distance: 1 - cosine_similarity.
// For two zero vectors, the result is NaN (0/0).
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	return 1.0 - dot/math.Sqrt(normA*normB)
}

// condensedIndex maps the unordered observation pair (i, j), i != j, to its
// position in a condensed dissimilarity array over n observations. The
// condensed layout is the row-major upper triangle:
// (0,1), (0,2), ..., (0,n-1), (1,2), ...
func condensedIndex(n, i, j int) int {
	if i > j {
		i, j = j, i
	}
	return n*i - (i*(i+1))/2 + (j - i - 1)
}

// NumObsY returns the number of observations implied by the length of the
// condensed dissimilarity array y. Returns an error if y is empty or its
// length is not a valid binomial n(n-1)/2.
func NumObsY(y []float64) (int, error) {
	m := len(y)
	if m == 0 {
		return 0, fmt.Errorf("%w: condensed dissimilarity array is empty (need at least 2 observations)", ErrValidation)
	}
	// Invert m = n(n-1)/2.
	n := int(math.Round((1 + math.Sqrt(1+8*float64(m))) / 2))
	if n*(n-1)/2 != m {
		return 0, fmt.Errorf("%w: condensed dissimilarity array length %d is not a valid binomial", ErrValidation, m)
	}
	return n, nil
}

// validCondensed checks y for a valid length and non-negative finite values,
// returning the implied observation count.
func validCondensed(y []float64) (int, error) {
	n, err := NumObsY(y)
	if err != nil {
		return 0, err
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: dissimilarity at condensed index %d is not finite", ErrValidation, i)
		}
		if v < 0 {
			return 0, fmt.Errorf("%w: dissimilarity at condensed index %d is negative (%g)", ErrValidation, i, v)
		}
	}
	return n, nil
}

// PDist computes the condensed pairwise dissimilarity array for the n
// observation vectors in X under the given metric. A nil metric defaults to
// EuclideanMetric. All rows must share one dimensionality; fewer than 2
// observations is an error.
func PDist(X [][]float64, metric DistanceMetric) ([]float64, error) {
	n := len(X)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations, got %d", ErrValidation, n)
	}
	if metric == nil {
		metric = EuclideanMetric{}
	}
	dims := len(X[0])
	for i, row := range X {
		if len(row) != dims {
			return nil, fmt.Errorf("%w: observation %d has %d dimensions, want %d", ErrValidation, i, len(row), dims)
		}
	}

	y := make([]float64, n*(n-1)/2)
	k := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			y[k] = metric.Distance(X[i], X[j])
			k++
		}
	}
	return y, nil
}
