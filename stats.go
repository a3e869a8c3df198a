package hcluster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Cophenet computes the cophenetic distances of Z: for every pair of
// original observations, the height of the merge at which they first share
// a cluster. The result is a condensed array of length n(n-1)/2.
//
// One pass over the rows in id order suffices: when row i merges clusters
// a and b, the height of row i is exactly the cophenetic distance between
// every observation under a and every observation under b.
func Cophenet(Z [][4]float64) ([]float64, error) {
	if err := ValidateLinkage(Z); err != nil {
		return nil, err
	}
	n := len(Z) + 1

	members := make([][]int, 2*n-1)
	for i := 0; i < n; i++ {
		members[i] = []int{i}
	}

	out := make([]float64, n*(n-1)/2)
	for i, row := range Z {
		a, b := int(row[0]), int(row[1])
		for _, p := range members[a] {
			for _, q := range members[b] {
				out[condensedIndex(n, p, q)] = row[2]
			}
		}
		merged := make([]int, 0, len(members[a])+len(members[b]))
		merged = append(merged, members[a]...)
		merged = append(merged, members[b]...)
		members[n+i] = merged
		members[a], members[b] = nil, nil
	}
	return out, nil
}

// CophenetCorrelation computes the cophenetic distances of Z and their
// Pearson correlation against the condensed dissimilarity array y the
// linkage was built from. The correlation is a common measure of how
// faithfully the hierarchy preserves the original distances.
func CophenetCorrelation(Z [][4]float64, y []float64) (float64, []float64, error) {
	ok, err := Correspond(Z, y)
	if err != nil {
		return 0, nil, err
	}
	if !ok {
		return 0, nil, fmt.Errorf("%w: linkage over %d observations does not correspond to condensed array of length %d", ErrValidation, len(Z)+1, len(y))
	}
	M, err := Cophenet(Z)
	if err != nil {
		return 0, nil, err
	}
	return stat.Correlation(M, y, nil), M, nil
}

// Inconsistent computes the inconsistency matrix of Z at the given depth:
// one row [mean, std, count, coefficient] per link, over the heights of all
// links within depth levels below it (the link itself included). std is the
// population standard deviation; the coefficient is
// (height - mean) / std, or 0 when std is 0.
func Inconsistent(Z [][4]float64, depth int) ([][4]float64, error) {
	if err := ValidateLinkage(Z); err != nil {
		return nil, err
	}
	if depth < 1 {
		return nil, fmt.Errorf("%w: inconsistency depth must be >= 1, got %d", ErrValidation, depth)
	}
	n := len(Z) + 1

	R := make([][4]float64, len(Z))
	type frame struct {
		row   int
		level int
	}
	stack := make([]frame, 0, depth*2)
	for i := range Z {
		var sum, sumSq float64
		count := 0
		stack = append(stack[:0], frame{i, 0})
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			h := Z[f.row][2]
			sum += h
			sumSq += h * h
			count++
			if f.level < depth-1 {
				for _, c := range []int{int(Z[f.row][0]), int(Z[f.row][1])} {
					if c >= n {
						stack = append(stack, frame{c - n, f.level + 1})
					}
				}
			}
		}
		mean := sum / float64(count)
		variance := sumSq/float64(count) - mean*mean
		std := 0.0
		if variance > 0 {
			std = math.Sqrt(variance)
		}
		coef := 0.0
		if std > 0 {
			coef = (Z[i][2] - mean) / std
		}
		R[i] = [4]float64{mean, std, float64(count), coef}
	}
	return R, nil
}

// MaxDists returns, for each link, the maximum merge height among the link
// itself and every link below it. Computed by one bottom-up sweep: row i
// may only read values of its internal children, which the id ordering
// guarantees were already filled.
func MaxDists(Z [][4]float64) ([]float64, error) {
	if err := ValidateLinkage(Z); err != nil {
		return nil, err
	}
	return maxSweep(Z, func(i int) float64 { return Z[i][2] }), nil
}

// MaxInconsts returns, for each link, the maximum inconsistency coefficient
// among the link itself and every link below it. Z and R must have the same
// number of rows.
func MaxInconsts(Z, R [][4]float64) ([]float64, error) {
	return MaxRStat(Z, R, 3)
}

// MaxRStat is the generalization of MaxInconsts to any inconsistency-matrix
// column k in [0, 3]: the running maximum of R[i][k] over each subtree.
func MaxRStat(Z, R [][4]float64, k int) ([]float64, error) {
	if k < 0 || k > 3 {
		return nil, fmt.Errorf("%w: inconsistency matrix column %d out of range [0, 3]", ErrValidation, k)
	}
	if err := ValidateLinkage(Z); err != nil {
		return nil, err
	}
	if err := ValidateIm(R); err != nil {
		return nil, err
	}
	if len(Z) != len(R) {
		return nil, fmt.Errorf("%w: linkage has %d rows but inconsistency matrix has %d", ErrValidation, len(Z), len(R))
	}
	return maxSweep(Z, func(i int) float64 { return R[i][k] }), nil
}

// maxSweep computes B[i] = max(value(i), B[left], B[right]) in one pass in
// row order. A leaf child contributes 0 in place of its (nonexistent) B.
func maxSweep(Z [][4]float64, value func(i int) float64) []float64 {
	n := len(Z) + 1
	B := make([]float64, len(Z))
	for i, row := range Z {
		v := value(i)
		for _, c := range []int{int(row[0]), int(row[1])} {
			cv := 0.0
			if c >= n {
				cv = B[c-n]
			}
			if cv > v {
				v = cv
			}
		}
		B[i] = v
	}
	return B
}
