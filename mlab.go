package hcluster

import (
	"fmt"
	"math"
)

// ToMLabLinkage converts a linkage matrix to the legacy 1-indexed
// interchange format: 3 columns [left+1, right+1, height] with no size
// column. An empty input converts to an empty output.
func ToMLabLinkage(Z [][4]float64) [][3]float64 {
	out := make([][3]float64, len(Z))
	for i, row := range Z {
		out[i] = [3]float64{row[0] + 1, row[1] + 1, row[2]}
	}
	return out
}

// FromMLabLinkage converts the legacy 1-indexed 3-column format back to a
// linkage matrix, recomputing the size column from subtree counts. Ids are
// validated before use: each row may only reference 1-indexed clusters
// defined before it. The round trip through both conversions is the
// identity for any valid pair.
func FromMLabLinkage(Zm [][3]float64) ([][4]float64, error) {
	n := len(Zm) + 1
	counts := make([]int, 2*n-1)
	for i := 0; i < n; i++ {
		counts[i] = 1
	}

	out := make([][4]float64, len(Zm))
	for i, row := range Zm {
		if row[0] != math.Trunc(row[0]) || row[1] != math.Trunc(row[1]) {
			return nil, fmt.Errorf("%w: legacy row %d has non-integral cluster ids (%g, %g)", ErrValidation, i, row[0], row[1])
		}
		left := int(row[0]) - 1
		right := int(row[1]) - 1
		if left < 0 || right < 0 || left >= n+i || right >= n+i {
			return nil, fmt.Errorf("%w: legacy row %d references cluster id outside 1..%d", ErrValidation, i, n+i)
		}
		counts[n+i] = counts[left] + counts[right]
		out[i] = [4]float64{float64(left), float64(right), row[2], float64(counts[n+i])}
	}
	return out, nil
}
