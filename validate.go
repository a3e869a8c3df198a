package hcluster

import (
	"fmt"
	"math"
)

// ValidateLinkage checks that Z is a well-formed linkage matrix: at least
// one row, integral non-negative ids, non-negative distances and counts,
// and every row referencing only clusters defined before it. Returns nil
// when valid; IsValidLinkage is the boolean variant.
//
// The 4-column shape and floating-point element type of the original,
// dynamically-typed format are enforced here by [][4]float64 itself.
func ValidateLinkage(Z [][4]float64) error {
	if len(Z) == 0 {
		return fmt.Errorf("%w: linkage matrix is empty", ErrValidation)
	}
	n := len(Z) + 1
	for i, row := range Z {
		left, right := row[0], row[1]
		if left != math.Trunc(left) || right != math.Trunc(right) {
			return fmt.Errorf("%w: linkage row %d has non-integral cluster ids (%g, %g)", ErrValidation, i, left, right)
		}
		if left < 0 || right < 0 {
			return fmt.Errorf("%w: linkage row %d has a negative cluster id", ErrValidation, i)
		}
		if int(left) >= n+i || int(right) >= n+i {
			return fmt.Errorf("%w: linkage row %d references cluster not yet defined at that row", ErrValidation, i)
		}
		if row[2] < 0 {
			return fmt.Errorf("%w: linkage row %d has a negative distance (%g)", ErrValidation, i, row[2])
		}
		if row[3] < 0 {
			return fmt.Errorf("%w: linkage row %d has a negative observation count (%g)", ErrValidation, i, row[3])
		}
	}
	return nil
}

// IsValidLinkage reports whether Z is a well-formed linkage matrix.
func IsValidLinkage(Z [][4]float64) bool {
	return ValidateLinkage(Z) == nil
}

// ValidateIm checks that R is a well-formed inconsistency matrix: at least
// one row with non-negative mean heights, standard deviations, and link
// counts (the coefficient column may be negative). Returns nil when valid;
// IsValidIm is the boolean variant.
func ValidateIm(R [][4]float64) error {
	if len(R) == 0 {
		return fmt.Errorf("%w: inconsistency matrix is empty", ErrValidation)
	}
	for i, row := range R {
		if row[0] < 0 {
			return fmt.Errorf("%w: inconsistency row %d has a negative mean height (%g)", ErrValidation, i, row[0])
		}
		if row[1] < 0 {
			return fmt.Errorf("%w: inconsistency row %d has a negative standard deviation (%g)", ErrValidation, i, row[1])
		}
		if row[2] < 0 {
			return fmt.Errorf("%w: inconsistency row %d has a negative link count (%g)", ErrValidation, i, row[2])
		}
	}
	return nil
}

// IsValidIm reports whether R is a well-formed inconsistency matrix.
func IsValidIm(R [][4]float64) bool {
	return ValidateIm(R) == nil
}

// IsMonotonic reports whether Z has no inversions: every merge height is at
// least as large as the heights of its internal children. Single, complete,
// average, weighted and ward linkage always satisfy this; centroid and
// median need not.
func IsMonotonic(Z [][4]float64) (bool, error) {
	if err := ValidateLinkage(Z); err != nil {
		return false, err
	}
	n := len(Z) + 1
	for _, row := range Z {
		for _, c := range []int{int(row[0]), int(row[1])} {
			if c >= n && Z[c-n][2] > row[2] {
				return false, nil
			}
		}
	}
	return true, nil
}

// Correspond reports whether the observation count implied by the linkage
// matrix Z matches the count implied by the condensed dissimilarity array y.
// Either being empty or malformed is an error.
func Correspond(Z [][4]float64, y []float64) (bool, error) {
	nZ, err := NumObsLinkage(Z)
	if err != nil {
		return false, err
	}
	nY, err := NumObsY(y)
	if err != nil {
		return false, err
	}
	return nZ == nY, nil
}

// NumObsLinkage returns the number of original observations clustered by Z.
func NumObsLinkage(Z [][4]float64) (int, error) {
	if err := ValidateLinkage(Z); err != nil {
		return 0, err
	}
	return len(Z) + 1, nil
}
