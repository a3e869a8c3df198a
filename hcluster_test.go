package hcluster

import (
	"math"
	"math/rand"
	"testing"
)

// newTestRand returns a seeded source so randomized tests stay reproducible.
func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// ytdist is a 6-observation condensed dissimilarity fixture (pairwise
// distances between six points, deliberately asymmetric) used throughout
// the regression tests.
var ytdist = []float64{662, 877, 255, 412, 996, 295, 468, 268, 400, 754, 564, 138, 219, 869, 669}

// Expected linkage matrices for ytdist under each method.
var (
	linkageYtdistSingle = [][4]float64{
		{2, 5, 138, 2},
		{3, 4, 219, 2},
		{0, 7, 255, 3},
		{1, 8, 268, 4},
		{6, 9, 295, 6},
	}
	linkageYtdistComplete = [][4]float64{
		{2, 5, 138, 2},
		{3, 4, 219, 2},
		{1, 6, 400, 3},
		{0, 7, 412, 3},
		{8, 9, 996, 6},
	}
	linkageYtdistAverage = [][4]float64{
		{2, 5, 138, 2},
		{3, 4, 219, 2},
		{0, 7, 333.5, 3},
		{1, 6, 347.5, 3},
		{8, 9, 680.77777777777771, 6},
	}
	linkageYtdistWeighted = [][4]float64{
		{2, 5, 138, 2},
		{3, 4, 219, 2},
		{0, 7, 333.5, 3},
		{1, 6, 347.5, 3},
		{8, 9, 670.125, 6},
	}
	linkageYtdistWard = [][4]float64{
		{2, 5, 138, 2},
		{3, 4, 219, 2},
		{0, 7, 374.86753215858351, 3},
		{1, 6, 397.91372599262434, 3},
		{8, 9, 1159.133584478798, 6},
	}
	linkageYtdistCentroid = [][4]float64{
		{2, 5, 138, 2},
		{3, 4, 219, 2},
		{0, 7, 324.64480590331334, 3},
		{1, 6, 344.60339522413301, 3},
		{8, 9, 669.22608702556988, 6},
	}
	linkageYtdistMedian = [][4]float64{
		{2, 5, 138, 2},
		{3, 4, 219, 2},
		{0, 7, 324.64480590331334, 3},
		{1, 6, 344.60339522413301, 3},
		{8, 9, 657.44310590346913, 6},
	}
)

// qX is a deterministic 30-observation 2-D dataset with three well-separated
// groups of ten (observations 0-9, 10-19, 20-29), used for flat clustering
// and property tests.
var qX = [][]float64{
	{0.655154, 0.304814},
	{0.674961, 0.106768},
	{0.516574, 0.489666},
	{0.602472, 0.369955},
	{0.256667, 0.374182},
	{0.825585, 0.17272},
	{0.297812, 0.643531},
	{0.789655, 0.987811},
	{0.800571, 0.464257},
	{0.538999, 0.625493},
	{10.25, 10.7039},
	{10.7163, 10.9795},
	{10.329, 10.4455},
	{10.7084, 10.7399},
	{10.1728, 10.0157},
	{10.7826, 10.0412},
	{10.5974, 10.2457},
	{10.5565, 10.5152},
	{10.3974, 10.1826},
	{10.646, 10.7165},
	{20.3049, 0.971479},
	{20.8345, 0.390092},
	{20.7049, 0.125516},
	{20.6078, 0.549076},
	{20.6999, 0.903987},
	{20.3969, 0.832313},
	{20.6185, 0.016153},
	{20.375, 0.109569},
	{20.5603, 0.370184},
	{20.1499, 0.803701},
}

// qSingle computes single linkage over qX, failing the test on error.
func qSingle(t *testing.T) [][4]float64 {
	t.Helper()
	Z, err := LinkageVectors(qX, MethodSingle, nil)
	if err != nil {
		t.Fatalf("LinkageVectors(qX, single): %v", err)
	}
	return Z
}

// compareFloat64Slices reports mismatches between expected and actual float
// slices at the given tolerance, logging up to 5 individual errors.
func compareFloat64Slices(t *testing.T, name string, want, got []float64, tol float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s length: want %d, got %d", name, len(want), len(got))
	}
	mismatches := 0
	for i := range want {
		if math.Abs(want[i]-got[i]) > tol {
			mismatches++
			if mismatches <= 5 {
				t.Errorf("%s[%d]: want %g, got %g (diff=%g)",
					name, i, want[i], got[i], math.Abs(want[i]-got[i]))
			}
		}
	}
	if mismatches > 5 {
		t.Errorf("... and %d more %s mismatches beyond tolerance %g", mismatches-5, name, tol)
	}
}

// compareMatrices is compareFloat64Slices over 4-column rows.
func compareMatrices(t *testing.T, name string, want, got [][4]float64, tol float64) {
	t.Helper()
	if len(want) != len(got) {
		t.Fatalf("%s rows: want %d, got %d", name, len(want), len(got))
	}
	for i := range want {
		for j := 0; j < 4; j++ {
			if math.Abs(want[i][j]-got[i][j]) > tol {
				t.Errorf("%s[%d][%d]: want %g, got %g", name, i, j, want[i][j], got[i][j])
			}
		}
	}
}
