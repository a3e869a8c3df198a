package hcluster

import (
	"fmt"
	"math"
	"sort"
)

// Criterion selects how FCluster cuts the hierarchy into flat clusters.
type Criterion string

const (
	// CriterionInconsistent cuts links whose inconsistency coefficient
	// exceeds t, computed at FClusterOptions.Depth.
	CriterionInconsistent Criterion = "inconsistent"

	// CriterionDistance cuts links whose merge height exceeds t.
	CriterionDistance Criterion = "distance"

	// CriterionMaxClust finds the smallest height threshold producing at
	// most t flat clusters.
	CriterionMaxClust Criterion = "maxclust"

	// CriterionMonocrit cuts links whose caller-supplied monotonic
	// statistic exceeds t.
	CriterionMonocrit Criterion = "monocrit"

	// CriterionMaxClustMonocrit is CriterionMaxClust over the supplied
	// monotonic statistic instead of merge heights.
	CriterionMaxClustMonocrit Criterion = "maxclust_monocrit"
)

// FClusterOptions carries the optional inputs of FCluster. The zero value
// is valid: Depth defaults to 2 and R is computed from Z when the
// inconsistent criterion needs it.
type FClusterOptions struct {
	// Depth of the inconsistency computation for CriterionInconsistent.
	Depth int

	// R is a precomputed inconsistency matrix for CriterionInconsistent.
	// Must have one row per linkage row when set.
	R [][4]float64

	// Monocrit is the per-link statistic for CriterionMonocrit and
	// CriterionMaxClustMonocrit, length n-1. It must be monotonic: a
	// link's value no smaller than those of the links below it.
	Monocrit []float64
}

// FCluster cuts the hierarchy Z into flat clusters and returns 1-indexed
// cluster labels, one per original observation. Labels are assigned by a
// single pre-order walk (left child first) over the maximal uncut subtrees.
func FCluster(Z [][4]float64, t float64, criterion Criterion, opt FClusterOptions) ([]int, error) {
	if err := ValidateLinkage(Z); err != nil {
		return nil, err
	}
	n := len(Z) + 1

	switch criterion {
	case CriterionInconsistent:
		mc, err := inconsistencyCoefficients(Z, opt)
		if err != nil {
			return nil, err
		}
		return clusterMonocrit(Z, mc, t, n), nil

	case CriterionDistance:
		return clusterMonocrit(Z, linkHeights(Z), t, n), nil

	case CriterionMonocrit:
		if len(opt.Monocrit) != n-1 {
			return nil, fmt.Errorf("%w: monocrit has %d values, want one per link (%d)", ErrValidation, len(opt.Monocrit), n-1)
		}
		return clusterMonocrit(Z, opt.Monocrit, t, n), nil

	case CriterionMaxClust:
		maxC, err := maxClusterCount(t)
		if err != nil {
			return nil, err
		}
		return clusterMaxClust(Z, linkHeights(Z), maxC, n), nil

	case CriterionMaxClustMonocrit:
		if len(opt.Monocrit) != n-1 {
			return nil, fmt.Errorf("%w: monocrit has %d values, want one per link (%d)", ErrValidation, len(opt.Monocrit), n-1)
		}
		maxC, err := maxClusterCount(t)
		if err != nil {
			return nil, err
		}
		return clusterMaxClust(Z, opt.Monocrit, maxC, n), nil

	default:
		return nil, fmt.Errorf("%w: unknown flat cluster criterion %q", ErrValidation, criterion)
	}
}

// FClusterData is the convenience composition of PDist, Linkage, and
// FCluster. A nil metric means Euclidean; an empty method means single.
func FClusterData(X [][]float64, t float64, criterion Criterion, metric DistanceMetric, method Method, opt FClusterOptions) ([]int, error) {
	if method == "" {
		method = MethodSingle
	}
	Z, err := LinkageVectors(X, method, metric)
	if err != nil {
		return nil, err
	}
	return FCluster(Z, t, criterion, opt)
}

func inconsistencyCoefficients(Z [][4]float64, opt FClusterOptions) ([]float64, error) {
	R := opt.R
	if R == nil {
		depth := opt.Depth
		if depth == 0 {
			depth = 2
		}
		var err error
		R, err = Inconsistent(Z, depth)
		if err != nil {
			return nil, err
		}
	} else {
		if err := ValidateIm(R); err != nil {
			return nil, err
		}
		if len(R) != len(Z) {
			return nil, fmt.Errorf("%w: linkage has %d rows but inconsistency matrix has %d", ErrValidation, len(Z), len(R))
		}
	}
	mc := make([]float64, len(R))
	for i, row := range R {
		mc[i] = row[3]
	}
	return mc, nil
}

func linkHeights(Z [][4]float64) []float64 {
	h := make([]float64, len(Z))
	for i, row := range Z {
		h[i] = row[2]
	}
	return h
}

func maxClusterCount(t float64) (int, error) {
	if t < 1 || t != math.Trunc(t) {
		return 0, fmt.Errorf("%w: maxclust criterion needs a positive integer cluster count, got %g", ErrValidation, t)
	}
	return int(t), nil
}

// clusterMonocrit labels each observation by cutting every link whose
// statistic exceeds t: a maximal subtree whose root statistic is <= t forms
// one cluster, and leaves under no such subtree become singletons. The walk
// is an explicit-stack pre-order with the left child first, assigning
// sequential 1-indexed labels.
func clusterMonocrit(Z [][4]float64, mc []float64, t float64, n int) []int {
	labels := make([]int, n)
	k := 0

	type frame struct {
		node   int
		leader int // 0 while outside any uncut subtree
	}
	stack := []frame{{2*n - 2, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.node < n {
			if f.leader == 0 {
				k++
				labels[f.node] = k
			} else {
				labels[f.node] = f.leader
			}
			continue
		}

		row := f.node - n
		if f.leader == 0 && mc[row] <= t {
			k++
			f.leader = k
		}
		stack = append(stack,
			frame{int(Z[row][1]), f.leader},
			frame{int(Z[row][0]), f.leader})
	}
	return labels
}

// clusterMaxClust binary-searches the sorted unique statistic values for the
// smallest threshold producing at most maxC clusters, then labels at that
// threshold. Ties between thresholds resolve toward fewer clusters because
// the search keeps moving left while the count stays within maxC.
func clusterMaxClust(Z [][4]float64, mc []float64, maxC, n int) []int {
	thresholds := append([]float64{math.Inf(-1)}, mc...)
	sort.Float64s(thresholds)
	uniq := thresholds[:1]
	for _, v := range thresholds[1:] {
		if v != uniq[len(uniq)-1] {
			uniq = append(uniq, v)
		}
	}

	best := uniq[len(uniq)-1]
	lo, hi := 0, len(uniq)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		labels := clusterMonocrit(Z, mc, uniq[mid], n)
		if numClusters(labels) <= maxC {
			best = uniq[mid]
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return clusterMonocrit(Z, mc, best, n)
}

func numClusters(labels []int) int {
	m := 0
	for _, l := range labels {
		if l > m {
			m = l
		}
	}
	return m
}

// Leaders returns, for the flat clustering T of Z, the node id that roots
// each flat cluster and the matching cluster label, ordered bottom-up by the
// row at which each leader is finalized. T must be a proper cut of Z: every
// cluster's observations must form one complete subtree.
func Leaders(Z [][4]float64, T []int) (nodes []int, labels []int, err error) {
	if err := ValidateLinkage(Z); err != nil {
		return nil, nil, err
	}
	n := len(Z) + 1
	if len(T) != n {
		return nil, nil, fmt.Errorf("%w: flat clustering has %d labels, want %d", ErrValidation, len(T), n)
	}

	// lab[id] is the uniform cluster label under node id, or -1 if mixed.
	lab := make([]int, 2*n-1)
	copy(lab, T)
	for i, row := range Z {
		la, lb := lab[int(row[0])], lab[int(row[1])]
		if la == lb && la != -1 {
			lab[n+i] = la
			continue
		}
		lab[n+i] = -1
		if la != -1 {
			nodes = append(nodes, int(row[0]))
			labels = append(labels, la)
		}
		if lb != -1 {
			nodes = append(nodes, int(row[1]))
			labels = append(labels, lb)
		}
	}
	if lab[2*n-2] != -1 {
		nodes = append(nodes, 2*n-2)
		labels = append(labels, lab[2*n-2])
	}

	seen := make(map[int]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			return nil, nil, fmt.Errorf("%w: T is not a flat clustering of Z (cluster %d spans multiple subtrees)", ErrValidation, l)
		}
		seen[l] = true
	}
	return nodes, labels, nil
}
