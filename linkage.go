package hcluster

import (
	"fmt"
	"math"
	"sort"
)

// Method selects the cluster distance-update rule used during agglomeration.
type Method string

const (
	MethodSingle   Method = "single"
	MethodComplete Method = "complete"
	MethodAverage  Method = "average"
	MethodWeighted Method = "weighted"
	MethodWard     Method = "ward"
	MethodCentroid Method = "centroid"
	MethodMedian   Method = "median"
)

// ParseMethod maps a method name onto the closed set of Method values,
// rejecting unknown names with ErrUnsupportedMethod.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodSingle, MethodComplete, MethodAverage, MethodWeighted,
		MethodWard, MethodCentroid, MethodMedian:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown linkage method %q", ErrUnsupportedMethod, s)
}

// methodRequiresEuclidean reports whether the method's update recurrence
// assumes squared Euclidean geometry of the underlying observations.
func methodRequiresEuclidean(m Method) bool {
	return m == MethodWard || m == MethodCentroid || m == MethodMedian
}

// updateDist is the Lance-Williams distance update: the distance from the
// cluster formed by merging x and y to another cluster k, given the previous
// distances dx = d(x,k), dy = d(y,k), the merge distance dxy = d(x,y), and
// the observation counts sx, sy, sk.
func updateDist(method Method, dx, dy, dxy, sx, sy, sk float64) float64 {
	switch method {
	case MethodSingle:
		return math.Min(dx, dy)
	case MethodComplete:
		return math.Max(dx, dy)
	case MethodAverage:
		return (sx*dx + sy*dy) / (sx + sy)
	case MethodWeighted:
		return (dx + dy) / 2
	case MethodWard:
		t := 1.0 / (sx + sy + sk)
		return math.Sqrt((sx+sk)*t*dx*dx + (sy+sk)*t*dy*dy - sk*t*dxy*dxy)
	case MethodCentroid:
		s := sx + sy
		return math.Sqrt((sx*dx*dx+sy*dy*dy)/s - sx*sy*dxy*dxy/(s*s))
	case MethodMedian:
		return math.Sqrt(dx*dx/2 + dy*dy/2 - dxy*dxy/4)
	}
	panic("hcluster: unknown method in updateDist")
}

// Linkage performs agglomerative clustering on the condensed dissimilarity
// array y (length n(n-1)/2, see PDist) and returns the linkage matrix:
// n-1 rows of [left, right, distance, size] in chronological merge order.
// Cluster ids 0..n-1 are original observations; id n+i is the cluster
// created by row i. y is not modified.
//
// single, complete, average, weighted and ward run on a nearest-neighbor
// chain; centroid and median use a global minimum scan because their
// recurrences are not reducible and can produce inversions.
func Linkage(y []float64, method Method) ([][4]float64, error) {
	n, err := validCondensed(y)
	if err != nil {
		return nil, err
	}
	switch method {
	case MethodSingle, MethodComplete, MethodAverage, MethodWeighted, MethodWard:
		return labelMerges(nnChain(y, n, method), n), nil
	case MethodCentroid, MethodMedian:
		return genericLinkage(y, n, method), nil
	default:
		return nil, fmt.Errorf("%w: unknown linkage method %q", ErrUnsupportedMethod, method)
	}
}

// LinkageVectors computes the condensed dissimilarities for the observation
// matrix X under metric (nil means Euclidean) and runs Linkage on them.
// Methods whose recurrence assumes Euclidean geometry (ward, centroid,
// median) reject non-Euclidean metrics.
func LinkageVectors(X [][]float64, method Method, metric DistanceMetric) ([][4]float64, error) {
	if methodRequiresEuclidean(method) && metric != nil {
		if _, ok := metric.(EuclideanMetric); !ok {
			return nil, fmt.Errorf("%w: method %q requires the Euclidean metric over raw observations", ErrUnsupportedMethod, method)
		}
	}
	y, err := PDist(X, metric)
	if err != nil {
		return nil, err
	}
	return Linkage(y, method)
}

// nnChain runs nearest-neighbor-chain agglomeration over a private copy of
// the condensed array, returning raw merges [a, b, dist] where a and b are
// leaf-representative ids. Rows are in discovery order, not height order;
// labelMerges finishes the job.
func nnChain(y []float64, n int, method Method) [][3]float64 {
	dists := make([]float64, len(y))
	copy(dists, y)

	size := make([]int, n)
	for i := range size {
		size[i] = 1
	}

	merges := make([][3]float64, 0, n-1)
	chain := make([]int, 0, n)

	for len(merges) < n-1 {
		if len(chain) == 0 {
			for i := 0; i < n; i++ {
				if size[i] > 0 {
					chain = append(chain, i)
					break
				}
			}
		}

		// Extend the chain by nearest neighbors until the top two
		// elements are mutual nearest neighbors. Preferring the
		// previous chain element on ties, and otherwise the lowest id
		// (ascending scan with strict <), keeps the result
		// deterministic.
		var x, next int
		var curMin float64
		for {
			x = chain[len(chain)-1]
			if len(chain) > 1 {
				next = chain[len(chain)-2]
				curMin = dists[condensedIndex(n, x, next)]
			} else {
				next = -1
				curMin = math.Inf(1)
			}
			for i := 0; i < n; i++ {
				if size[i] == 0 || i == x {
					continue
				}
				if d := dists[condensedIndex(n, x, i)]; d < curMin {
					curMin = d
					next = i
				}
			}
			if len(chain) > 1 && next == chain[len(chain)-2] {
				break
			}
			chain = append(chain, next)
		}

		// Merge the mutual pair.
		chain = chain[:len(chain)-2]
		a, b := x, next
		if a > b {
			a, b = b, a
		}
		sa, sb := size[a], size[b]
		merges = append(merges, [3]float64{float64(a), float64(b), curMin})

		// Retire a; b carries the merged cluster.
		size[a] = 0
		size[b] = sa + sb
		for k := 0; k < n; k++ {
			if size[k] == 0 || k == b {
				continue
			}
			dists[condensedIndex(n, k, b)] = updateDist(method,
				dists[condensedIndex(n, k, a)],
				dists[condensedIndex(n, k, b)],
				curMin, float64(sa), float64(sb), float64(size[k]))
		}
	}
	return merges
}

// labelMerges orders raw nearest-neighbor-chain merges by height (stable, so
// equal heights keep discovery order) and rewrites leaf-representative ids
// into linkage-matrix cluster ids via union-find.
func labelMerges(merges [][3]float64, n int) [][4]float64 {
	sort.SliceStable(merges, func(i, j int) bool {
		return merges[i][2] < merges[j][2]
	})

	uf := newLinkageUnionFind(n)
	out := make([][4]float64, len(merges))
	for i, m := range merges {
		a := uf.find(int(m[0]))
		b := uf.find(int(m[1]))
		if a > b {
			a, b = b, a
		}
		sz := uf.merge(a, b)
		out[i] = [4]float64{float64(a), float64(b), m[2], float64(sz)}
	}
	return out
}

// genericLinkage merges the globally closest pair each step, assigning
// cluster ids n+step in chronological order. O(n³) worst case but exact for
// the non-reducible centroid and median recurrences. Ascending id scans with
// strict < break distance ties toward the lowest pair of ids.
func genericLinkage(y []float64, n int, method Method) [][4]float64 {
	// Distances between any two clusters ever alive, indexed over the
	// full id space 0..2n-2.
	total := 2*n - 1
	dists := make([]float64, total*(total-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dists[condensedIndex(total, i, j)] = y[condensedIndex(n, i, j)]
		}
	}

	alive := make([]bool, total)
	size := make([]int, total)
	for i := 0; i < n; i++ {
		alive[i] = true
		size[i] = 1
	}

	out := make([][4]float64, n-1)
	for step := 0; step < n-1; step++ {
		best := math.Inf(1)
		pa, pb := -1, -1
		for i := 0; i < n+step; i++ {
			if !alive[i] {
				continue
			}
			for j := i + 1; j < n+step; j++ {
				if !alive[j] {
					continue
				}
				if d := dists[condensedIndex(total, i, j)]; d < best {
					best = d
					pa, pb = i, j
				}
			}
		}

		id := n + step
		sa, sb := size[pa], size[pb]
		out[step] = [4]float64{float64(pa), float64(pb), best, float64(sa + sb)}

		for k := 0; k < id; k++ {
			if !alive[k] || k == pa || k == pb {
				continue
			}
			dists[condensedIndex(total, id, k)] = updateDist(method,
				dists[condensedIndex(total, pa, k)],
				dists[condensedIndex(total, pb, k)],
				best, float64(sa), float64(sb), float64(size[k]))
		}
		alive[pa] = false
		alive[pb] = false
		alive[id] = true
		size[id] = sa + sb
	}
	return out
}
