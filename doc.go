// Package hcluster implements agglomerative hierarchical clustering and the
// analysis operations built on top of it.
//
// Given pairwise dissimilarities in condensed form (the upper triangle of the
// distance matrix packed into a 1-D slice), Linkage produces a merge sequence
// in the standard linkage-matrix convention: n-1 rows of
// [left, right, distance, size], where ids 0..n-1 are original observations
// and ids n..2n-2 are the clusters created at each step.
//
// Basic usage:
//
//	y, err := hcluster.PDist(data, hcluster.EuclideanMetric{})
//	Z, err := hcluster.Linkage(y, hcluster.MethodSingle)
//	labels, err := hcluster.FCluster(Z, 3, hcluster.CriterionMaxClust, hcluster.FClusterOptions{})
//
// Downstream of the linkage matrix the package provides:
//
//   - ToTree / LeavesList: a binary merge tree with iterative traversal
//   - Cophenet / Inconsistent / MaxDists / MaxInconsts / MaxRStat: tree
//     statistics computed by bottom-up sweeps over the linkage rows
//   - FCluster / FClusterData / Leaders: flat cluster extraction under
//     several cut criteria
//   - DendrogramLayout: 2-D plotting geometry (coordinates, leaf order,
//     link colors) for rendering backends
//   - IsValidLinkage, IsMonotonic, Correspond and friends: validity checks
//   - ToMLabLinkage / FromMLabLinkage: legacy 1-indexed interchange format
//
// # Methods
//
// Seven distance-update rules are supported: single, complete, average,
// weighted, ward, centroid and median. The reducible methods run on a
// nearest-neighbor chain in O(n²) time; centroid and median, which can
// produce inversions (a merge lower than one below it), use a global
// minimum scan. Non-monotonic output is accepted, documented behavior;
// use IsMonotonic to detect it.
package hcluster
