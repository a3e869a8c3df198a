package hcluster

// linkageUnionFind is a disjoint-set over 2*n - 1 elements used to relabel
// merge rows: original observations are 0..n-1 and each merge claims the
// next cluster id starting at n, so roots double as linkage-matrix ids.
type linkageUnionFind struct {
	parent []int
	size   []int
	// nextLabel is the id for the next merged cluster, starting at n.
	nextLabel int
}

func newLinkageUnionFind(n int) *linkageUnionFind {
	total := 2*n - 1
	if total < 1 {
		total = 1
	}
	parent := make([]int, total)
	size := make([]int, total)
	for i := range parent {
		parent[i] = -1 // -1 means "is a root"
	}
	for i := 0; i < n; i++ {
		size[i] = 1
	}
	return &linkageUnionFind{parent: parent, size: size, nextLabel: n}
}

// find returns the root of the set containing x, with path compression.
func (uf *linkageUnionFind) find(x int) int {
	root := x
	for uf.parent[root] != -1 {
		root = uf.parent[root]
	}
	for uf.parent[x] != -1 {
		x, uf.parent[x] = uf.parent[x], root
	}
	return root
}

// merge joins the sets rooted at x and y under the next cluster id and
// returns the merged observation count. Both x and y must be roots.
func (uf *linkageUnionFind) merge(x, y int) int {
	n := uf.size[x] + uf.size[y]
	uf.size[uf.nextLabel] = n
	uf.parent[x] = uf.nextLabel
	uf.parent[y] = uf.nextLabel
	uf.nextLabel++
	return n
}
