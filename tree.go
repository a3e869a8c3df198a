package hcluster

import "fmt"

// TreeNode is one node of the binary merge tree built from a linkage matrix.
// Leaves carry an observation index in ID and have nil children; internal
// nodes carry the cluster id (n + row), the merge distance, and the total
// observation count of their subtree.
type TreeNode struct {
	ID    int
	Dist  float64
	Count int
	Left  *TreeNode
	Right *TreeNode
}

// IsLeaf reports whether the node is an original observation.
func (t *TreeNode) IsLeaf() bool {
	return t.Left == nil
}

// PreOrder returns the left-to-right sequence of leaf observation indices
// under t. It works identically on the root or any subtree node, is
// repeatable, and uses an explicit stack so deep trees cannot overflow the
// goroutine stack.
func (t *TreeNode) PreOrder() []int {
	out := make([]int, 0, t.Count)
	stack := []*TreeNode{t}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if nd.IsLeaf() {
			out = append(out, nd.ID)
			continue
		}
		stack = append(stack, nd.Right, nd.Left)
	}
	return out
}

// ToTree converts a linkage matrix into its binary merge tree and returns
// the root (node id 2n-2). Nodes are built bottom-up in id order into an
// arena, so every referenced child exists before its parent.
func ToTree(Z [][4]float64) (*TreeNode, error) {
	if err := ValidateLinkage(Z); err != nil {
		return nil, err
	}
	n := len(Z) + 1
	nodes := make([]TreeNode, 2*n-1)
	for i := 0; i < n; i++ {
		nodes[i] = TreeNode{ID: i, Count: 1}
	}
	for i, row := range Z {
		left := &nodes[int(row[0])]
		right := &nodes[int(row[1])]
		if got := left.Count + right.Count; got != int(row[3]) {
			return nil, fmt.Errorf("%w: linkage row %d count %g does not match subtree sizes %d", ErrValidation, i, row[3], got)
		}
		nodes[n+i] = TreeNode{
			ID:    n + i,
			Dist:  row[2],
			Count: left.Count + right.Count,
			Left:  left,
			Right: right,
		}
	}
	return &nodes[2*n-2], nil
}

// LeavesList returns the observation indices in the left-to-right order the
// tree's leaves would be plotted in: the pre-order of the root.
func LeavesList(Z [][4]float64) ([]int, error) {
	root, err := ToTree(Z)
	if err != nil {
		return nil, err
	}
	return root.PreOrder(), nil
}
