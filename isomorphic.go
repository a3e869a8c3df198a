package hcluster

// IsIsomorphic reports whether two flat cluster labelings are equivalent up
// to a relabeling bijection: there is a one-to-one mapping between a's
// labels and b's labels consistent at every index. Empty labelings are
// isomorphic; differing lengths are not. O(n) time, one map entry per
// distinct label.
func IsIsomorphic(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	ab := make(map[int]int)
	ba := make(map[int]int)
	for i := range a {
		if mapped, ok := ab[a[i]]; ok {
			if mapped != b[i] {
				return false
			}
		} else {
			ab[a[i]] = b[i]
		}
		if mapped, ok := ba[b[i]]; ok {
			if mapped != a[i] {
				return false
			}
		} else {
			ba[b[i]] = a[i]
		}
	}
	return true
}
