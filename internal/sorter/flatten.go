package sorter

// flatten walks the sorted forest depth-first and emits the target
// permutation as original listing positions: each node's origin, then its
// children, then for a folder its end marker. The output mirrors the flat
// bracket encoding of the input, in the new order.
func flatten(nodes []*node) []int {
	var target []int
	var walk func(nodes []*node)
	walk = func(nodes []*node) {
		for _, n := range nodes {
			target = append(target, n.origin)
			if n.isFolder() {
				walk(n.children)
				target = append(target, n.end)
			}
		}
	}
	walk(nodes)
	return target
}
