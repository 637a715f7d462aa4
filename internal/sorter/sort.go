package sorter

import "sort"

// sortForest sorts every sibling list in the tree by name, byte-wise and
// case-sensitive. The sort is stable so entries with equal names keep
// their original relative order, which makes the resulting permutation
// deterministic and the whole pass idempotent.
func sortForest(nodes []*node) {
	for _, n := range nodes {
		if len(n.children) > 0 {
			sortForest(n.children)
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].name < nodes[j].name
	})
}
