// Package sorter reorders a playlist container alphabetically at every
// folder level and plans the minimal single-item moves that realize the
// new order against the live container.
package sorter

import (
	"errors"
	"fmt"

	"github.com/llehouerou/crate/internal/container"
)

// ErrUnbalanced reports malformed folder markers in the container listing:
// a folder end with no open folder, or a listing that ends inside a folder.
var ErrUnbalanced = errors.New("unbalanced folder markers")

// node is one sortable unit: a playlist leaf or a whole folder span.
// A folder sorts by its own name; its children sort independently.
type node struct {
	origin   int // listing position of the playlist or folder start marker
	end      int // listing position of the folder end marker, -1 for leaves
	name     string
	children []*node
}

func (n *node) isFolder() bool {
	return n.end >= 0
}

// buildForest scans the listing once and reconstructs the folder tree.
// Open folders are tracked on an explicit stack; the current attachment
// point is the stack top (or the root level when the stack is empty).
// Placeholders produce no node and do not disturb sibling order.
func buildForest(c container.Container) ([]*node, error) {
	var roots []*node
	var open []*node

	attach := func(n *node) {
		if len(open) == 0 {
			roots = append(roots, n)
			return
		}
		top := open[len(open)-1]
		top.children = append(top.children, n)
	}

	count := c.Count()
	for i := 0; i < count; i++ {
		switch c.EntryKind(i) {
		case container.KindItem:
			attach(&node{origin: i, end: -1, name: c.EntryName(i)})

		case container.KindFolderStart:
			n := &node{origin: i, end: -1, name: c.EntryName(i)}
			attach(n)
			open = append(open, n)

		case container.KindFolderEnd:
			if len(open) == 0 {
				return nil, fmt.Errorf("folder end at position %d: %w", i, ErrUnbalanced)
			}
			top := open[len(open)-1]
			top.end = i
			open = open[:len(open)-1]

		case container.KindPlaceholder:
			// Skipped: placeholders never sort and never move.
		}
	}

	if len(open) > 0 {
		return nil, fmt.Errorf("%d folders left open at end of listing: %w", len(open), ErrUnbalanced)
	}
	return roots, nil
}
