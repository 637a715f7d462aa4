package sorter

import (
	"fmt"

	"github.com/llehouerou/crate/internal/container"
)

// NotReadyError reports that the container still has unloaded playlists.
// Sorting with partial names would produce a wrong permutation, so the
// pass refuses to plan anything.
type NotReadyError struct {
	Unloaded int
}

func (e NotReadyError) Error() string {
	return fmt.Sprintf("%d playlists not loaded yet", e.Unloaded)
}

// A Plan is the fully computed outcome of one reorder pass. Target holds
// the desired final order as positions in the active view (the listing
// with placeholders excluded); Moves realizes it against a live container.
// Nothing is mutated until Apply is called.
type Plan struct {
	Target []int
	Moves  []Move
}

// InOrder reports whether the container is already sorted.
func (p *Plan) InOrder() bool {
	return len(p.Moves) == 0
}

// Apply issues the planned moves, in order, against m. Moves must be
// applied to the same listing state the plan was computed from; the
// bookkeeping models only the moves the plan itself issues.
func (p *Plan) Apply(m container.Mover) error {
	for _, mv := range p.Moves {
		if err := m.Move(mv.From, mv.To); err != nil {
			return fmt.Errorf("move %d -> %d: %w", mv.From, mv.To, err)
		}
	}
	return nil
}

// PlanReorder computes the reorder for one container snapshot: verify every
// playlist is loaded, rebuild the folder tree, sort every level by name,
// flatten back to a target permutation and convert it to moves. The
// container is only read; no move is issued here.
func PlanReorder(c container.Container) (*Plan, error) {
	count := c.Count()

	unloaded := 0
	for i := 0; i < count; i++ {
		if c.EntryKind(i) == container.KindItem && !c.IsLoaded(i) {
			unloaded++
		}
	}
	if unloaded > 0 {
		return nil, NotReadyError{Unloaded: unloaded}
	}

	forest, err := buildForest(c)
	if err != nil {
		return nil, err
	}
	sortForest(forest)

	target := flatten(forest)

	// Flatten emits original listing positions, but placeholders are
	// absent from the live collection the moves act on. Rank every
	// position by the non-placeholders before it so the permutation is
	// contiguous over the active view.
	rank := make([]int, count)
	active := 0
	for i := 0; i < count; i++ {
		rank[i] = active
		if c.EntryKind(i) != container.KindPlaceholder {
			active++
		}
	}
	if len(target) != active {
		return nil, fmt.Errorf("flattened %d of %d active entries", len(target), active)
	}
	for k, pos := range target {
		target[k] = rank[pos]
	}

	return &Plan{Target: target, Moves: planMoves(target)}, nil
}
