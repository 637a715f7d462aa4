package sorter

// Move relocates the element currently at From so it ends up at To, with
// remove-then-reinsert semantics: everything between the two slots shifts
// by one.
type Move struct {
	From int
	To   int
}

// planMoves converts the target permutation into the sequence of moves
// that realizes it. It fills destination slots left to right; a slot whose
// item is already in place costs no move.
//
// The container physically shifts elements on every move, so positions
// recorded against the original listing go stale as soon as the first
// move lands. After emitting a move the remaining target references are
// corrected in place: every reference below the moved source shifted up
// by one when the source was pulled out past it.
func planMoves(target []int) []Move {
	working := make([]int, len(target))
	copy(working, target)

	var moves []Move
	for i := range working {
		if working[i] == i {
			continue
		}
		src := working[i]
		moves = append(moves, Move{From: src, To: i})
		for j := i; j < len(working); j++ {
			if working[j] < src {
				working[j]++
			}
		}
	}
	return moves
}
