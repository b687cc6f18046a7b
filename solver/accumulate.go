package solver

import (
	"github.com/LHolten/onitama-solver/board"
)

// accumStep folds one side-0 move (from -> to) into the layout's status
// buffer: for every king assignment of the successor position it ORs the
// arrangements under which that successor is not already won for its
// mover, restricted to mask (the arrangements where the played card just
// became the side card). A status bit still clear after every move has
// been folded in means the position is lost under that arrangement.
//
// A capture routes the lookup into the takeOne bucket. Capturing the lone
// king is an immediate win, not a successor: the king assignments it
// removes are simply never visited here, and the win itself reaches the
// status post-processing through the easy-win bits of the inverted table.
func (u *bucketUpdate) accumStep(mem *localMem, layout board.TeamLayout, from, to int, mask uint32) {
	succ := board.TeamLayout{
		Pieces0: layout.Pieces0 ^ 1<<uint(from) ^ 1<<uint(to),
		Pieces1: layout.Pieces1 &^ (1 << uint(to)),
	}
	tbl := u.current
	if layout.Pieces1&(1<<uint(to)) != 0 {
		if u.takeOne == nil {
			// only the king is left to take
			return
		}
		tbl = u.takeOne
	}
	row := tbl.RowFor(succ)
	m0, m1 := NumKingSlots0(succ), NumKingSlots1(succ)
	status := mem.status
	for s0 := 0; s0 < m0; s0++ {
		king0 := UnrankKing0(succ, s0)
		oldKing0 := king0
		if king0 == to {
			oldKing0 = from
			if oldKing0 == board.Temple0 {
				// there is no way we came from the temple
				continue
			}
		}
		base := oldKing0 * board.NumSquares
		for s1 := 0; s1 < m1; s1++ {
			king1 := UnrankKing1(succ, s1)
			oldI := mem.kingLookup[base+king1]
			// if the new state is not won, the old state is not lost
			status[oldI] |= ^row[s0*m1+s1].Load() & mask
		}
	}
}
