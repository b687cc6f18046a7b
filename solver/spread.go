package solver

import (
	"github.com/LHolten/onitama-solver/board"
)

// spreadStep pushes the layout's expanded loss bits one retrograde side-1
// move backward. The step is reversed: to is the empty square the
// predecessor's piece stood on, from the square it occupies now. Every
// predecessor king assignment maps onto a current king slot whose loss
// bits, already expanded into predecessor terms in mem.wins, are OR-ed
// into the predecessor's word. Reports whether any write set a
// previously clear bit.
//
// With goUp set the step also undoes a capture: a side-0 pawn reappears
// on from and the write routes into the leaveOne bucket. A predecessor
// king0 on the reinstated pawn's square did not exist before the capture
// and is skipped.
func (u *bucketUpdate) spreadStep(mem *localMem, layout board.TeamLayout, from, to int) bool {
	pred := board.TeamLayout{
		Pieces0: layout.Pieces0,
		Pieces1: layout.Pieces1 ^ 1<<uint(to) ^ 1<<uint(from),
	}
	tbl := u.current
	if u.goUp {
		if u.leaveOne == nil {
			// there is no larger bucket, so no progress
			return false
		}
		tbl = u.leaveOne
		pred.Pieces0 |= 1 << uint(from)
	}
	row := tbl.RowFor(pred)
	m0, m1 := NumKingSlots0(pred), NumKingSlots1(pred)
	wins := mem.wins
	progress := false
	for p0 := 0; p0 < m0; p0++ {
		king0 := UnrankKing0(pred, p0)
		if king0 == from {
			// this king was added by the uncapture, so it had no
			// predecessor here
			continue
		}
		base := king0 * board.NumSquares
		for p1 := 0; p1 < m1; p1++ {
			king1 := UnrankKing1(pred, p1)
			curKing1 := king1
			if king1 == to {
				curKing1 = from
				if curKing1 == board.Temple1 {
					continue
				}
			}
			v := wins[mem.kingLookup[base+curKing1]]
			if row[p0*m1+p1].Or(v) {
				progress = true
			}
		}
	}
	return progress
}
