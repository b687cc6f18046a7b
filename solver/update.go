// update.go runs one layout through the accumulate and spread passes:
// fetch the layout's own wins, derive its losses, push them into every
// predecessor.

package solver

import (
	"math/bits"

	"github.com/LHolten/onitama-solver/board"
	"github.com/LHolten/onitama-solver/card"
)

// localMem is the reusable per-worker scratch one layout update needs:
// the win words fetched for the layout (later reused as the expanded
// loss buffer during spread), the not-lost/lost status accumulator, and
// the king-pair to slot-index lookup. Buffers are sized to the bucket's
// chunk size once and re-sliced per layout.
type localMem struct {
	wins       []uint32
	status     []uint32
	kingLookup [board.NumSquares * board.NumSquares]uint8
}

// bucketUpdate carries the immutable inputs of one bucket's passes: the
// card set with its direction-to-arrangement lookup, the bucket's own
// table, the transposed bucket's table (where this bucket's positions
// keep their own win words), and the capture/uncapture neighbours, which
// are nil at the edge of the piece-count lattice. goUp flips the spread
// destination from the current bucket to leaveOne for the final pass.
type bucketUpdate struct {
	set        card.Set
	directions uint32
	maskLookup [25]uint32
	current    *Table
	invCurrent *Table
	takeOne    *Table
	leaveOne   *Table
	goUp       bool
}

// updateLayout runs the accumulate and spread passes for one layout and
// reports whether any spread write set a previously clear bit. Layouts
// whose every king slot is already resolved are skipped, except during
// the go-up pass, which must propagate even settled losses upward.
func (u *bucketUpdate) updateLayout(mem *localMem, layout board.TeamLayout) bool {
	n0, n1 := NumKingSlots0(layout), NumKingSlots1(layout)
	n := n0 * n1
	if n == 0 {
		return false
	}
	invLayout := layout.Invert()
	invRow := u.invCurrent.RowFor(invLayout)

	wins := mem.wins[:n]
	if u.fetchWins(wins, invRow, n0, n1) && !u.goUp {
		return false
	}
	u.computeLost(mem, layout, invRow, n0, n1)
	status := mem.status[:n]

	// The losses just computed are wins for every side-1 predecessor.
	// Expanding status&mask lifts each loss from "this card just became
	// the side card" into the predecessor arrangements where the mover
	// held it; the bits land in the predecessor's own stored frame, so
	// no further inversion is needed.
	progress := false
	dirs := u.directions
	for dirs != 0 {
		offset := bits.TrailingZeros32(dirs)
		dirs &= dirs - 1
		toMask := card.Translate(layout.Pieces1, offset) &^ layout.Pieces0 &^ layout.Pieces1
		if toMask == 0 {
			continue
		}
		mask := u.maskLookup[offset]
		for i := range status {
			wins[i] = card.Expand(status[i] & mask)
		}
		for toMask != 0 {
			to := bits.TrailingZeros32(toMask)
			toMask &= toMask - 1
			if u.spreadStep(mem, layout, to+12-offset, to) {
				progress = true
			}
		}
	}
	return progress
}

// fetchWins loads the layout's own win words from the transposed bucket's
// table, where they are stored at the 180-degree inverted layout and
// kings. It reports whether every slot already carries the Resolved bit.
func (u *bucketUpdate) fetchWins(wins []uint32, invRow []Word, n0, n1 int) bool {
	allResolved := true
	for r0 := 0; r0 < n0; r0++ {
		for r1 := 0; r1 < n1; r1++ {
			w := invRow[(n1-1-r1)*n0+(n0-1-r0)].Load()
			wins[r0*n1+r1] = w
			if w&Resolved == 0 {
				allResolved = false
			}
		}
	}
	return allResolved
}

// computeLost fills mem.status with, per king slot, the arrangements
// under which the side to move from this layout's side-0 perspective is
// lost: every move reaches a position already won for its mover. It
// expects mem.wins to hold the words fetchWins loaded, and marks any slot
// whose 30 bits come out fully determined as resolved.
func (u *bucketUpdate) computeLost(mem *localMem, layout board.TeamLayout, invRow []Word, n0, n1 int) {
	n := n0 * n1
	status := mem.status[:n]
	for i := range status {
		status[i] = 0
	}
	for r0 := 0; r0 < n0; r0++ {
		king0 := UnrankKing0(layout, r0)
		for r1 := 0; r1 < n1; r1++ {
			king1 := UnrankKing1(layout, r1)
			mem.kingLookup[king0*board.NumSquares+king1] = uint8(r0*n1 + r1)
		}
	}

	dirs := u.directions
	for dirs != 0 {
		offset := bits.TrailingZeros32(dirs)
		dirs &= dirs - 1
		toMask := card.Translate(layout.Pieces0, offset) &^ layout.Pieces0
		if toMask == 0 {
			continue
		}
		mask := u.maskLookup[offset]
		for toMask != 0 {
			to := bits.TrailingZeros32(toMask)
			toMask &= toMask - 1
			u.accumStep(mem, layout, to+12-offset, to, mask)
		}
	}

	// status now carries, per played card's side-card block, the moves
	// that keep the position alive. Expanding in the inverted frame marks
	// every arrangement whose hand contains such a card; negating leaves
	// only the losses.
	for i := range status {
		status[i] = ^card.Invert(card.Expand(card.Invert(status[i]))) & card.ArrangementMask
	}

	wins := mem.wins[:n]
	for r0 := 0; r0 < n0; r0++ {
		for r1 := 0; r1 < n1; r1++ {
			i := r0*n1 + r1
			w := card.Invert(wins[i] & card.ArrangementMask)
			// A won position is never lost, even with no moves left.
			status[i] &^= w
			if w|status[i] == card.ArrangementMask {
				invRow[(n1-1-r1)*n0+(n0-1-r0)].MarkResolved()
			}
		}
	}
}

// finalizeLayout recomputes one layout's win/loss split against the
// finished tables, marks any word whose verdict completed only after its
// bucket's own fixed point as resolved, and returns the number of
// arrangements left neither won nor lost: draws by infinite play.
func (u *bucketUpdate) finalizeLayout(mem *localMem, layout board.TeamLayout) int64 {
	n0, n1 := NumKingSlots0(layout), NumKingSlots1(layout)
	n := n0 * n1
	if n == 0 {
		return 0
	}
	invLayout := layout.Invert()
	invRow := u.invCurrent.RowFor(invLayout)

	wins := mem.wins[:n]
	u.fetchWins(wins, invRow, n0, n1)
	u.computeLost(mem, layout, invRow, n0, n1)

	var unresolved int64
	status := mem.status[:n]
	for i := range status {
		w := card.Invert(wins[i] & card.ArrangementMask)
		unresolved += int64(bits.OnesCount32(card.ArrangementMask &^ (w | status[i])))
	}
	return unresolved
}
