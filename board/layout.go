package board

import "math/bits"

// NumSquares is the number of cells on the 5x5 board, numbered 0 (side 0's
// home corner) through 24 (side 1's home corner), row-major.
const NumSquares = 25

// Temple0 is the square side 0's king must reach to win; Temple1 mirrors it
// for side 1.
const (
	Temple0 = 22
	Temple1 = 2
)

// TeamLayout gives the full occupancy (king + pawns) of each side as
// bitboards over the 25 squares.
//
// Invariants: Pieces0 & Pieces1 == 0, and popcount(PiecesX) == countX + 1
// for the PawnCount the layout belongs to.
type TeamLayout struct {
	Pieces0, Pieces1 uint32
}

// PopCount0 and PopCount1 report the number of pieces (king included) per
// side.
func (l TeamLayout) PopCount0() int { return bits.OnesCount32(l.Pieces0) }
func (l TeamLayout) PopCount1() int { return bits.OnesCount32(l.Pieces1) }

// reverse25 flips a 25-bit board mask end-for-end: the bit at square i
// moves to square 24-i. Shifting into the high 7 bits of a uint32 before
// reversing all 32 bits lands the result back in [0,24] with no masking
// needed, since the vacated low bits of the shifted operand are zero and
// become the (unused) high bits of the result.
func reverse25(m uint32) uint32 {
	return bits.Reverse32(m << 7)
}

// Invert flips the board 180 degrees and swaps sides, so that the side to
// move becomes side 0 from the new perspective.
func (l TeamLayout) Invert() TeamLayout {
	return TeamLayout{
		Pieces0: reverse25(l.Pieces1),
		Pieces1: reverse25(l.Pieces0),
	}
}

// Occupied returns the union of both sides' pieces.
func (l TeamLayout) Occupied() uint32 {
	return l.Pieces0 | l.Pieces1
}
