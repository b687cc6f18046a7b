package solver

import (
	"math/bits"

	"github.com/LHolten/onitama-solver/board"
	"github.com/LHolten/onitama-solver/combin"
)

// Indexer is the perfect-hash bijection between Positions restricted to a
// single PawnCount and dense integers, used to address a Table's flat
// []Word slice. It is built once per PawnCount and is immutable afterward.
type Indexer struct {
	counts board.PawnCount
	tri    *combin.Table

	k1, k2     int // side0/side1 piece counts including the king
	numLayouts int64
	chunkSize  int // (count0+1)*(count1+1), an upper bound on king slots per layout
}

// trinomialTable is sized for the maximum board supported by this build:
// 25 squares, up to 6 pieces per side (N up to 5, plus the king).
var trinomialTable = combin.NewTable(board.NumSquares, 6)

// NewIndexer builds the Indexer for one PawnCount bucket.
func NewIndexer(counts board.PawnCount) *Indexer {
	k1, k2 := counts.Count0+1, counts.Count1+1
	return &Indexer{
		counts:     counts,
		tri:        trinomialTable,
		k1:         k1,
		k2:         k2,
		numLayouts: trinomialTable.Value(board.NumSquares, k1, k2),
		chunkSize:  k1 * k2,
	}
}

// NumLayouts is the number of distinct team layouts in this bucket.
func (ix *Indexer) NumLayouts() int64 { return ix.numLayouts }

// ChunkSize upper-bounds the number of king slots per layout.
func (ix *Indexer) ChunkSize() int { return ix.chunkSize }

// RankLayout returns the dense rank, in [0, NumLayouts()), of a team
// layout. It scans the occupied squares from low to high, keeping running
// piece counts that include the square just reached: a colour-0 piece at
// square i contributes C(i; ones, twos), a colour-1 piece contributes
// C(i; ones, twos) + C(i; ones-1, twos).
func (ix *Indexer) RankLayout(l board.TeamLayout) int64 {
	var rank int64
	ones, twos := 0, 0
	occ := l.Occupied()
	for occ != 0 {
		i := bits.TrailingZeros32(occ)
		occ &= occ - 1
		if l.Pieces0&(1<<uint(i)) != 0 {
			ones++
			rank += ix.tri.Value(i, ones, twos)
		} else {
			twos++
			rank += ix.tri.Value(i, ones, twos) + ix.tri.Value(i, ones-1, twos)
		}
	}
	return rank
}

// UnrankLayout is the inverse of RankLayout. It walks the squares from
// high to low, at each square comparing the remaining rank against the
// number of completions that leave the square blank or give it to
// colour 0.
func (ix *Indexer) UnrankLayout(rank int64) board.TeamLayout {
	ones, twos := ix.k1, ix.k2
	var l board.TeamLayout
	for i := board.NumSquares - 1; i >= 0; i-- {
		blank := ix.tri.Value(i, ones, twos)
		zero := ix.tri.Value(i, ones-1, twos)
		switch {
		case rank >= blank+zero:
			twos--
			l.Pieces1 |= 1 << uint(i)
			rank -= blank + zero
		case rank >= blank:
			ones--
			l.Pieces0 |= 1 << uint(i)
			rank -= blank
		}
	}
	return l
}

// LayoutIter enumerates every layout of a bucket exactly once, using the
// next-configuration recurrence on the two bitboards. Layouts come out in
// increasing RankLayout order, starting from rank 0.
type LayoutIter struct {
	next board.TeamLayout
	left int64
}

// Layouts returns an iterator positioned at the bucket's first
// configuration: all side-1 pieces packed lowest, side-0 pieces directly
// above them.
func (ix *Indexer) Layouts() LayoutIter {
	return LayoutIter{
		next: board.TeamLayout{
			Pieces0: (1<<uint(ix.k1) - 1) << uint(ix.k2),
			Pieces1: 1<<uint(ix.k2) - 1,
		},
		left: ix.numLayouts,
	}
}

// Next returns the following layout, or ok=false once the bucket is
// exhausted.
func (it *LayoutIter) Next() (l board.TeamLayout, ok bool) {
	if it.left == 0 {
		return board.TeamLayout{}, false
	}
	it.left--
	l = it.next
	it.next = nextLayout(l)
	return l, true
}

// nextLayout advances the two-colour configuration one step. The pivot is
// the lowest position a run of pieces can advance into; everything below
// it is re-packed to the lowest available squares, twos below ones,
// preserving both popcounts. The step after the final configuration is
// never used: LayoutIter stops after NumLayouts items.
func nextLayout(l board.TeamLayout) board.TeamLayout {
	ones, twos := l.Pieces0, l.Pieces1

	l1 := ones & -ones
	l2 := twos & -twos
	p1 := (ones + l1) &^ ones
	p2 := (twos + l2) &^ twos

	pivot := p1
	if l2 < l1 || p1&twos != 0 {
		pivot = p2
	}
	swap := pivot
	if l2 < l1 || pivot&ones != 0 {
		swap |= l2
	} else {
		swap |= l1
	}

	if swap&twos != 0 {
		twos ^= swap
	}
	if swap&ones != 0 {
		ones ^= swap
	}

	mask := pivot - 1
	twosDiff := uint(bits.OnesCount32(twos & mask))
	onesDiff := uint(bits.OnesCount32(ones & mask))

	return board.TeamLayout{
		Pieces0: (ones &^ mask) | (1<<onesDiff-1)<<twosDiff,
		Pieces1: (twos &^ mask) | (1<<twosDiff - 1),
	}
}

// RankKing0 ranks king0 within pieces0\{Temple0} by the count of set bits
// strictly below it.
func RankKing0(l board.TeamLayout, king0 int) int {
	mask := l.Pieces0 &^ (1 << uint(board.Temple0))
	return bits.OnesCount32(mask & (1<<uint(king0) - 1))
}

// RankKing1 mirrors RankKing0 for side 1's temple exclusion.
func RankKing1(l board.TeamLayout, king1 int) int {
	mask := l.Pieces1 &^ (1 << uint(board.Temple1))
	return bits.OnesCount32(mask & (1<<uint(king1) - 1))
}

// UnrankKing0 is the inverse of RankKing0: the rank-th set bit of
// pieces0\{Temple0}.
func UnrankKing0(l board.TeamLayout, rank int) int {
	return nthSetBit(l.Pieces0&^(1<<uint(board.Temple0)), rank)
}

// UnrankKing1 is the inverse of RankKing1.
func UnrankKing1(l board.TeamLayout, rank int) int {
	return nthSetBit(l.Pieces1&^(1<<uint(board.Temple1)), rank)
}

func nthSetBit(mask uint32, rank int) int {
	for i := 0; i < board.NumSquares; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		if rank == 0 {
			return i
		}
		rank--
	}
	assertf(false, "nthSetBit: rank out of range for mask %#x", mask)
	return -1
}

// NumKingSlots0 is the number of valid king0 choices for layout l.
func NumKingSlots0(l board.TeamLayout) int {
	return bits.OnesCount32(l.Pieces0 &^ (1 << uint(board.Temple0)))
}

// NumKingSlots1 is the number of valid king1 choices for layout l.
func NumKingSlots1(l board.TeamLayout) int {
	return bits.OnesCount32(l.Pieces1 &^ (1 << uint(board.Temple1)))
}

// KingSlotIndex returns the position within a layout's king-slot range
// for a given (king0, king1) pair, king0-rank major.
func KingSlotIndex(l board.TeamLayout, king0, king1 int) int {
	return RankKing0(l, king0)*NumKingSlots1(l) + RankKing1(l, king1)
}
