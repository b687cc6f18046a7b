package solver

import (
	"math/bits"

	"github.com/LHolten/onitama-solver/board"
)

// Table holds one flat array of atomic Words per PawnCount bucket, shaped
// [numLayouts][chunkSize] contiguous in that order. chunkSize upper-bounds
// the number of king slots a layout can have; layouts with fewer valid
// king0/king1 choices than (count0+1)*(count1+1) simply leave the tail of
// their row at zero, untouched.
//
// The word at (layout, kings) packs the verdict of that position for the
// side owning Pieces1, which is the side to move there; the 30 arrangement
// bits are numbered as the opponent sees the deal, so a reader working
// from the mover's own perspective applies card.Invert first. Verdicts
// for the dual position — same layout, side 0 to move — live in the
// transposed bucket's table at the 180-degree inverted layout and kings.
type Table struct {
	counts  board.PawnCount
	indexer *Indexer
	words   []Word
}

// newTable allocates a zeroed Table for the given PawnCount.
func newTable(counts board.PawnCount) *Table {
	ix := NewIndexer(counts)
	return &Table{
		counts:  counts,
		indexer: ix,
		words:   make([]Word, ix.NumLayouts()*int64(ix.ChunkSize())),
	}
}

// Indexer exposes the table's layout indexer.
func (t *Table) Indexer() *Indexer { return t.indexer }

// wordIndex computes the flat offset for a layout rank and king-slot index.
func (t *Table) wordIndex(layoutRank int64, kingSlot int) int64 {
	return layoutRank*int64(t.indexer.ChunkSize()) + int64(kingSlot)
}

// At returns the Word for a given layout rank and king-slot index.
func (t *Table) At(layoutRank int64, kingSlot int) *Word {
	return &t.words[t.wordIndex(layoutRank, kingSlot)]
}

// Row returns the slice of Words belonging to one layout, sized to that
// layout's actual king-slot count (not the padded chunkSize).
func (t *Table) Row(layoutRank int64, l board.TeamLayout) []Word {
	start := t.wordIndex(layoutRank, 0)
	n := NumKingSlots0(l) * NumKingSlots1(l)
	return t.words[start : start+int64(n)]
}

// RowFor is Row with the layout rank computed on the spot.
func (t *Table) RowFor(l board.TeamLayout) []Word {
	return t.Row(t.indexer.RankLayout(l), l)
}

// CountWins sums the set arrangement bits across the whole table. The
// zero-padded tails of short rows are never written, so scanning the raw
// slice is safe.
func (t *Table) CountWins() int64 {
	var total int64
	for i := range t.words {
		total += int64(bits.OnesCount32(t.words[i].Load() & ArrangementMask))
	}
	return total
}

// AllTables owns one Table per PawnCount with both counts in [0, MaxN].
type AllTables struct {
	MaxN   int
	tables [][]*Table // [count0][count1]
}

// NewAllTables allocates every bucket for piece counts up to maxN.
func NewAllTables(maxN int) *AllTables {
	at := &AllTables{
		MaxN:   maxN,
		tables: make([][]*Table, maxN+1),
	}
	for c0 := 0; c0 <= maxN; c0++ {
		at.tables[c0] = make([]*Table, maxN+1)
		for c1 := 0; c1 <= maxN; c1++ {
			at.tables[c0][c1] = newTable(board.PawnCount{Count0: c0, Count1: c1})
		}
	}
	return at
}

// Table returns the bucket for a PawnCount, or nil if either count is
// outside [0, MaxN] (the edge of the piece-count lattice: take_one and
// leave_one neighbours may simply not exist).
func (at *AllTables) Table(pc board.PawnCount) *Table {
	if pc.Count0 < 0 || pc.Count0 > at.MaxN || pc.Count1 < 0 || pc.Count1 > at.MaxN {
		return nil
	}
	return at.tables[pc.Count0][pc.Count1]
}

// CountWins sums the set arrangement bits across every bucket.
func (at *AllTables) CountWins() int64 {
	var total int64
	for _, row := range at.tables {
		for _, t := range row {
			total += t.CountWins()
		}
	}
	return total
}

// Probe is a read-only accessor over a finished build: given a full
// Position, it returns the raw word (see Table for its bit semantics) and
// whether it is resolved. It does not mutate anything and is safe to call
// concurrently with other probes once the build has returned.
func (at *AllTables) Probe(pos board.Position) (word uint32, resolved bool) {
	assertf(pos.Valid(), "Probe: invalid position %+v", pos)
	t := at.Table(pos.Pawns)
	assertf(t != nil, "Probe: no table for pawn count %+v", pos.Pawns)
	rank := t.indexer.RankLayout(pos.Layout)
	slot := KingSlotIndex(pos.Layout, pos.Kings.King0, pos.Kings.King1)
	w := t.At(rank, slot)
	v := w.Load()
	return v, v&Resolved != 0
}
