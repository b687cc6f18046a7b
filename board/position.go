package board

import "strings"

// Position is the atom the tablebase indexes: a pawn count bucket, the
// occupancy layout within that bucket, and a king placement consistent
// with the layout.
type Position struct {
	Pawns  PawnCount
	Layout TeamLayout
	Kings  KingPos
}

// Invert returns the position as seen after a 180-degree flip with sides
// swapped, so that the side to move becomes side 0.
func (p Position) Invert() Position {
	return Position{
		Pawns:  p.Pawns.Invert(),
		Layout: p.Layout.Invert(),
		Kings:  p.Kings.Invert(),
	}
}

// Valid checks the structural invariants: disjoint occupancy, popcounts
// matching the pawn counts, and legal king squares.
func (p Position) Valid() bool {
	if p.Layout.Pieces0&p.Layout.Pieces1 != 0 {
		return false
	}
	if p.Layout.PopCount0() != p.Pawns.Count0+1 {
		return false
	}
	if p.Layout.PopCount1() != p.Pawns.Count1+1 {
		return false
	}
	return p.Kings.Valid(p.Layout)
}

// String renders the board with side 1 at the top: kings as O/X, pawns as
// o/x, empty squares as dots.
func (p Position) String() string {
	var b strings.Builder
	b.WriteString("----- x side\n")
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			i := 24 - 5*y - x
			switch {
			case p.Kings.King0 == i:
				b.WriteByte('O')
			case p.Kings.King1 == i:
				b.WriteByte('X')
			case p.Layout.Pieces0&(1<<uint(i)) != 0:
				b.WriteByte('o')
			case p.Layout.Pieces1&(1<<uint(i)) != 0:
				b.WriteByte('x')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	b.WriteString("----- o side")
	return b.String()
}
