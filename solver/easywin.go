package solver

import (
	"github.com/LHolten/onitama-solver/board"
	"github.com/LHolten/onitama-solver/card"
)

// seedEasyWins marks, for every king slot of layout, every arrangement
// under which the side to move has a one-ply win available: a card step
// taking king1 onto the temple square while no friendly piece blocks it,
// or any side-1 piece capturing king0 outright. A qualifying card
// contributes the twelve arrangements in which the mover holds it,
// Expand(Invert(MaskIter()[i])).
func seedEasyWins(t *Table, set card.Set, layout board.TeamLayout) {
	row := t.RowFor(layout)
	n0, n1 := NumKingSlots0(layout), NumKingSlots1(layout)
	masks := card.MaskIter()

	for i, g := range set.Geom {
		win := card.Expand(card.Invert(masks[i]))
		// Side 1 plays the card reversed, so the squares from which it
		// attacks a target are that target's Forward reach.
		var templeFrom uint32
		if layout.Pieces1&(1<<uint(board.Temple1)) == 0 {
			templeFrom = card.TargetMask(board.Temple1, g.Forward)
		}
		for r0 := 0; r0 < n0; r0++ {
			king0 := UnrankKing0(layout, r0)
			kingAttacked := card.TargetMask(king0, g.Forward)&layout.Pieces1 != 0
			for r1 := 0; r1 < n1; r1++ {
				king1 := UnrankKing1(layout, r1)
				if !kingAttacked && templeFrom&(1<<uint(king1)) == 0 {
					continue
				}
				row[r0*n1+r1].Or(win)
			}
		}
	}
}
