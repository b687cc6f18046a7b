package card

import "math/bits"

// Set is the five canonical cards in play for a build, in ascending
// card-ID order. That order fixes which of MaskIter's five 30-bit masks
// belongs to which card: Set.IDs[i] is the side card selected by
// MaskIter()[i].
type Set struct {
	IDs  [5]int
	Geom [5]Geometry
}

// MustParseSet validates a 5-card bitmask (bit i set means canonical card
// i is in play) and builds the corresponding Set, panicking on a
// malformed mask. It exists so a CLI driver can fail fast on a bad -cards
// flag instead of the solver panicking deep inside the build.
func MustParseSet(mask uint8) Set {
	if bits.OnesCount8(mask) != 5 {
		panic("card.MustParseSet: mask must select exactly 5 cards")
	}
	var s Set
	i := 0
	for id := 0; id < NumCards; id++ {
		if mask&(1<<uint(id)) != 0 {
			s.IDs[i] = id
			s.Geom[i] = Lookup(id)
			i++
		}
	}
	return s
}

// MaskLookup precomputes the direction-to-arrangement association the
// solver's passes consume. directions is the union of every card's
// Forward offset bits; lookup[offset] is the OR of MaskIter()[i] over the
// cards i whose Forward bitmap contains that offset — the arrangements in
// which a move along this direction leaves that card as the side card.
// Every MaskIter mask is Invert-invariant, so lookup[offset] serves both
// the forward (accumulate) and retrograde (spread) passes unchanged.
func (s Set) MaskLookup() (directions uint32, lookup [25]uint32) {
	masks := MaskIter()
	for i, g := range s.Geom {
		directions |= g.Forward
		fwd := g.Forward
		for fwd != 0 {
			offset := bits.TrailingZeros32(fwd)
			fwd &= fwd - 1
			lookup[offset] |= masks[i]
		}
	}
	return directions, lookup
}
