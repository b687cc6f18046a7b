package card

import (
	"math/bits"
	"testing"
)

func TestMaskIterSelfInverting(t *testing.T) {
	for i, m := range MaskIter() {
		if got := Invert(m); got != m {
			t.Errorf("MaskIter()[%d] = %#x, Invert() = %#x, want self-inverse", i, m, got)
		}
	}
}

func TestMaskIterPartitionsArrangements(t *testing.T) {
	var union uint32
	masks := MaskIter()
	for i, m := range masks {
		if m&^ArrangementMask != 0 {
			t.Errorf("mask %d has bits outside the 30-bit domain: %#x", i, m)
		}
		if bits.OnesCount32(m) != 6 {
			t.Errorf("mask %d selects %d arrangements, want 6", i, bits.OnesCount32(m))
		}
		for j, other := range masks {
			if i != j && m&other != 0 {
				t.Errorf("mask %d and %d overlap: %#x & %#x", i, j, m, other)
			}
		}
		union |= m
	}
	if union != ArrangementMask {
		t.Errorf("union of MaskIter() masks = %#x, want %#x", union, ArrangementMask)
	}
}

func TestInvertInvolution(t *testing.T) {
	for _, m := range []uint32{0, ArrangementMask, 0x15015, 0x2AAAA} {
		if got := Invert(Invert(m)); got != m {
			t.Errorf("Invert(Invert(%#x)) = %#x, want %#x", m, got, m)
		}
	}
}

func TestExpandIsRotationUnion(t *testing.T) {
	for _, m := range []uint32{1, 0b100000, 0x15015, ArrangementMask} {
		want := rotl30(m, 10) | rotl30(m, 20)
		if got := Expand(m); got != want {
			t.Errorf("Expand(%#x) = %#x, want %#x", m, got, want)
		}
	}
}

func TestExpandedHandMasksCoverTwiceEach(t *testing.T) {
	// Each card sits in the mover's hand in exactly 12 of the 30
	// arrangements, and every arrangement holds exactly two hand cards.
	var total int
	for i, m := range MaskIter() {
		hand := Expand(Invert(m))
		if n := bits.OnesCount32(hand); n != 12 {
			t.Errorf("card %d: Expand(Invert(mask)) covers %d arrangements, want 12", i, n)
		}
		total += bits.OnesCount32(hand)
	}
	if total != 2*NumArrangements {
		t.Errorf("hand masks cover %d arrangement slots, want %d", total, 2*NumArrangements)
	}
}
