// Package solver builds the retrograde tablebase: a perfect-hash indexer,
// flat atomic-word tables, and the accumulate/spread fixed-point loop that
// drives them to quiescence one piece-count bucket at a time.
package solver

import "sync/atomic"

// ArrangementMask covers bits [0,29], one per card arrangement.
const ArrangementMask = 1<<30 - 1

// Resolved is bit 30: set once all 30 arrangement bits of a word have a
// final won/lost verdict. Bit 31 is never set.
const Resolved = 1 << 30

// Word is a lock-free 32-bit bitset: the solver's sole mutation primitive
// is a relaxed fetch-or, since the lattice of values is monotone (bits are
// only ever set, never cleared) and commutative fetch-or needs no stronger
// memory ordering to converge, only to detect when it stops changing
// anything.
type Word struct {
	v atomic.Uint32
}

// Load reads the current value.
func (w *Word) Load() uint32 {
	return w.v.Load()
}

// Or sets every bit in mask and reports whether any of them were previously
// clear (i.e. whether this call made progress).
func (w *Word) Or(mask uint32) (changed bool) {
	if mask == 0 {
		return false
	}
	for {
		old := w.v.Load()
		if old&mask == mask {
			return false
		}
		if w.v.CompareAndSwap(old, old|mask) {
			return true
		}
	}
}

// MarkResolved sets the Resolved bit.
func (w *Word) MarkResolved() {
	w.Or(Resolved)
}

// IsResolved reports whether the Resolved bit is set.
func (w *Word) IsResolved() bool {
	return w.v.Load()&Resolved != 0
}
