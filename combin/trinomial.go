// Package combin precomputes the trinomial coefficients the indexer needs
// to rank and unrank two-colour placements on the 25-square board.
package combin

import (
	"gonum.org/v1/gonum/stat/combin"
)

// Table holds C(n; k1, k2, n-k1-k2) for n in [0, maxN] and k1, k2 in
// [0, maxK], precomputed once at construction. Arguments outside those
// bounds, negative, or with k1+k2 > n yield 0, so ranking code can probe
// one-past-the-edge cases without guards.
type Table struct {
	maxN, maxK int
	values     []int64 // [n][k1][k2], row-major
}

// NewTable builds a trinomial table large enough for boards of up to maxN
// squares and per-colour counts of up to maxK.
func NewTable(maxN, maxK int) *Table {
	t := &Table{
		maxN:   maxN,
		maxK:   maxK,
		values: make([]int64, (maxN+1)*(maxK+1)*(maxK+1)),
	}
	for n := 0; n <= maxN; n++ {
		for k1 := 0; k1 <= maxK && k1 <= n; k1++ {
			for k2 := 0; k2 <= maxK && k1+k2 <= n; k2++ {
				// C(n; k1, k2, n-k1-k2) = C(n, k1) * C(n-k1, k2).
				v := combin.Binomial(n, k1) * combin.Binomial(n-k1, k2)
				t.values[t.index(n, k1, k2)] = int64(v)
			}
		}
	}
	return t
}

func (t *Table) index(n, k1, k2 int) int {
	return (n*(t.maxK+1)+k1)*(t.maxK+1) + k2
}

// Value returns C(n; k1, k2, n-k1-k2), or 0 if the arguments fall outside
// the table's bounds or k1+k2 > n.
func (t *Table) Value(n, k1, k2 int) int64 {
	if n < 0 || n > t.maxN || k1 < 0 || k1 > t.maxK || k2 < 0 || k2 > t.maxK {
		return 0
	}
	if k1+k2 > n {
		return 0
	}
	return t.values[t.index(n, k1, k2)]
}
