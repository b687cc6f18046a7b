package combin

import "testing"

func TestTrinomialClosedForm(t *testing.T) {
	tbl := NewTable(25, 6)

	// C(25; 3, 3, 19) = C(25,3) * C(22,3) = 2300 * 1540.
	want := int64(3_542_000)
	if got := tbl.Value(25, 3, 3); got != want {
		t.Errorf("Value(25,3,3) = %d, want %d", got, want)
	}
}

func TestTrinomialMatchesPascalRecurrence(t *testing.T) {
	tbl := NewTable(25, 5)
	ref := pascalTrinomials(25, 5)
	for n := 0; n <= 25; n++ {
		for k1 := 0; k1 <= 5; k1++ {
			for k2 := 0; k2 <= 5; k2++ {
				if k1+k2 > n {
					continue
				}
				want := ref[n][k1][k2]
				if got := tbl.Value(n, k1, k2); got != want {
					t.Errorf("Value(%d,%d,%d) = %d, want %d", n, k1, k2, got, want)
				}
			}
		}
	}
}

// pascalTrinomials fills a reference table from the three-term Pascal
// recurrence, independent of the closed form backing the real table.
func pascalTrinomials(maxN, maxK int) [][][]int64 {
	at := func(t [][][]int64, n, k1, k2 int) int64 {
		if k1 < 0 || k2 < 0 || k1 > maxK || k2 > maxK || k1+k2 > n {
			return 0
		}
		return t[n][k1][k2]
	}
	out := make([][][]int64, maxN+1)
	for n := 0; n <= maxN; n++ {
		out[n] = make([][]int64, maxK+1)
		for k1 := 0; k1 <= maxK; k1++ {
			out[n][k1] = make([]int64, maxK+1)
			for k2 := 0; k2 <= maxK; k2++ {
				switch {
				case k1+k2 > n:
					// impossible, stays 0
				case n == 0:
					out[n][k1][k2] = 1
				default:
					out[n][k1][k2] = at(out, n-1, k1-1, k2) +
						at(out, n-1, k1, k2-1) +
						at(out, n-1, k1, k2)
				}
			}
		}
	}
	return out
}

func TestTrinomialOutOfBounds(t *testing.T) {
	tbl := NewTable(10, 3)
	if got := tbl.Value(5, 3, 3); got != 0 {
		t.Errorf("Value(5,3,3) with k1+k2>n expected 0, got %d", got)
	}
	if got := tbl.Value(-1, 0, 0); got != 0 {
		t.Errorf("Value(-1,0,0) = %d, want 0", got)
	}
	if got := tbl.Value(100, 0, 0); got != 0 {
		t.Errorf("Value(100,0,0) = %d, want 0", got)
	}
}
