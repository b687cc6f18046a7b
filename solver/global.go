package solver

import (
	"context"

	"github.com/LHolten/onitama-solver/board"
	"github.com/LHolten/onitama-solver/card"
)

// Result summarises a completed build: total wins across every position
// and arrangement, the subset already known after the easy-win seeding
// pass alone, and the count of arrangements that finished neither won nor
// lost (drawn by infinite play).
type Result struct {
	TotalWins  int64
	WinIn1     int64
	Unresolved int64
}

// Solve builds the full tablebase for piece counts up to maxN using the
// five-card set. Buckets converge in increasing piece-total order so that
// capture lookups always address finished buckets and go-up writes always
// land in buckets not yet converged; within one piece total, a bucket and
// its transpose are processed back to back.
func Solve(ctx context.Context, maxN int, set card.Set, workers int) (*AllTables, Result, error) {
	at := NewAllTables(maxN)
	var res Result

	for c0 := 0; c0 <= maxN; c0++ {
		for c1 := 0; c1 <= maxN; c1++ {
			j := NewTableJob(at, set, board.PawnCount{Count0: c0, Count1: c1}, workers)
			if err := j.Seed(ctx); err != nil {
				return at, res, err
			}
		}
	}
	res.WinIn1 = at.CountWins()

	for total := 0; total <= 2*maxN; total++ {
		hi := min(total, maxN)
		for c0 := hi; c0 >= (total+1)/2; c0-- {
			c1 := total - c0
			buckets := []board.PawnCount{{Count0: c0, Count1: c1}}
			if c0 != c1 {
				buckets = append(buckets, board.PawnCount{Count0: c1, Count1: c0})
			}
			for _, pc := range buckets {
				j := NewTableJob(at, set, pc, workers)
				if _, err := j.Converge(ctx); err != nil {
					return at, res, err
				}
				if err := j.GoUp(ctx); err != nil {
					return at, res, err
				}
			}
		}
	}
	res.TotalWins = at.CountWins()

	for c0 := 0; c0 <= maxN; c0++ {
		for c1 := 0; c1 <= maxN; c1++ {
			j := NewTableJob(at, set, board.PawnCount{Count0: c0, Count1: c1}, workers)
			unresolved, err := j.Finalize(ctx)
			if err != nil {
				return at, res, err
			}
			res.Unresolved += unresolved
		}
	}
	return at, res, nil
}
