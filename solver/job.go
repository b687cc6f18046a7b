// job.go schedules the passes of a single piece-count bucket.

package solver

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/LHolten/onitama-solver/board"
	"github.com/LHolten/onitama-solver/card"
)

// TableJob drives one PawnCount bucket: seeding, the iterate-to-fixpoint
// convergence loop, the final go-up pass into the bucket with one more
// side-0 pawn, and the summary recount. The bucket's layouts are
// enumerated once at construction and fanned out across workers on every
// pass; per-worker scratch comes from a pool so iterations don't
// re-allocate.
type TableJob struct {
	counts  board.PawnCount
	update  bucketUpdate
	layouts []board.TeamLayout
	workers int
	pool    sync.Pool
}

// NewTableJob builds the driver for one bucket. workers caps the number
// of goroutines dispatched per pass; workers<=1 runs every layout on the
// calling goroutine, which is both the single-threaded fallback and the
// deterministic mode used for debugging.
func NewTableJob(at *AllTables, set card.Set, counts board.PawnCount, workers int) *TableJob {
	current := at.Table(counts)
	assertf(current != nil, "TableJob: no table for %+v", counts)
	j := &TableJob{
		counts: counts,
		update: bucketUpdate{
			set:        set,
			current:    current,
			invCurrent: at.Table(counts.Invert()),
			takeOne:    at.Table(board.PawnCount{Count0: counts.Count0, Count1: counts.Count1 - 1}),
			leaveOne:   at.Table(board.PawnCount{Count0: counts.Count0 + 1, Count1: counts.Count1}),
		},
		workers: workers,
	}
	j.update.directions, j.update.maskLookup = set.MaskLookup()

	ix := current.Indexer()
	j.layouts = make([]board.TeamLayout, 0, ix.NumLayouts())
	it := ix.Layouts()
	for {
		l, ok := it.Next()
		if !ok {
			break
		}
		j.layouts = append(j.layouts, l)
	}

	chunk := ix.ChunkSize()
	j.pool.New = func() any {
		return &localMem{
			wins:   make([]uint32, chunk),
			status: make([]uint32, chunk),
		}
	}
	return j
}

// Seed marks every one-ply win in the bucket. Every bucket of a build
// must be seeded before any bucket converges: the win subtraction in the
// accumulate pass reads these bits through the transposed bucket's table.
func (j *TableJob) Seed(ctx context.Context) error {
	return j.forEachLayout(ctx, func(_ *localMem, layouts []board.TeamLayout) {
		for _, l := range layouts {
			seedEasyWins(j.update.current, j.update.set, l)
		}
	})
}

// Converge repeatedly runs the accumulate+spread pass over every layout
// until an iteration makes no further progress, returning the iteration
// count at that bucket-local fixed point.
func (j *TableJob) Converge(ctx context.Context) (iterations int, err error) {
	for {
		progress, err := j.pass(ctx)
		if err != nil {
			return iterations, err
		}
		iterations++
		if !progress {
			return iterations, nil
		}
	}
}

// GoUp runs one final pass with the go-up flag set, routing every spread
// write into the bucket with one more side-0 pawn. Skipped layouts are
// revisited: a settled loss still has uncapture predecessors up there.
// No-op at the top edge of the piece-count lattice.
func (j *TableJob) GoUp(ctx context.Context) error {
	if j.update.leaveOne == nil {
		return nil
	}
	j.update.goUp = true
	defer func() { j.update.goUp = false }()
	_, err := j.pass(ctx)
	return err
}

// Run performs Seed, Converge, then GoUp in sequence. It is only a
// complete lifecycle for a single-bucket build (maxN == 0); anything
// larger must seed every bucket up front, which is Solve's job.
func (j *TableJob) Run(ctx context.Context) (iterations int, err error) {
	if err := j.Seed(ctx); err != nil {
		return 0, err
	}
	iterations, err = j.Converge(ctx)
	if err != nil {
		return iterations, err
	}
	return iterations, j.GoUp(ctx)
}

// Finalize re-derives every layout's win/loss split against the finished
// tables, marking late resolutions, and returns the bucket's count of
// arrangements that converged to neither verdict.
func (j *TableJob) Finalize(ctx context.Context) (unresolved int64, err error) {
	var total atomic.Int64
	err = j.forEachLayout(ctx, func(mem *localMem, layouts []board.TeamLayout) {
		for _, l := range layouts {
			total.Add(j.update.finalizeLayout(mem, l))
		}
	})
	return total.Load(), err
}

// pass runs one iteration over all layouts and reports whether any
// fetch-or made progress anywhere.
func (j *TableJob) pass(ctx context.Context) (bool, error) {
	var progress atomic.Bool
	err := j.forEachLayout(ctx, func(mem *localMem, layouts []board.TeamLayout) {
		for _, l := range layouts {
			if j.update.updateLayout(mem, l) {
				progress.Store(true)
			}
		}
	})
	return progress.Load(), err
}

// forEachLayout fans fn out over contiguous chunks of the bucket's
// layouts using an errgroup capped at j.workers goroutines, handing each
// invocation pooled scratch. workers<=1 runs the whole bucket serially on
// the calling goroutine.
func (j *TableJob) forEachLayout(ctx context.Context, fn func(mem *localMem, layouts []board.TeamLayout)) error {
	if j.workers <= 1 {
		mem := j.pool.Get().(*localMem)
		defer j.pool.Put(mem)
		fn(mem, j.layouts)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(j.workers)
	chunk := len(j.layouts)/(j.workers*8) + 1
	for lo := 0; lo < len(j.layouts); lo += chunk {
		part := j.layouts[lo:min(lo+chunk, len(j.layouts))]
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			mem := j.pool.Get().(*localMem)
			defer j.pool.Put(mem)
			fn(mem, part)
			return nil
		})
	}
	return g.Wait()
}
