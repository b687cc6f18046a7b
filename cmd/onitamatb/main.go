// Command onitamatb builds a complete Onitama retrograde tablebase for a
// fixed maximum piece count and prints summary statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/LHolten/onitama-solver/card"
	"github.com/LHolten/onitama-solver/solver"
)

// buildVersion identifies this solver's scoring rules in a build's output,
// so a win-count regression can be traced to the binary that produced it.
const buildVersion = "onitamatb/1"

// goldenWins are the known-good totals for the reference card set 0x1f,
// keyed by pawns per side. A finished build that disagrees is a bug, not
// a result.
var goldenWins = map[int]int64{
	1: 6_752_579,
	2: 831_344_251,
	3: 37_560_295_296,
}

var (
	pieces     = flag.Int("pieces", 0, "total pawns on the board (both sides combined); must be even, in {2,4,6,8,10}")
	cards      = flag.String("cards", "0x1f", "5-card hex bitmask selecting which canonical cards are in play")
	workers    = flag.Int("workers", runtime.GOMAXPROCS(0), "goroutines dispatched per bucket pass; 1 forces single-threaded deterministic mode")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	verbose    = flag.Bool("verbose", false, "include source file:line in log output")
	version    = flag.Bool("version", false, "print the solver version and exit")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Println(buildVersion)
		return
	}

	log.SetOutput(os.Stderr)
	log.SetPrefix("onitamatb: ")
	log.SetFlags(0)
	if *verbose {
		log.SetFlags(log.Lshortfile)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	maxN, set, err := parseArgs(*pieces, *cards)
	if err != nil {
		log.Fatal(err)
	}

	clock := solver.StartClock()
	_, res, err := solver.Solve(context.Background(), maxN, set, *workers)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d total wins\n", res.TotalWins)
	fmt.Printf("%d wins in 1\n", res.WinIn1)
	fmt.Printf("%d unresolved states\n", res.Unresolved)
	fmt.Printf("took %.3f seconds\n", clock.Elapsed().Seconds())

	if *cards == "0x1f" {
		if want, ok := goldenWins[maxN]; ok && res.TotalWins != want {
			log.Fatalf("total wins = %d, want %d for %d pawns per side", res.TotalWins, want, maxN)
		}
	}
}

// parseArgs validates the -pieces and -cards flags and derives the
// per-side pawn cap and card set the solver needs.
func parseArgs(pieces int, cardsFlag string) (maxN int, set card.Set, err error) {
	switch pieces {
	case 2, 4, 6, 8, 10:
		maxN = pieces / 2
	default:
		return 0, card.Set{}, fmt.Errorf("-pieces must be one of 2,4,6,8,10, got %d", pieces)
	}

	var mask uint64
	if _, err := fmt.Sscanf(cardsFlag, "0x%x", &mask); err != nil {
		if _, err2 := fmt.Sscanf(cardsFlag, "%d", &mask); err2 != nil {
			return 0, card.Set{}, fmt.Errorf("-cards %q is not a valid hex or decimal mask", cardsFlag)
		}
	}

	set, ok := parseSet(uint8(mask))
	if !ok {
		return 0, card.Set{}, fmt.Errorf("-cards %q must select exactly 5 of the 16 canonical cards", cardsFlag)
	}
	return maxN, set, nil
}

// parseSet adapts card.MustParseSet's panic into a returned bool so
// parseArgs can surface a clean error instead of crashing on a bad flag.
func parseSet(mask uint8) (set card.Set, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return card.MustParseSet(mask), true
}
