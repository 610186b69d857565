package segment

import (
	"github.com/grailbio/base/log"

	"github.com/arnavm/blockify/block"
	"github.com/arnavm/blockify/errors"
	"github.com/arnavm/blockify/genome"
	"github.com/arnavm/blockify/interval"
)

// Options configures a segmentation run (spec §4.5).
type Options struct {
	Method Method
	// Exactly one of P0 or Prior must be non-nil; both are forwarded to
	// block.Prior verbatim.
	P0    *float64
	Prior *float64
}

// Segment partitions events into piecewise-constant blocks, one chromosome
// at a time (spec §4.5 driver). events must already be sorted (spec data
// model: chromosome-grouped, non-decreasing Start); callers that read from
// format.ReadEvents get this for free when the source file itself is sorted.
//
// Chromosomes with fewer than two distinct event coordinates are silently
// skipped: a single point (or a run of coincident points) carries no
// segmentation signal, and OP/PELT both degenerate on a one-cell grid.
func Segment(events []genome.Event, opts Options) (*Registry, error) {
	ivs := make([]genome.Interval, len(events))
	for i, e := range events {
		ivs[i] = genome.Interval{Chrom: e.Chrom, Start: e.Start, End: e.End}
	}
	if !interval.IsSorted(ivs) {
		return nil, errors.E(errors.UnsortedInput, "segment.Segment", "events must be sorted by chromosome, then by start")
	}

	var order []string
	coordsByChrom := make(map[string][]int64)
	for _, e := range events {
		if _, ok := coordsByChrom[e.Chrom]; !ok {
			order = append(order, e.Chrom)
		}
		coordsByChrom[e.Chrom] = append(coordsByChrom[e.Chrom], midpoint(e))
	}

	reg := &Registry{}
	for _, chrom := range order {
		coords := coordsByChrom[chrom]
		if len(distinctSorted(coords)) < 2 {
			log.Debug.Printf("segment: %s has fewer than two distinct coordinates, skipping", chrom)
			continue
		}

		// coords keeps every event's coordinate, duplicates included: a
		// genomic position hit by several coincident events must count each
		// one (spec §3), and the empirical prior is a function of the cell
		// count len(coords), not the number of distinct positions.
		gamma, err := block.Prior(len(coords), opts.P0, opts.Prior)
		if err != nil {
			return nil, err
		}

		grid := NewGrid(coords)

		var changePoints []int
		var fitness float64
		switch opts.Method {
		case MethodOP:
			changePoints, fitness = runOP(grid, gamma)
		case MethodPELT:
			changePoints, fitness = runPELT(grid, gamma)
		default:
			return nil, errors.E(errors.InvalidArgument, "segment.Segment", "unknown method")
		}

		boundaries := make([]int64, len(changePoints))
		for i, cp := range changePoints {
			boundaries[i] = grid.Coordinate(cp)
		}

		log.Debug.Printf("segment: %s: %d cells -> %d blocks (gamma=%.4f, fitness=%.4f)",
			chrom, grid.N, len(boundaries)-1, gamma, fitness)

		reg.Chroms = append(reg.Chroms, ChromRecord{
			Chrom:       chrom,
			Boundaries:  boundaries,
			Prior:       gamma,
			BestFitness: fitness,
			Blocks:      len(boundaries) - 1,
		})
	}
	return reg, nil
}

// midpoint derives the cell-grid coordinate for an event: the midpoint of
// its half-open [Start, End) span, rounded down (spec §3 "cell grid").
func midpoint(e genome.Event) int64 {
	return (e.Start + e.End) / 2
}

// distinctSorted returns the sorted, duplicate-free coordinate set. x is
// already non-decreasing (events are sorted by Start and midpoint preserves
// that order within ties), so this is a single linear pass.
func distinctSorted(x []int64) []int64 {
	if len(x) == 0 {
		return nil
	}
	out := make([]int64, 0, len(x))
	out = append(out, x[0])
	for _, v := range x[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
