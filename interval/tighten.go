package interval

import (
	"sort"

	"github.com/arnavm/blockify/genome"
)

// Tighten replaces each region by the bounding span [min(event.Start),
// max(event.End)] over every event that overlaps it (spec §4.7 refinement
// 2, "tight"). Regions with no overlapping events are dropped entirely,
// matching the inner-join semantics of the original `intersect(wa=True,
// wb=True)` this is grounded on (original_source lib/blockify/annotation.py
// tighten()). regions and events must each be sorted; the result is in the
// same relative order as the surviving regions.
func Tighten(regions []genome.Interval, events []genome.Event) []genome.Interval {
	regionsByChrom := make(map[string][]int, len(regions))
	for i, r := range regions {
		regionsByChrom[r.Chrom] = append(regionsByChrom[r.Chrom], i)
	}
	eventsByChrom := make(map[string][]genome.Event, len(events))
	for _, e := range events {
		eventsByChrom[e.Chrom] = append(eventsByChrom[e.Chrom], e)
	}

	tightened := make([]genome.Interval, len(regions))
	kept := make([]bool, len(regions))

	for chrom, idxs := range regionsByChrom {
		evs := eventsByChrom[chrom]
		tightenChrom(regions, idxs, evs, tightened, kept)
	}

	out := make([]genome.Interval, 0, len(regions))
	for i := range regions {
		if kept[i] {
			out = append(out, tightened[i])
		}
	}
	return out
}

// tightenChrom does not assume region.End is non-decreasing in region.Start
// order (a user-supplied -r file need not be internally non-overlapping): a
// single forward sweep pointer keyed off the current region's End would
// wrongly keep events "open" for a later region with a smaller End. Instead,
// events are sorted once by Start, and each region independently binary
// searches the prefix of events that could possibly overlap it (Start <
// region.End), then scans that prefix for the subset with End > region.Start
// to compute the bounding span.
func tightenChrom(regions []genome.Interval, idxs []int, evs []genome.Event, tightened []genome.Interval, kept []bool) {
	sortIntsByStart(regions, idxs)

	sorted := make([]genome.Event, len(evs))
	copy(sorted, evs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	starts := make([]int64, len(sorted))
	for i, e := range sorted {
		starts[i] = e.Start
	}

	for _, idx := range idxs {
		r := regions[idx]
		hi := sort.Search(len(starts), func(i int) bool { return starts[i] >= r.End })

		var minStart, maxEnd int64
		found := false
		for i := 0; i < hi; i++ {
			e := sorted[i]
			if e.End <= r.Start {
				continue
			}
			if !found || e.Start < minStart {
				minStart = e.Start
			}
			if !found || e.End > maxEnd {
				maxEnd = e.End
			}
			found = true
		}
		if !found {
			continue
		}
		tightened[idx] = genome.Interval{Chrom: r.Chrom, Start: minStart, End: maxEnd}
		kept[idx] = true
	}
}

func sortIntsByStart(regions []genome.Interval, idxs []int) {
	sort.Slice(idxs, func(i, j int) bool { return regions[idxs[i]].Start < regions[idxs[j]].Start })
}
