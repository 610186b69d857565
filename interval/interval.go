// Package interval implements the sorted-interval primitives the rest of
// blockify's core consumes: a sortedness predicate, count-overlap
// intersection (A ⟕ᶜ B), and boundary-merge by distance. It is the single
// swappable seam the design notes call out (spec.md §9): everything here
// could be replaced by a BEDTools-backed implementation without the rest of
// the module noticing, since the contract is just
// {IsSorted, CountOverlaps, MergeWithinDistance}.
package interval

import "github.com/arnavm/blockify/genome"

// IsSorted reports whether ivs is sorted the way the spec requires of every
// BED-like table: grouped by chromosome in some (any) order with no
// chromosome reappearing after a break, and non-decreasing Start within
// each chromosome's group (spec §7 UnsortedInput, data model "Event
// record").
func IsSorted(ivs []genome.Interval) bool {
	seen := make(map[string]bool)
	var curChrom string
	var curStart int64
	haveChrom := false

	for _, iv := range ivs {
		if !haveChrom || iv.Chrom != curChrom {
			if seen[iv.Chrom] {
				return false
			}
			seen[iv.Chrom] = true
			curChrom = iv.Chrom
			haveChrom = true
			curStart = iv.Start
		}
		if iv.Start < curStart {
			return false
		}
		curStart = iv.Start
	}
	return true
}
