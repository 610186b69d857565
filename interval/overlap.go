package interval

import (
	"sort"

	"github.com/arnavm/blockify/genome"
)

// CountOverlaps implements the count-overlap intersection A ⟕ᶜ B (spec §2):
// for every interval in a, the number of intervals in b that overlap it
// (half-open semantics), matching `bedtools intersect -c`. a and b need not
// be mutually sorted across chromosomes; each is grouped by chromosome
// internally. The result has the same length and order as a.
//
// Overlap counting does not assume a or b is internally non-overlapping or
// that End is monotonic in Start order (background/event tracks routinely
// violate both): for a query interval [aStart, aEnd), the intervals of b
// that fail to overlap it are exactly those with Start >= aEnd (entirely
// after) or End <= aStart (entirely before), and since every interval has
// Start < End those two sets are disjoint. So the overlap count is
// `len(b) - count(Start >= aEnd) - count(End <= aStart)`, each term a
// binary search against b sorted once by Start and once by End.
func CountOverlaps(a, b []genome.Interval) []int {
	result := make([]int, len(a))

	aByChrom := make(map[string][]int, len(a))
	for i, iv := range a {
		aByChrom[iv.Chrom] = append(aByChrom[iv.Chrom], i)
	}
	bByChrom := make(map[string][]genome.Interval, len(b))
	for _, iv := range b {
		bByChrom[iv.Chrom] = append(bByChrom[iv.Chrom], iv)
	}

	for chrom, aIdxs := range aByChrom {
		counts := chromCounts(a, aIdxs, bByChrom[chrom])
		for pos, idx := range aIdxs {
			result[idx] = counts[pos]
		}
	}
	return result
}

// chromCounts computes, for each a[idx] with idx in aIdxs, the number of
// intervals in bList that overlap it.
func chromCounts(a []genome.Interval, aIdxs []int, bList []genome.Interval) []int {
	starts := make([]int64, len(bList))
	ends := make([]int64, len(bList))
	for i, iv := range bList {
		starts[i] = iv.Start
		ends[i] = iv.End
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })
	sort.Slice(ends, func(i, j int) bool { return ends[i] < ends[j] })

	n := len(bList)
	counts := make([]int, len(aIdxs))
	for pos, idx := range aIdxs {
		av := a[idx]
		afterCount := n - sort.Search(n, func(i int) bool { return starts[i] >= av.End })
		beforeCount := sort.Search(n, func(i int) bool { return ends[i] > av.Start })
		counts[pos] = n - afterCount - beforeCount
	}
	return counts
}
