package interval

import "github.com/arnavm/blockify/genome"

// MergeWithinDistance merges adjacent intervals (on the same chromosome,
// and already sorted by Start) whose gap is <= distance base pairs into a
// single spanning interval (spec §4.7 refinement 3). distance == 0 merges
// only touching/overlapping intervals.
func MergeWithinDistance(ivs []genome.Interval, distance int64) []genome.Interval {
	out := make([]genome.Interval, 0, len(ivs))
	for _, iv := range ivs {
		if n := len(out); n > 0 {
			last := &out[n-1]
			if last.Chrom == iv.Chrom && iv.Start-last.End <= distance {
				if iv.End > last.End {
					last.End = iv.End
				}
				continue
			}
		}
		out = append(out, iv)
	}
	return out
}
