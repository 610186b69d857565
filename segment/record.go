package segment

import "github.com/arnavm/blockify/genome"

// Method selects which dynamic-programming engine to run.
type Method int

const (
	// MethodPELT is the default (spec §6: --method default PELT).
	MethodPELT Method = iota
	MethodOP
)

// ChromRecord is the per-chromosome outcome of segmentation (spec §3
// "Segmentation record"): the ordered block boundaries in original
// coordinate space (one more than the block count), the prior used, the
// best fitness achieved, and the resulting block count.
type ChromRecord struct {
	Chrom       string
	Boundaries  []int64
	Prior       float64
	BestFitness float64
	Blocks      int
}

// Registry collects the per-chromosome records produced by Segment, in
// first-seen chromosome order. Chromosomes with fewer than two distinct
// coordinates are silently absent (spec invariant (d)).
type Registry struct {
	Chroms []ChromRecord
}

// TotalPriors sums Prior across all recorded chromosomes.
func (r *Registry) TotalPriors() float64 {
	var total float64
	for _, c := range r.Chroms {
		total += c.Prior
	}
	return total
}

// TotalBlocks sums Blocks across all recorded chromosomes.
func (r *Registry) TotalBlocks() int {
	var total int
	for _, c := range r.Chroms {
		total += c.Blocks
	}
	return total
}

// TotalFitness sums BestFitness across all recorded chromosomes.
func (r *Registry) TotalFitness() float64 {
	var total float64
	for _, c := range r.Chroms {
		total += c.BestFitness
	}
	return total
}

// Blocks flattens the registry into the genome.Interval rows the rest of
// the pipeline (normalize, peak) consumes as regions.
func (r *Registry) Blocks() []genome.Interval {
	var out []genome.Interval
	for _, c := range r.Chroms {
		for i := 0; i+1 < len(c.Boundaries); i++ {
			out = append(out, genome.Interval{
				Chrom: c.Chrom,
				Start: c.Boundaries[i],
				End:   c.Boundaries[i+1],
			})
		}
	}
	return out
}
