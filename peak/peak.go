// Package peak implements the peak-calling pipeline (spec.md §4.7): Poisson
// tail tests against a library-size-scaled background, significance
// selection by cutoff or multiple-testing correction, and the tight/merge/
// size-filter/summit refinements.
package peak

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/arnavm/blockify/correction"
	"github.com/arnavm/blockify/errors"
	"github.com/arnavm/blockify/genome"
	"github.com/arnavm/blockify/interval"
)

// Measure selects which tail of the Poisson distribution is tested.
type Measure int

const (
	Enrichment Measure = iota
	Depletion
)

// SummitMetric selects the value compared within a run of consecutive
// significant blocks when Summit is requested.
type SummitMetric string

const (
	SummitPValue  SummitMetric = "pValue"
	SummitDensity SummitMetric = "density"
)

// Options configures a peak-calling run. Exactly one of Alpha (paired with
// Correction) or PValueCutoff must be supplied.
type Options struct {
	Measure      Measure
	Alpha        *float64
	Correction   correction.Method
	PValueCutoff *float64
	Distance     *int64
	Min          int64
	Max          float64 // zero means +Inf (no upper bound)
	Pseudocount  float64
	Tight        bool
	Summit       bool
	SummitMetric SummitMetric
}

// Row is one intermediate-CSV record (spec §6 "Intermediate CSV").
type Row struct {
	Chrom             string
	Start             int64
	End               int64
	Input             float64
	Background        float64
	NormedBg          float64
	NetDensity        float64
	PValue            float64
	NegLog10PValue    float64
	CorrectedPValue   float64
	NegLog10Corrected float64
	Rejected          bool
	HasCorrection     bool
}

// Result is the output of Call: the final peak set and the full
// intermediate table (pre-significance-filtering, one row per scored
// region) for diagnostic output. With Tight, the scored regions are the
// tightened spans, and regions with no overlapping events have no row.
type Result struct {
	Peaks        []genome.Peak
	Intermediate []Row
}

// floatMax mirrors the original implementation's FLOAT_MAX substitution for
// a zero p-value, so -log10(p) stays finite (spec §4.7).
const floatMax = math.MaxFloat64

// Call runs the full peak-calling pipeline over candidate regions (spec
// §4.7). events, regions, and background must all be sorted.
func Call(events []genome.Event, regions []genome.Interval, background []genome.Event, opts Options) (*Result, error) {
	if opts.Max == 0 {
		opts.Max = math.Inf(1)
	}
	if err := validate(opts); err != nil {
		return nil, err
	}

	eventIvs := toIntervals(events)
	bgIvs := toIntervals(background)
	if !interval.IsSorted(eventIvs) {
		return nil, errors.E(errors.UnsortedInput, "peak.Call", "events must be sorted")
	}
	if !interval.IsSorted(bgIvs) {
		return nil, errors.E(errors.UnsortedInput, "peak.Call", "background must be sorted")
	}
	if !interval.IsSorted(regions) {
		return nil, errors.E(errors.UnsortedInput, "peak.Call", "regions must be sorted")
	}

	if opts.Tight {
		regions = interval.Tighten(regions, events)
	}

	if len(background) == 0 {
		return nil, errors.E(errors.InvalidArgument, "peak.Call", "background must be non-empty")
	}
	scale := float64(len(events)) / float64(len(background))

	inputCounts := interval.CountOverlaps(regions, eventIvs)
	bgCounts := interval.CountOverlaps(regions, bgIvs)

	pseudo := math.Floor(opts.Pseudocount)
	rows := make([]Row, len(regions))
	pValues := make([]float64, len(regions))
	for i, r := range regions {
		input := float64(inputCounts[i]) + pseudo
		bg := float64(bgCounts[i])
		lambda := bg*scale + opts.Pseudocount

		p := tailProbability(opts.Measure, input, lambda)
		if p == 0 {
			p = 1 / floatMax
		}

		width := float64(r.End - r.Start)
		netDensity := (input - lambda) / width

		rows[i] = Row{
			Chrom:          r.Chrom,
			Start:          r.Start,
			End:            r.End,
			Input:          input,
			Background:     bg,
			NormedBg:       lambda,
			NetDensity:     netDensity,
			PValue:         p,
			NegLog10PValue: -math.Log10(p),
		}
		pValues[i] = p
	}

	significant := make([]bool, len(regions))
	if opts.PValueCutoff != nil {
		for i, row := range rows {
			significant[i] = row.PValue <= *opts.PValueCutoff
		}
	} else {
		rejected, corrected, err := correction.Correct(opts.Correction, pValues, *opts.Alpha)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].CorrectedPValue = corrected[i]
			rows[i].NegLog10Corrected = -math.Log10(safeLog(corrected[i]))
			rows[i].Rejected = rejected[i]
			rows[i].HasCorrection = true
			significant[i] = rejected[i]
		}
	}

	candidates := make([]genome.Interval, 0, len(regions))
	candidateRows := make([]Row, 0, len(regions))
	for i, r := range regions {
		if significant[i] {
			candidates = append(candidates, r)
			candidateRows = append(candidateRows, rows[i])
		}
	}

	if opts.Summit {
		candidates, candidateRows = extractSummits(candidates, candidateRows, opts.SummitMetric)
	}

	if opts.Distance != nil {
		candidates = mergeWithRows(candidates, *opts.Distance)
	}

	filtered := make([]genome.Interval, 0, len(candidates))
	for _, c := range candidates {
		length := c.End - c.Start
		if length >= opts.Min && float64(length) <= opts.Max {
			filtered = append(filtered, c)
		}
	}

	peaks := make([]genome.Peak, len(filtered))
	for i, c := range filtered {
		peaks[i] = genome.Peak{
			Chrom:  c.Chrom,
			Start:  c.Start,
			End:    c.End,
			Name:   fmt.Sprintf("peak_%d", i+1),
			Score:  1,
			Strand: ".",
		}
	}

	return &Result{Peaks: peaks, Intermediate: rows}, nil
}

func validate(opts Options) error {
	if (opts.Alpha == nil) == (opts.PValueCutoff == nil) {
		return errors.E(errors.InvalidArgument, "peak.Call", "exactly one of alpha or pValueCutoff must be supplied")
	}
	if opts.Alpha != nil && (*opts.Alpha < 0 || *opts.Alpha > 1) {
		return errors.E(errors.InvalidArgument, "peak.Call", "alpha must be in [0, 1]")
	}
	if opts.PValueCutoff != nil && (*opts.PValueCutoff < 0 || *opts.PValueCutoff > 1) {
		return errors.E(errors.InvalidArgument, "peak.Call", "pValueCutoff must be in [0, 1]")
	}
	if opts.Pseudocount < 0 {
		return errors.E(errors.InvalidArgument, "peak.Call", "pseudocount must be >= 0")
	}
	if opts.Min < 0 {
		return errors.E(errors.InvalidArgument, "peak.Call", "min must be >= 0")
	}
	if opts.Max < float64(opts.Min) {
		return errors.E(errors.InvalidArgument, "peak.Call", "max must be >= min")
	}
	if opts.Distance != nil && *opts.Distance < 0 {
		return errors.E(errors.InvalidArgument, "peak.Call", "distance must be >= 0")
	}
	return nil
}

func toIntervals(events []genome.Event) []genome.Interval {
	ivs := make([]genome.Interval, len(events))
	for i, e := range events {
		ivs[i] = genome.Interval{Chrom: e.Chrom, Start: e.Start, End: e.End}
	}
	return ivs
}

// tailProbability computes the Poisson tail p-value for the configured
// measure (spec §4.7): survival P(X >= k) = 1 - F(k-1; lambda) for
// enrichment, P(X <= k) = F(k; lambda) for depletion.
func tailProbability(measure Measure, k, lambda float64) float64 {
	dist := distuv.Poisson{Lambda: lambda}
	switch measure {
	case Depletion:
		return dist.CDF(k)
	default:
		return 1 - dist.CDF(k-1)
	}
}

func safeLog(p float64) float64 {
	if p == 0 {
		return 1 / floatMax
	}
	return p
}

// extractSummits partitions candidates into maximal runs of consecutive
// blocks (same chromosome, b_i.end == b_{i+1}.start) and keeps only the
// block(s) achieving the maximum metric value within each run; ties keep
// all maxima (spec §4.7 refinement 1).
func extractSummits(candidates []genome.Interval, rows []Row, metric SummitMetric) ([]genome.Interval, []Row) {
	var outC []genome.Interval
	var outR []Row

	i := 0
	for i < len(candidates) {
		j := i + 1
		for j < len(candidates) &&
			candidates[j].Chrom == candidates[j-1].Chrom &&
			candidates[j].Start == candidates[j-1].End {
			j++
		}
		// run is [i, j)
		best := math.Inf(-1)
		for k := i; k < j; k++ {
			v := summitValue(rows[k], metric)
			if v > best {
				best = v
			}
		}
		for k := i; k < j; k++ {
			if summitValue(rows[k], metric) == best {
				outC = append(outC, candidates[k])
				outR = append(outR, rows[k])
			}
		}
		i = j
	}
	return outC, outR
}

func summitValue(row Row, metric SummitMetric) float64 {
	if metric == SummitDensity {
		return row.NetDensity
	}
	if row.HasCorrection {
		return row.NegLog10Corrected
	}
	return row.NegLog10PValue
}

// mergeWithRows merges adjacent candidates within distance, dropping the
// per-row statistics of merged-away blocks (merged regions report only
// their coordinates downstream; spec §4.7 refinement 3 acts on coordinates
// only).
func mergeWithRows(candidates []genome.Interval, distance int64) []genome.Interval {
	return interval.MergeWithinDistance(candidates, distance)
}
