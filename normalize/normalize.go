// Package normalize implements the library-size and optional per-length
// normalization of an event track over a set of regions (spec.md §4.6),
// producing a bedGraph-style rate track.
package normalize

import (
	"github.com/arnavm/blockify/errors"
	"github.com/arnavm/blockify/genome"
	"github.com/arnavm/blockify/interval"
)

// Options configures a normalization run. LengthFactor is nil when only
// library-size scaling is requested.
type Options struct {
	LibraryFactor float64
	LengthFactor  *float64
}

// Row is one output record: a region's chrom/start/end and its normalized
// value (a count if LengthFactor is nil, a rate otherwise).
type Row struct {
	Chrom string
	Start int64
	End   int64
	Value float64
}

// Normalize scales the per-region event overlap count by the library size
// (events / LibraryFactor) and, if LengthFactor is supplied, further by
// region length (spec §4.6). events and regions must both be sorted;
// output preserves regions' order.
func Normalize(events []genome.Event, regions []genome.Interval, opts Options) ([]Row, error) {
	if opts.LibraryFactor <= 0 {
		return nil, errors.E(errors.InvalidArgument, "normalize.Normalize", "libraryFactor must be positive")
	}
	if opts.LengthFactor != nil && *opts.LengthFactor <= 0 {
		return nil, errors.E(errors.InvalidArgument, "normalize.Normalize", "lengthFactor must be positive")
	}

	eventIvs := make([]genome.Interval, len(events))
	for i, e := range events {
		eventIvs[i] = genome.Interval{Chrom: e.Chrom, Start: e.Start, End: e.End}
	}
	if !interval.IsSorted(eventIvs) {
		return nil, errors.E(errors.UnsortedInput, "normalize.Normalize", "input events must be sorted")
	}
	if !interval.IsSorted(regions) {
		return nil, errors.E(errors.UnsortedInput, "normalize.Normalize", "regions must be sorted")
	}

	libraryScalingConstant := float64(len(events)) / opts.LibraryFactor
	rawCounts := interval.CountOverlaps(regions, eventIvs)

	rows := make([]Row, len(regions))
	for i, r := range regions {
		normCount := float64(rawCounts[i]) / libraryScalingConstant
		value := normCount
		if opts.LengthFactor != nil {
			lengthNorm := float64(r.End-r.Start) / *opts.LengthFactor
			value = normCount / lengthNorm
		}
		rows[i] = Row{Chrom: r.Chrom, Start: r.Start, End: r.End, Value: value}
	}
	return rows, nil
}
