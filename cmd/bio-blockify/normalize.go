package main

import (
	"context"
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"

	"github.com/arnavm/blockify/format"
	"github.com/arnavm/blockify/genome"
	"github.com/arnavm/blockify/normalize"
	"github.com/arnavm/blockify/segment"
)

func newCmdNormalize() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "normalize",
		Short: "Produce a library-size-normalized event-rate bedGraph track",
	}
	input := cmd.Flags.String("i", "", "Input event table (required)")
	output := cmd.Flags.String("o", "", "Output bedGraph track (required)")
	regions := cmd.Flags.String("r", "", "Regions table; if absent, segmentation is run first")
	libraryFactor := cmd.Flags.Float64("k", 1e6, "Library-size scaling factor")
	lengthFactor := cmd.Flags.Float64("l", 0, "Per-length rate scaling factor (0 disables)")
	priors := registerPriorFlags(cmd.Flags)
	methodFlag := registerMethodFlag(cmd.Flags)

	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if *input == "" || *output == "" {
			die(fmt.Errorf("normalize: -i and -o are required"))
		}
		ctx := vcontext.Background()
		events, err := format.ReadEvents(ctx, *input)
		if err != nil {
			die(err)
		}

		regionList, err := resolveRegions(ctx, events, *regions, priors, *methodFlag)
		if err != nil {
			die(err)
		}

		var lf *float64
		if *lengthFactor > 0 {
			lf = lengthFactor
		}
		rows, err := normalize.Normalize(events, regionList, normalize.Options{LibraryFactor: *libraryFactor, LengthFactor: lf})
		if err != nil {
			die(err)
		}
		if err := format.WriteBedGraph(ctx, *output, rows); err != nil {
			die(err)
		}
		return nil
	})
	return cmd
}

// resolveRegions implements the "regions, or segment first" fallback shared
// by normalize and call (SPEC_FULL.md §C.2).
func resolveRegions(ctx context.Context, events []genome.Event, regionsPath string, priors priorFlags, methodStr string) ([]genome.Interval, error) {
	if regionsPath != "" {
		return format.ReadIntervals(ctx, regionsPath)
	}
	method, err := parseMethod(methodStr)
	if err != nil {
		return nil, err
	}
	p0, prior, err := priors.resolve()
	if err != nil {
		return nil, err
	}
	reg, err := segment.Segment(events, segment.Options{Method: method, P0: p0, Prior: prior})
	if err != nil {
		return nil, err
	}
	return reg.Blocks(), nil
}
