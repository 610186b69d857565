package main

import (
	"fmt"
	"math"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"

	"github.com/arnavm/blockify/correction"
	"github.com/arnavm/blockify/errors"
	"github.com/arnavm/blockify/format"
	"github.com/arnavm/blockify/peak"
)

func newCmdCall() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "call",
		Short: "Call significant peaks against a background track",
	}
	input := cmd.Flags.String("i", "", "Input event table (required)")
	output := cmd.Flags.String("o", "", "Output peaks BED6 table (required)")
	regions := cmd.Flags.String("r", "", "Regions table; if absent, segmentation is run first")
	background := cmd.Flags.String("bg", "", "Background event table (required)")
	priors := registerPriorFlags(cmd.Flags)
	methodFlag := registerMethodFlag(cmd.Flags)

	alpha := cmd.Flags.Float64("a", -1, "Family-wise alpha; mutually exclusive with -p")
	correctionName := cmd.Flags.String("correction", "bonferroni", "Multiple-testing correction name")
	pValueCutoff := cmd.Flags.Float64("p", -1, "Raw p-value cutoff; mutually exclusive with -a")
	distance := cmd.Flags.Int64("d", -1, "Merge significant regions within this many bp (negative disables)")
	min := cmd.Flags.Int64("min", 0, "Minimum peak length")
	max := cmd.Flags.Float64("max", -1, "Maximum peak length (negative means +Inf)")
	pseudocount := cmd.Flags.Float64("c", 1, "Poisson pseudocount")
	measure := cmd.Flags.String("measure", "enrichment", "Test direction: enrichment or depletion")
	tight := cmd.Flags.Bool("tight", false, "Pull region boundaries to overlapping event extents")
	summit := cmd.Flags.Bool("summit", false, "Keep only the most significant block per consecutive run")
	intermediate := cmd.Flags.String("intermediate", "", "Optional path for the per-region intermediate CSV")

	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if *input == "" || *output == "" || *background == "" {
			die(fmt.Errorf("call: -i, -o, and -bg are required"))
		}
		if *tight && *summit {
			die(errors.E(errors.InvalidArgument, "bio-blockify call", "--tight and --summit are mutually exclusive"))
		}
		if *alpha >= 0 && *pValueCutoff >= 0 {
			die(errors.E(errors.InvalidArgument, "bio-blockify call", "-a and -p are mutually exclusive"))
		}

		ctx := vcontext.Background()
		events, err := format.ReadEvents(ctx, *input)
		if err != nil {
			die(err)
		}
		bgEvents, err := format.ReadEvents(ctx, *background)
		if err != nil {
			die(err)
		}
		regionList, err := resolveRegions(ctx, events, *regions, priors, *methodFlag)
		if err != nil {
			die(err)
		}

		measureVal, err := parseMeasure(*measure)
		if err != nil {
			die(err)
		}

		opts := peak.Options{
			Measure:      measureVal,
			Pseudocount:  *pseudocount,
			Min:          *min,
			Tight:        *tight,
			Summit:       *summit,
			SummitMetric: peak.SummitPValue,
		}
		if *distance >= 0 {
			opts.Distance = distance
		}
		if *max >= 0 {
			opts.Max = *max
		} else {
			opts.Max = math.Inf(1)
		}
		if *pValueCutoff >= 0 {
			opts.PValueCutoff = pValueCutoff
		} else {
			opts.Alpha = alpha
			opts.Correction = correction.Method(*correctionName)
		}

		result, err := peak.Call(events, regionList, bgEvents, opts)
		if err != nil {
			die(err)
		}
		if err := format.WritePeaks(ctx, *output, result.Peaks); err != nil {
			die(err)
		}
		if *intermediate != "" {
			if err := format.WriteIntermediate(ctx, *intermediate, result.Intermediate); err != nil {
				die(err)
			}
		}
		return nil
	})
	return cmd
}

func parseMeasure(s string) (peak.Measure, error) {
	switch s {
	case "enrichment":
		return peak.Enrichment, nil
	case "depletion":
		return peak.Depletion, nil
	default:
		return 0, errors.E(errors.InvalidArgument, "bio-blockify call", "unknown measure: "+s)
	}
}
