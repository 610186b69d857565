package main

import (
	"flag"
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"

	"github.com/arnavm/blockify/downsample"
	"github.com/arnavm/blockify/format"
	"github.com/arnavm/blockify/genome"
)

func newCmdDownsample() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "downsample",
		Short: "Sample rows from an event table without replacement",
	}
	input := cmd.Flags.String("i", "", "Input event table (required)")
	output := cmd.Flags.String("o", "", "Output sampled table (required)")
	n := cmd.Flags.Int("n", 0, "Number of rows to sample (required)")
	seed := cmd.Flags.Int64("s", 0, "Random seed; if unset, sampling is not reproducible")
	naive := cmd.Flags.Bool("naive", false, "Sample uniformly, ignoring column-4 weights")

	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if *input == "" || *output == "" || *n <= 0 {
			die(fmt.Errorf("downsample: -i, -o, and -n are required"))
		}

		ctx := vcontext.Background()
		events, err := format.ReadEvents(ctx, *input)
		if err != nil {
			die(err)
		}

		weights := make([]float64, len(events))
		for i, e := range events {
			weights[i] = e.Weight
		}

		var seedPtr *int64
		cmd.Flags.Visit(func(f *flag.Flag) {
			if f.Name == "s" {
				seedPtr = seed
			}
		})
		idxs, err := downsample.Sample(weights, downsample.Options{N: *n, Seed: seedPtr, Naive: *naive})
		if err != nil {
			die(err)
		}

		sampled := make([]genome.Event, len(idxs))
		for i, idx := range idxs {
			sampled[i] = events[idx]
		}
		if err := format.WriteEvents(ctx, *output, sampled); err != nil {
			die(err)
		}
		return nil
	})
	return cmd
}
