package main

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"v.io/x/lib/cmdline"

	"github.com/arnavm/blockify/format"
	"github.com/arnavm/blockify/segment"
)

func newCmdSegment() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "segment",
		Short: "Partition an event table into piecewise-constant Bayesian blocks",
	}
	input := cmd.Flags.String("i", "", "Input event table (required)")
	output := cmd.Flags.String("o", "", "Output blocks table (required)")
	priors := registerPriorFlags(cmd.Flags)
	methodFlag := registerMethodFlag(cmd.Flags)

	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		if *input == "" || *output == "" {
			die(fmt.Errorf("segment: -i and -o are required"))
		}
		method, err := parseMethod(*methodFlag)
		if err != nil {
			die(err)
		}
		p0, prior, err := priors.resolve()
		if err != nil {
			die(err)
		}

		ctx := vcontext.Background()
		events, err := format.ReadEvents(ctx, *input)
		if err != nil {
			die(err)
		}
		reg, err := segment.Segment(events, segment.Options{Method: method, P0: p0, Prior: prior})
		if err != nil {
			die(err)
		}
		if err := format.WriteIntervals(ctx, *output, reg.Blocks()); err != nil {
			die(err)
		}
		return nil
	})
	return cmd
}
