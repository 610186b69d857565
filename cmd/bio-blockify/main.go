// Command bio-blockify calls peaks in 1-D genomic event data (transposon
// insertion sites, ChIP-seq-like tag counts, or any other BED-like point
// process) via Bayesian-blocks segmentation and Poisson tail tests.
package main

import (
	stdlog "log"

	"v.io/x/lib/cmdline"
)

func main() {
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime | stdlog.Lmicroseconds | stdlog.Lshortfile)
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(&cmdline.Command{
		Name:  "bio-blockify",
		Short: "Segment, normalize, and call peaks over 1-D genomic event data",
		Long: `bio-blockify partitions sorted event tables into piecewise-constant
Bayesian blocks, normalizes event rate over a set of regions, and calls
significant peaks against a background track.`,
		Children: []*cmdline.Command{
			newCmdSegment(),
			newCmdNormalize(),
			newCmdCall(),
			newCmdDownsample(),
		},
	})
}
