package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/arnavm/blockify/errors"
	"github.com/arnavm/blockify/segment"
)

// exitCode maps an error Kind to the process exit code SPEC_FULL.md §A.1
// assigns it: 0 success, 2 InvalidArgument, 3 UnsortedInput, 4 IOFailure, 1
// anything else.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	switch errors.GetKind(err) {
	case errors.InvalidArgument:
		return 2
	case errors.UnsortedInput:
		return 3
	case errors.IOFailure:
		return 4
	default:
		return 1
	}
}

// die prints err to stderr and exits with the code its Kind maps to. It
// never returns; subcommand Runners call it instead of propagating the
// error through cmdline, since cmdline's own exit-code convention doesn't
// distinguish the kinds the spec requires.
func die(err error) {
	fmt.Fprintln(os.Stderr, "bio-blockify:", err)
	os.Exit(exitCode(err))
}

// priorUnset is the sentinel for "--prior was not supplied": prior must be
// >= 0, so a negative default is unambiguous.
const priorUnset = -1.0

// priorFlags implements the "exactly one of p0 (default 0.05) or prior"
// pattern shared by segment, normalize, and call (spec §6). --p0 always
// carries a non-sentinel default, so telling "--prior supplied alone" apart
// from "--p0 and --prior both supplied" requires knowing which flags were
// explicitly set on the command line, not just their resolved values.
type priorFlags struct {
	fs    *flag.FlagSet
	p0    *float64
	prior *float64
}

func (pf priorFlags) resolve() (p0, prior *float64, err error) {
	p0Set, priorSet := false, false
	pf.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p0":
			p0Set = true
		case "prior":
			priorSet = true
		}
	})
	if p0Set && priorSet {
		return nil, nil, errors.E(errors.InvalidArgument, "bio-blockify", "--p0 and --prior are mutually exclusive")
	}
	if priorSet {
		return nil, pf.prior, nil
	}
	return pf.p0, nil, nil
}

// registerPriorFlags adds --p0 and --prior to fs, in the pattern every
// segmentation-backed subcommand shares.
func registerPriorFlags(fs *flag.FlagSet) priorFlags {
	return priorFlags{
		fs:    fs,
		p0:    fs.Float64("p0", 0.05, "Target per-block false-positive rate in [0, 1]; mutually exclusive with --prior"),
		prior: fs.Float64("prior", priorUnset, "Explicit per-change-point penalty gamma >= 0; mutually exclusive with --p0"),
	}
}

// registerMethodFlag adds --method to fs, defaulting to PELT (spec §6).
func registerMethodFlag(fs *flag.FlagSet) *string {
	return fs.String("method", "PELT", "Segmentation engine: OP or PELT")
}

func parseMethod(s string) (segment.Method, error) {
	switch strings.ToUpper(s) {
	case "PELT":
		return segment.MethodPELT, nil
	case "OP":
		return segment.MethodOP, nil
	default:
		return 0, errors.E(errors.InvalidArgument, "bio-blockify", "unknown method: "+s)
	}
}
