package block

import (
	"math"

	"github.com/arnavm/blockify/errors"
)

// EmpiricalPrior computes the Scargle-style false-alarm penalty
//
//	gamma(n, p0) = 4 - ln(73.53 * p0 * n^-0.478)
//
// given the cell count n and a target per-block false-positive rate p0 in
// [0, 1] (spec §4.1). p0 == 0 yields +Inf (infinite penalty, i.e. the whole
// chromosome collapses to one block), which is a legitimate float64 result,
// not an error.
func EmpiricalPrior(n int, p0 float64) (float64, error) {
	if p0 < 0 || p0 > 1 {
		return 0, errors.E(errors.InvalidArgument, "block.EmpiricalPrior", "p0 must be in [0, 1]")
	}
	if n <= 0 {
		return 0, errors.E(errors.InvalidArgument, "block.EmpiricalPrior", "cell count must be positive")
	}
	return 4 - math.Log(73.53*p0*math.Pow(float64(n), -0.478)), nil
}

// ExplicitPrior validates a user-supplied penalty gamma >= 0 (spec §4.1).
func ExplicitPrior(gamma float64) (float64, error) {
	if gamma < 0 {
		return 0, errors.E(errors.InvalidArgument, "block.ExplicitPrior", "prior must be >= 0")
	}
	return gamma, nil
}

// Prior resolves the per-change-point penalty from exactly one of an
// explicit prior or an empirical p0, given the cell count n. Exactly one of
// prior or p0 must be non-nil; any other combination is InvalidArgument.
func Prior(n int, p0, prior *float64) (float64, error) {
	switch {
	case p0 != nil && prior != nil:
		return 0, errors.E(errors.InvalidArgument, "block.Prior", "exactly one of p0 or prior must be supplied, not both")
	case p0 != nil:
		return EmpiricalPrior(n, *p0)
	case prior != nil:
		return ExplicitPrior(*prior)
	default:
		return 0, errors.E(errors.InvalidArgument, "block.Prior", "one of p0 or prior must be supplied")
	}
}
