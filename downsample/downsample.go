// Package downsample implements weighted or uniform random sampling of
// table rows without replacement (spec.md §4.8), grounded on the same
// math/rand.New(rand.NewSource(seed)) seeding idiom used for reproducible
// sampling elsewhere in the retrieved corpus.
package downsample

import (
	"math/rand"
	"sort"
	"time"

	"github.com/arnavm/blockify/errors"
)

// Options configures a downsampling run.
type Options struct {
	N     int
	Seed  *int64
	Naive bool
}

// Sample draws Options.N indices into weights without replacement and
// returns them in ascending order (spec §4.8: "result rows returned in
// ascending original order"). If Naive, every row is equally likely;
// otherwise row i is drawn with probability proportional to weights[i].
func Sample(weights []float64, opts Options) ([]int, error) {
	n := len(weights)
	if opts.N < 0 || opts.N > n {
		return nil, errors.E(errors.InvalidArgument, "downsample.Sample", "n must be in [0, len(weights)]")
	}

	// Only a caller-supplied seed makes sampling reproducible (spec §4.8);
	// absent one, fall back to a time-derived seed so repeated runs differ.
	seed := time.Now().UnixNano()
	if opts.Seed != nil {
		seed = *opts.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	chosen := make([]int, 0, opts.N)
	for len(chosen) < opts.N {
		var pick int
		if opts.Naive {
			pick = rng.Intn(len(remaining))
		} else {
			pick = weightedPick(rng, remaining, weights)
		}
		chosen = append(chosen, remaining[pick])
		remaining = append(remaining[:pick], remaining[pick+1:]...)
	}

	sort.Ints(chosen)
	return chosen, nil
}

// weightedPick selects a position in remaining with probability
// proportional to weights[remaining[i]], via cumulative-weight search.
func weightedPick(rng *rand.Rand, remaining []int, weights []float64) int {
	var total float64
	for _, idx := range remaining {
		total += weights[idx]
	}
	if total <= 0 {
		return rng.Intn(len(remaining))
	}
	target := rng.Float64() * total
	var cum float64
	for i, idx := range remaining {
		cum += weights[idx]
		if target < cum {
			return i
		}
	}
	return len(remaining) - 1
}
