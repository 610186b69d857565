// Package correction implements the multiple-testing correction registry
// (spec.md §1, §4.6): a name-to-procedure table mapping a p-value vector and
// family-wise alpha to a rejection vector and a corrected p-value vector.
// This is deliberately stdlib-only: no example repo in the retrieval pack
// implements any of these procedures, and they are each a few lines of
// arithmetic over a sorted copy of the input, so pulling in a statistics
// package for them would add a dependency without displacing meaningful
// code.
package correction

import (
	"math"
	"sort"

	"github.com/arnavm/blockify/errors"
)

// Method names a correction procedure in the registry.
type Method string

const (
	Bonferroni Method = "bonferroni"
	Holm       Method = "holm"
	Sidak      Method = "sidak"
	Hochberg   Method = "hochberg"
	BH         Method = "bh"
	BY         Method = "by"
)

// procedure computes rejected/corrected in the original input order.
type procedure func(p []float64, alpha float64) (rejected []bool, corrected []float64)

var registry = map[Method]procedure{
	Bonferroni: bonferroni,
	Holm:       holm,
	Sidak:      sidak,
	Hochberg:   hochberg,
	BH:         benjaminiHochberg,
	BY:         benjaminiYekutieli,
}

// Correct applies the named correction to p (in its original order),
// returning a boolean rejection vector and a corrected p-value vector of
// the same length and order. Unknown method names are InvalidArgument.
func Correct(method Method, p []float64, alpha float64) ([]bool, []float64, error) {
	proc, ok := registry[method]
	if !ok {
		return nil, nil, errors.E(errors.InvalidArgument, "correction.Correct", "unknown correction method: "+string(method))
	}
	if alpha < 0 || alpha > 1 {
		return nil, nil, errors.E(errors.InvalidArgument, "correction.Correct", "alpha must be in [0, 1]")
	}
	rejected, corrected := proc(p, alpha)
	return rejected, corrected, nil
}

func bonferroni(p []float64, alpha float64) ([]bool, []float64) {
	m := float64(len(p))
	rejected := make([]bool, len(p))
	corrected := make([]float64, len(p))
	for i, pv := range p {
		c := clamp01(pv * m)
		corrected[i] = c
		rejected[i] = c <= alpha
	}
	return rejected, corrected
}

func sidak(p []float64, alpha float64) ([]bool, []float64) {
	m := float64(len(p))
	rejected := make([]bool, len(p))
	corrected := make([]float64, len(p))
	for i, pv := range p {
		c := clamp01(1 - math.Pow(1-pv, m))
		corrected[i] = c
		rejected[i] = c <= alpha
	}
	return rejected, corrected
}

// rankedIndices sorts indices 0..len(p)-1 ascending by p-value.
func rankedIndices(p []float64) []int {
	idx := make([]int, len(p))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return p[idx[i]] < p[idx[j]] })
	return idx
}

// holm is the step-down Bonferroni variant: sort ascending, multiply the
// k-th smallest (k = 1..m) by (m-k+1), enforce monotonicity by cumulative
// max.
func holm(p []float64, alpha float64) ([]bool, []float64) {
	m := len(p)
	idx := rankedIndices(p)
	corrected := make([]float64, m)
	running := 0.0
	for rank, i := range idx {
		c := clamp01(p[i] * float64(m-rank))
		if c < running {
			c = running
		}
		running = c
		corrected[i] = c
	}
	rejected := make([]bool, m)
	for i, c := range corrected {
		rejected[i] = c <= alpha
	}
	return rejected, corrected
}

// hochberg is the step-up analogue of Holm: sort descending, multiply the
// k-th largest (1-indexed from the top, i.e. rank m-k+1 ascending) by that
// rank, enforce monotonicity by cumulative min from the top.
func hochberg(p []float64, alpha float64) ([]bool, []float64) {
	m := len(p)
	idx := rankedIndices(p)
	corrected := make([]float64, m)
	running := 1.0
	for rank := m - 1; rank >= 0; rank-- {
		i := idx[rank]
		c := clamp01(p[i] * float64(m-rank))
		if c > running {
			c = running
		}
		running = c
		corrected[i] = c
	}
	rejected := make([]bool, m)
	for i, c := range corrected {
		rejected[i] = c <= alpha
	}
	return rejected, corrected
}

// benjaminiHochberg controls the false discovery rate: sort ascending,
// scale the k-th smallest by m/k, enforce monotonicity by cumulative min
// from the top (largest p-value down).
func benjaminiHochberg(p []float64, alpha float64) ([]bool, []float64) {
	return stepUpFDR(p, alpha, 1.0)
}

// benjaminiYekutieli is BH with the extra harmonic-sum correction factor
// c(m) = sum_{i=1}^{m} 1/i, valid under arbitrary dependence.
func benjaminiYekutieli(p []float64, alpha float64) ([]bool, []float64) {
	m := len(p)
	var harmonic float64
	for i := 1; i <= m; i++ {
		harmonic += 1 / float64(i)
	}
	return stepUpFDR(p, alpha, harmonic)
}

func stepUpFDR(p []float64, alpha, factor float64) ([]bool, []float64) {
	m := len(p)
	idx := rankedIndices(p)
	corrected := make([]float64, m)
	running := 1.0
	for rank := m - 1; rank >= 0; rank-- {
		i := idx[rank]
		c := clamp01(p[i] * factor * float64(m) / float64(rank+1))
		if c > running {
			c = running
		}
		running = c
		corrected[i] = c
	}
	rejected := make([]bool, m)
	for i, c := range corrected {
		rejected[i] = c <= alpha
	}
	return rejected, corrected
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
