package segment

import (
	"math"

	"github.com/arnavm/blockify/block"
)

// runOP implements Optimal Partitioning (spec §4.3): an exact Θ(n²) dynamic
// program over change-point cell indices. best[0] = -gamma; for k = 1..n,
// best[k] = max over 0 <= r < k of (best[r] + fitness(r,k] - gamma). The
// reported best fitness is best[n].
func runOP(g *Grid, gamma float64) (changePoints []int, bestFitness float64) {
	n := g.N
	best := make([]float64, n+1)
	prev := make([]int, n+1)
	best[0] = -gamma

	for k := 1; k <= n; k++ {
		bestVal := math.Inf(-1)
		bestR := 0
		for r := 0; r < k; r++ {
			v := best[r] + block.Fitness(g.Count(r, k), g.Width(r, k)) - gamma
			if v > bestVal {
				bestVal = v
				bestR = r
			}
		}
		best[k] = bestVal
		prev[k] = bestR
	}
	return reconstruct(prev, n), best[n]
}

// reconstruct walks prev backward from n to 0 and returns the ascending
// change-point sequence 0 = cp[0] < cp[1] < ... < cp[m] = n.
func reconstruct(prev []int, n int) []int {
	cps := []int{n}
	for k := n; k > 0; {
		k = prev[k]
		cps = append(cps, k)
	}
	for i, j := 0, len(cps)-1; i < j; i, j = i+1, j-1 {
		cps[i], cps[j] = cps[j], cps[i]
	}
	return cps
}
