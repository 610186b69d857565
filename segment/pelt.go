package segment

import (
	"math"

	"github.com/arnavm/blockify/block"
)

// runPELT implements Pruned Exact Linear Time (spec §4.4): the same
// recurrence as OP, but restricted at each step to a pruned candidate set
// R_k rather than the full 0..k-1 range. The pruning keeps r admissible
// exactly when best[r] + fitness(r,k] >= best[k] (spec's literal pruning
// rule); this is safe because the Poisson block cost is additive across
// blocks and gamma is a fixed per-change-point penalty.
//
// PELT and OP must return identical change points for the same (x, gamma).
// The reported best fitness differs by sign: OP reports best[n] directly;
// PELT reports -best[n], matching the "PELT works in cost-minimization
// space" sign convention the spec calls out (fitness_OP == -fitness_PELT).
func runPELT(g *Grid, gamma float64) (changePoints []int, reportedFitness float64) {
	n := g.N
	best := make([]float64, n+1)
	prev := make([]int, n+1)
	best[0] = -gamma

	candidates := []int{0}
	for k := 1; k <= n; k++ {
		bestVal := math.Inf(-1)
		bestR := 0
		for _, r := range candidates {
			v := best[r] + block.Fitness(g.Count(r, k), g.Width(r, k)) - gamma
			if v > bestVal {
				bestVal = v
				bestR = r
			}
		}
		best[k] = bestVal
		prev[k] = bestR

		// Prune: keep r admissible only while best[r] + fitness(r,k] >= best[k].
		next := candidates[:0:0]
		for _, r := range candidates {
			if best[r]+block.Fitness(g.Count(r, k), g.Width(r, k)) >= best[k] {
				next = append(next, r)
			}
		}
		next = append(next, k)
		candidates = next
	}
	return reconstruct(prev, n), -best[n]
}
