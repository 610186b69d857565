package segment

// Grid is the cell grid derived from a chromosome's ordered coordinate
// sequence x (spec §3). Cell edges e[0..n] satisfy e[0] = x[0],
// e[n] = x[n-1], and interior e[k] = (x[k-1]+x[k]) / 2. Cumulative sums S
// (counts) and W (widths) allow O(1) block statistics via Count/Width.
type Grid struct {
	N     int
	Edges []float64 // len N+1
	S     []float64 // prefix counts, len N+1, S[0] == 0
	W     []float64 // prefix widths, len N+1, W[0] == 0
}

// NewGrid builds the cell grid for a non-decreasing coordinate sequence x.
// x must have at least one element.
func NewGrid(x []int64) *Grid {
	n := len(x)
	edges := make([]float64, n+1)
	edges[0] = float64(x[0])
	edges[n] = float64(x[n-1])
	for k := 1; k < n; k++ {
		edges[k] = float64(x[k-1]+x[k]) / 2
	}
	s := make([]float64, n+1)
	w := make([]float64, n+1)
	for k := 1; k <= n; k++ {
		s[k] = s[k-1] + 1
		w[k] = w[k-1] + (edges[k] - edges[k-1])
	}
	return &Grid{N: n, Edges: edges, S: s, W: w}
}

// Count returns N(a,b] = S[b] - S[a], the number of events in cells a+1..b.
func (g *Grid) Count(a, b int) float64 { return g.S[b] - g.S[a] }

// Width returns T(a,b] = W[b] - W[a], the total cell width of cells a+1..b.
func (g *Grid) Width(a, b int) float64 { return g.W[b] - g.W[a] }

// Coordinate maps a cell-index change point (0..N) back to original
// coordinate space: 0 maps to the first data point, N to the last, and any
// interior index to its cell edge (truncated to an integer, per §4.3).
func (g *Grid) Coordinate(idx int) int64 {
	return int64(g.Edges[idx])
}
