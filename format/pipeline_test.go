package format

import (
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavm/blockify/correction"
	"github.com/arnavm/blockify/normalize"
	"github.com/arnavm/blockify/peak"
	"github.com/arnavm/blockify/segment"
)

// TestPipelineOnMiniFixtures drives segment -> normalize -> call end to end
// against small stand-in fixtures for the Python suite's CBF1/dSIR4 qBED
// files (scenarios B/E/F; the full ~20k-row fixtures aren't in the retrieval
// pack, so this checks shape and invariants rather than the published
// scenario totals).
func TestPipelineOnMiniFixtures(t *testing.T) {
	ctx := vcontext.Background()

	signal, err := ReadEvents(ctx, "../testdata/S288C_CBF1_mini.qbed")
	require.NoError(t, err)
	background, err := ReadEvents(ctx, "../testdata/S288C_dSIR4_mini.qbed")
	require.NoError(t, err)

	p0 := 0.05
	reg, err := segment.Segment(signal, segment.Options{Method: segment.MethodPELT, P0: &p0})
	require.NoError(t, err)
	require.Greater(t, reg.TotalBlocks(), 1, "clustered fixture should split into more than one block")
	blocks := reg.Blocks()

	rows, err := normalize.Normalize(signal, blocks, normalize.Options{LibraryFactor: 1e6})
	require.NoError(t, err)
	require.Len(t, rows, len(blocks))
	var total float64
	scale := float64(len(signal)) / 1e6
	for _, r := range rows {
		total += r.Value * scale
	}
	assert.InDelta(t, float64(len(signal)), total, 1e-6)

	alpha := 0.05
	result, err := peak.Call(signal, blocks, background, peak.Options{
		Measure:     peak.Enrichment,
		Alpha:       &alpha,
		Correction:  correction.Bonferroni,
		Pseudocount: 1,
	})
	require.NoError(t, err)
	require.Len(t, result.Intermediate, len(blocks))
	for i := 1; i < len(result.Peaks); i++ {
		prev, cur := result.Peaks[i-1], result.Peaks[i]
		if prev.Chrom == cur.Chrom {
			assert.LessOrEqual(t, prev.Start, cur.Start)
		}
	}
}
