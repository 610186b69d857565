package format

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavm/blockify/genome"
	"github.com/arnavm/blockify/normalize"
	"github.com/arnavm/blockify/peak"
)

func TestReadEventsRoundTrip(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(dir, "events.bed")
	content := "chr1\t1\t2\t1.5\nchr1\t5\t6\nchr2\t0\t1\t2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ctx := vcontext.Background()
	events, err := ReadEvents(ctx, path)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, genome.Event{Chrom: "chr1", Start: 1, End: 2, Weight: 1.5}, events[0])
	assert.Equal(t, genome.Event{Chrom: "chr1", Start: 5, End: 6, Weight: 1}, events[1])
}

func TestReadEventsRejectsTooFewColumns(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(dir, "bad.bed")
	require.NoError(t, os.WriteFile(path, []byte("chr1\t1\n"), 0o644))

	ctx := vcontext.Background()
	_, err := ReadEvents(ctx, path)
	require.Error(t, err)
}

func TestWriteIntervalsThenRead(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(dir, "blocks.bed")
	ctx := vcontext.Background()

	ivs := []genome.Interval{{Chrom: "chr1", Start: 0, End: 10}, {Chrom: "chr1", Start: 10, End: 20}}
	require.NoError(t, WriteIntervals(ctx, path, ivs))

	readBack, err := ReadIntervals(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, ivs, readBack)
}

func TestWriteBedGraph(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(dir, "track.bedgraph")
	ctx := vcontext.Background()

	rows := []normalize.Row{{Chrom: "chr1", Start: 0, End: 10, Value: 1.5}}
	require.NoError(t, WriteBedGraph(ctx, path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t0\t10\t1.5\n", string(data))
}

func TestWritePeaks(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(dir, "peaks.bed")
	ctx := vcontext.Background()

	peaks := []genome.Peak{{Chrom: "chr1", Start: 0, End: 10, Name: "peak_1", Score: 1, Strand: "."}}
	require.NoError(t, WritePeaks(ctx, path, peaks))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "chr1\t0\t10\tpeak_1\t1\t.\n", string(data))
}

func TestWriteIntermediateWithCorrection(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(dir, "intermediate.csv")
	ctx := vcontext.Background()

	rows := []peak.Row{{
		Chrom: "chr1", Start: 0, End: 10,
		Input: 5, Background: 2, NormedBg: 1, NetDensity: 0.4,
		PValue: 0.01, NegLog10PValue: 2,
		CorrectedPValue: 0.05, NegLog10Corrected: 1.3, Rejected: true, HasCorrection: true,
	}}
	require.NoError(t, WriteIntermediate(ctx, path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "corrected_pValue,negLog10corrected,rejected")
	assert.Contains(t, string(data), "chr1,0,10,5,2,1,0.4,0.01,2")
}

func TestGzipRoundTrip(t *testing.T) {
	dir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(dir, "blocks.bed.gz")
	ctx := vcontext.Background()

	ivs := []genome.Interval{{Chrom: "chr1", Start: 0, End: 10}}
	require.NoError(t, WriteIntervals(ctx, path, ivs))

	readBack, err := ReadIntervals(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, ivs, readBack)
}
