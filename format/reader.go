// Package format implements the thin TSV reader/writer for blockify's
// BED/qBED/CCF-compatible tables (spec.md §6): event tables, block tables,
// bedGraph rate tracks, BED6 peak tables, and the peak-calling intermediate
// CSV. File access goes through github.com/grailbio/base/file so inputs
// and outputs can be local paths or any other backend that package
// supports, with transparent .gz transcoding via klauspost/compress/gzip —
// the same pairing the retrieved corpus uses for every BED-like reader.
package format

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"

	"github.com/arnavm/blockify/errors"
	"github.com/arnavm/blockify/genome"
)

// chainReadCloser wraps a reader (possibly a gzip.Reader layered over the
// underlying file) together with the cleanup needed to close both.
type chainReadCloser struct {
	io.Reader
	closers []func() error
}

func (c *chainReadCloser) Close() error {
	var firstErr error
	for _, close := range c.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// openReader opens path for reading, transparently decompressing .gz.
func openReader(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(errors.IOFailure, "format.openReader", path, err)
	}
	closeFile := func() error { return f.Close(ctx) }

	reader := io.Reader(f.Reader(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			_ = closeFile()
			return nil, errors.E(errors.IOFailure, "format.openReader", path, err)
		}
		return &chainReadCloser{Reader: gz, closers: []func() error{gz.Close, closeFile}}, nil
	}
	return &chainReadCloser{Reader: reader, closers: []func() error{closeFile}}, nil
}

// ReadEvents reads a chrom/start/end/weight[...] TSV table (spec §6 "Input
// event format"). Column 4 (weight) defaults to 1 when absent.
func ReadEvents(ctx context.Context, path string) ([]genome.Event, error) {
	r, err := openReader(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var events []genome.Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, errors.E(errors.IOFailure, "format.ReadEvents", path, "fewer than 3 columns")
		}
		start, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, errors.E(errors.IOFailure, "format.ReadEvents", path, err)
		}
		end, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, errors.E(errors.IOFailure, "format.ReadEvents", path, err)
		}
		weight := 1.0
		if len(fields) >= 4 {
			weight, err = strconv.ParseFloat(fields[3], 64)
			if err != nil {
				return nil, errors.E(errors.IOFailure, "format.ReadEvents", path, err)
			}
		}
		events = append(events, genome.Event{Chrom: fields[0], Start: start, End: end, Weight: weight})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(errors.IOFailure, "format.ReadEvents", path, err)
	}
	return events, nil
}

// ReadIntervals reads a bare chrom/start/end TSV table, e.g. a regions or
// blocks file; extra columns are ignored.
func ReadIntervals(ctx context.Context, path string) ([]genome.Interval, error) {
	events, err := ReadEvents(ctx, path)
	if err != nil {
		return nil, err
	}
	out := make([]genome.Interval, len(events))
	for i, e := range events {
		out[i] = genome.Interval{Chrom: e.Chrom, Start: e.Start, End: e.End}
	}
	return out, nil
}
