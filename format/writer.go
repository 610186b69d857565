package format

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/klauspost/compress/gzip"

	"github.com/arnavm/blockify/errors"
	"github.com/arnavm/blockify/genome"
	"github.com/arnavm/blockify/normalize"
	"github.com/arnavm/blockify/peak"
)

// openWriter opens path for writing, transparently gzip-compressing
// output whose name ends in .gz.
func openWriter(ctx context.Context, path string) (io.WriteCloser, error) {
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(errors.IOFailure, "format.openWriter", path, err)
	}
	closeFile := func() error { return f.Close(ctx) }

	writer := io.Writer(f.Writer(ctx))
	if fileio.DetermineType(path) == fileio.Gzip {
		gz := gzip.NewWriter(writer)
		return chainWriteCloser{gz, []func() error{gz.Close, closeFile}}, nil
	}
	return chainWriteCloser{writer, []func() error{closeFile}}, nil
}

type chainWriteCloser struct {
	io.Writer
	closers []func() error
}

func (c chainWriteCloser) Close() error {
	var firstErr error
	for _, close := range c.closers {
		if err := close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// WriteIntervals writes a bare chrom/start/end TSV table (spec §6 "Blocks
// output").
func WriteIntervals(ctx context.Context, path string, ivs []genome.Interval) error {
	w, err := openWriter(ctx, path)
	if err != nil {
		return err
	}
	defer w.Close()

	buf := bufio.NewWriter(w)
	for _, iv := range ivs {
		if _, err := fmt.Fprintf(buf, "%s\t%d\t%d\n", iv.Chrom, iv.Start, iv.End); err != nil {
			return errors.E(errors.IOFailure, "format.WriteIntervals", path, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return errors.E(errors.IOFailure, "format.WriteIntervals", path, err)
	}
	return nil
}

// WriteEvents writes a chrom/start/end/weight TSV table, the same shape as
// the input event format (spec §6), used by downsample's output.
func WriteEvents(ctx context.Context, path string, events []genome.Event) error {
	w, err := openWriter(ctx, path)
	if err != nil {
		return err
	}
	defer w.Close()

	buf := bufio.NewWriter(w)
	for _, e := range events {
		if _, err := fmt.Fprintf(buf, "%s\t%d\t%d\t%g\n", e.Chrom, e.Start, e.End, e.Weight); err != nil {
			return errors.E(errors.IOFailure, "format.WriteEvents", path, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return errors.E(errors.IOFailure, "format.WriteEvents", path, err)
	}
	return nil
}

// WriteBedGraph writes a chrom/start/end/value TSV table (spec §6
// "bedGraph output").
func WriteBedGraph(ctx context.Context, path string, rows []normalize.Row) error {
	w, err := openWriter(ctx, path)
	if err != nil {
		return err
	}
	defer w.Close()

	buf := bufio.NewWriter(w)
	for _, r := range rows {
		if _, err := fmt.Fprintf(buf, "%s\t%d\t%d\t%g\n", r.Chrom, r.Start, r.End, r.Value); err != nil {
			return errors.E(errors.IOFailure, "format.WriteBedGraph", path, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return errors.E(errors.IOFailure, "format.WriteBedGraph", path, err)
	}
	return nil
}

// WritePeaks writes a BED6 TSV table (spec §6 "Peaks output").
func WritePeaks(ctx context.Context, path string, peaks []genome.Peak) error {
	w, err := openWriter(ctx, path)
	if err != nil {
		return err
	}
	defer w.Close()

	buf := bufio.NewWriter(w)
	for _, p := range peaks {
		if _, err := fmt.Fprintf(buf, "%s\t%d\t%d\t%s\t%g\t%s\n", p.Chrom, p.Start, p.End, p.Name, p.Score, p.Strand); err != nil {
			return errors.E(errors.IOFailure, "format.WritePeaks", path, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return errors.E(errors.IOFailure, "format.WritePeaks", path, err)
	}
	return nil
}

// WriteIntermediate writes the peak-calling intermediate CSV (spec §6
// "Intermediate CSV"): a header row, then one row per scored region.
// Correction columns are included only if at least one row carries them.
func WriteIntermediate(ctx context.Context, path string, rows []peak.Row) error {
	w, err := openWriter(ctx, path)
	if err != nil {
		return err
	}
	defer w.Close()

	hasCorrection := false
	for _, r := range rows {
		if r.HasCorrection {
			hasCorrection = true
			break
		}
	}

	buf := bufio.NewWriter(w)
	header := "chrom,start,end,Input,Background,Normed_bg,Net_density,pValue,negLog10pValue"
	if hasCorrection {
		header += ",corrected_pValue,negLog10corrected,rejected"
	}
	if _, err := fmt.Fprintln(buf, header); err != nil {
		return errors.E(errors.IOFailure, "format.WriteIntermediate", path, err)
	}
	for _, r := range rows {
		line := fmt.Sprintf("%s,%d,%d,%g,%g,%g,%g,%g,%g",
			r.Chrom, r.Start, r.End, r.Input, r.Background, r.NormedBg, r.NetDensity, r.PValue, r.NegLog10PValue)
		if hasCorrection {
			line += fmt.Sprintf(",%g,%g,%t", r.CorrectedPValue, r.NegLog10Corrected, r.Rejected)
		}
		if _, err := fmt.Fprintln(buf, line); err != nil {
			return errors.E(errors.IOFailure, "format.WriteIntermediate", path, err)
		}
	}
	if err := buf.Flush(); err != nil {
		return errors.E(errors.IOFailure, "format.WriteIntermediate", path, err)
	}
	return nil
}
