// Package errors defines the error taxonomy shared by every blockify
// package: InvalidArgument, UnsortedInput, IOFailure, and NumericUnderflow.
// It follows the call conventions of github.com/grailbio/base/errors
// (E(...) constructors, an Once accumulator) but keeps its own small Kind
// enum so callers in cmd/ can map errors to exit codes exactly.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Kind classifies an Error for exit-code mapping and programmatic dispatch.
type Kind int

const (
	// Other is the zero value: an error with no specific kind.
	Other Kind = iota
	// InvalidArgument marks an out-of-range or missing numeric/string
	// parameter, caught before any computation begins.
	InvalidArgument
	// UnsortedInput marks a BED-like table not sorted by (chrom, start).
	UnsortedInput
	// IOFailure marks a read/write failure against the underlying file
	// system or stream.
	IOFailure
	// NumericUnderflow marks a Poisson-tail computation that underflowed to
	// zero. It is handled internally (the 1/FLOAT_MAX substitution) and is
	// never returned to a caller; it exists so tests can assert that.
	NumericUnderflow
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "invalid argument"
	case UnsortedInput:
		return "unsorted input"
	case IOFailure:
		return "I/O failure"
	case NumericUnderflow:
		return "numeric underflow"
	default:
		return "error"
	}
}

// Error is the concrete error type produced by E. Op names the failing
// operation (e.g. "block.Prior"), and Err, if non-nil, is the wrapped
// underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Msg != "" {
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		if e.Msg != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	if b.Len() == 0 {
		return e.Kind.String()
	}
	return b.String()
}

// Unwrap enables errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error { return e.Err }

// E builds an *Error from a mix of arguments: a Kind, an underlying error,
// and any number of strings. When more than one string is given, the first
// becomes Op and the rest are joined as the message, e.g.
//
//	errors.E(errors.InvalidArgument, "block.Prior", "p0 must be in [0, 1]")
//	errors.E(err, "closing", path)
func E(args ...interface{}) error {
	e := &Error{}
	var msgParts []string
	for _, arg := range args {
		switch v := arg.(type) {
		case Kind:
			e.Kind = v
		case *Error:
			e.Err = v
		case error:
			e.Err = v
		case string:
			msgParts = append(msgParts, v)
		default:
			msgParts = append(msgParts, fmt.Sprint(v))
		}
	}
	if len(msgParts) > 0 {
		if e.Op == "" && len(msgParts) > 1 {
			e.Op = msgParts[0]
			msgParts = msgParts[1:]
		}
		e.Msg = strings.Join(msgParts, ": ")
	}
	return e
}

// New creates a plain *Error with no Kind, matching errors.New's shape.
func New(msg string) error {
	return &Error{Msg: msg}
}

// Is reports whether err (or anything it wraps) has the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if as, ok := err.(*Error); ok {
			e = as
			if e.Kind == kind {
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetKind returns the Kind of err, or Other if err is nil or untyped.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// Once accumulates the first non-nil error set on it, matching
// github.com/grailbio/base/errors.Once's usage in this codebase's teacher
// (encoding/fastq/downsample.go, markduplicates/mark_duplicates.go).
type Once struct {
	mu  sync.Mutex
	err error
}

// Set records err as the accumulated error if none has been recorded yet.
func (o *Once) Set(err error) {
	if err == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err == nil {
		o.err = err
	}
}

// Err returns the first error recorded, or nil.
func (o *Once) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}
