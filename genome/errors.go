package genome

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrContigCountMismatch is returned when the parse pass finds a
// different number of headers than the counting pass did.
var ErrContigCountMismatch = errors.New("contig count changed between counting pass and parse pass")

// FormatError reports input that cannot be parsed as FASTA (or as a
// tagged FASTA header).
type FormatError struct {
	Line int // 1-based, 0 if unknown
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// MissingTagError means a tag was configured for contig naming, but a
// header did not contain it.
type MissingTagError struct {
	Tag    string
	Header string
}

func (e *MissingTagError) Error() string {
	return fmt.Sprintf("unable to find tag %q in contig %q", e.Tag, e.Header)
}

// IOError wraps a failure to open, read, seek, or write a file.
type IOError struct {
	Kind string // "open", "read", "seek", "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
