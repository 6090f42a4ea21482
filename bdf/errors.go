package bdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for the bdf package.
var (
	// ErrFontLoad matches every error returned by Load and Parse.
	// Use errors.As with *IOError or *MalformedRecordError for details.
	ErrFontLoad = errors.New("bdf: font load failed")

	// ErrMissingField is wrapped by MalformedRecordError when a character record
	// or the font header ends before a required directive was seen.
	ErrMissingField = errors.New("bdf: missing required field")
)

// IOError is returned when the font resource cannot be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("bdf: read font: %v", e.Err)
	}
	return fmt.Sprintf("bdf: read font %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is reports ErrFontLoad as a match so callers can test the whole family.
func (e *IOError) Is(target error) bool { return target == ErrFontLoad }

// MalformedRecordError is returned when a line of the description cannot be
// interpreted. Line is 1-based; a missing font-level field is reported one
// past the last line.
type MalformedRecordError struct {
	Line      int
	Directive string
	Reason    string
	Err       error
}

func (e *MalformedRecordError) Error() string {
	msg := fmt.Sprintf("bdf: line %d", e.Line)
	if e.Directive != "" {
		msg += ": " + e.Directive
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// Is reports ErrFontLoad as a match so callers can test the whole family.
func (e *MalformedRecordError) Is(target error) bool { return target == ErrFontLoad }
