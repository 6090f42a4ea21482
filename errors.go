package pixtext

import (
	"errors"
	"fmt"
)

// Sentinel errors for the pixtext package.
var (
	// ErrRaster matches every error DrawText returns for a glyph it could not
	// draw. Use errors.As with *OutOfBoundsError or *UnknownGlyphError.
	ErrRaster = errors.New("pixtext: raster failed")

	// ErrNilTable is returned when DrawText or MeasureText get no glyph table.
	ErrNilTable = errors.New("pixtext: nil glyph table")
)

// Axis names the coordinate that left the canvas.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// PixelOutOfBoundsError is returned by Buffer.SetPixel for a coordinate
// outside the buffer.
type PixelOutOfBoundsError struct {
	Axis  Axis
	Value int
	Limit int
}

func (e *PixelOutOfBoundsError) Error() string {
	return fmt.Sprintf("pixtext: pixel out of bounds at %s = %d (limit %d)", e.Axis, e.Value, e.Limit)
}

// OutOfBoundsError is returned by DrawText the first time a glyph pixel
// falls outside the canvas. Err holds the canvas error.
type OutOfBoundsError struct {
	Axis  Axis
	Value int
	Char  rune
	Index int
	Err   error
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("pixtext: drawing %q at byte %d out of bounds at %s = %d", e.Char, e.Index, e.Axis, e.Value)
}

func (e *OutOfBoundsError) Unwrap() error { return e.Err }

// Is reports ErrRaster as a match.
func (e *OutOfBoundsError) Is(target error) bool { return target == ErrRaster }

// UnknownGlyphError is returned by DrawText when the table has no glyph for
// a character of the text. Index is the byte offset of Char in the text.
type UnknownGlyphError struct {
	Char  rune
	Index int
}

func (e *UnknownGlyphError) Error() string {
	return fmt.Sprintf("pixtext: no glyph for %q (U+%04X) at byte %d", e.Char, e.Char, e.Index)
}

// Is reports ErrRaster as a match.
func (e *UnknownGlyphError) Is(target error) bool { return target == ErrRaster }
