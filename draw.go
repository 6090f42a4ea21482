package pixtext

import (
	"errors"
	"fmt"

	"github.com/gogpu/pixtext/bdf"
)

// DrawText rasterizes text into dst with its first cell's top-left corner at
// (x, y). For every set bit of every glyph row, most significant bit first,
// the pixel at (x+cursor+bit, y+row) is set to ink; the cursor then advances
// according to the configured AdvanceMode.
//
// Drawing stops at the first failure. Characters before the failing one stay
// drawn. A missing glyph yields *UnknownGlyphError, a pixel outside dst
// yields *OutOfBoundsError wrapping the canvas error. An empty text touches
// nothing.
func DrawText(dst Canvas, table *bdf.GlyphTable, text string, x, y int, ink Color, opts ...DrawOption) error {
	if table == nil {
		return ErrNilTable
	}
	cfg := newDrawConfig(table, opts)

	cursorX, cursorY := 0, 0
	for i, r := range text {
		if cfg.newlines && r == '\n' {
			cursorX = 0
			cursorY += cfg.lineHeight
			continue
		}

		g, err := cfg.lookup(table, r, i)
		if err != nil {
			return err
		}

		if err := drawGlyph(dst, g, x+cursorX, y+cursorY, ink); err != nil {
			var pe *PixelOutOfBoundsError
			if errors.As(err, &pe) {
				return &OutOfBoundsError{Axis: pe.Axis, Value: pe.Value, Char: r, Index: i, Err: err}
			}
			return fmt.Errorf("pixtext: drawing %q: %w", r, err)
		}
		cursorX += cfg.advanceOf(g)
	}
	return nil
}

// MeasureText returns the size of the smallest canvas, anchored at (0, 0),
// that DrawText with the same text and options can draw into without going
// out of bounds.
func MeasureText(table *bdf.GlyphTable, text string, opts ...DrawOption) (width, height int, err error) {
	var m extent
	if err := DrawText(&m, table, text, 0, 0, Black, opts...); err != nil {
		return 0, 0, err
	}
	return m.w, m.h, nil
}

func drawGlyph(dst Canvas, g bdf.Glyph, x, y int, ink Color) error {
	for row := range g.Height() {
		for col, bits := range g.Row(row) {
			for b := range 8 {
				if bits&(0x80>>b) == 0 {
					continue
				}
				if err := dst.SetPixel(x+col*8+b, y+row, ink); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (c *drawConfig) lookup(table *bdf.GlyphTable, r rune, index int) (bdf.Glyph, error) {
	if g, ok := c.glyph(table, r); ok {
		return g, nil
	}
	if c.hasFallback {
		if g, ok := c.glyph(table, c.fallback); ok {
			Logger().Debug("pixtext: substituting default glyph", "char", string(r), "default", string(c.fallback))
			return g, nil
		}
	}
	return bdf.Glyph{}, &UnknownGlyphError{Char: r, Index: index}
}

// glyph looks r up in table, encoding it with the configured charmap first.
func (c *drawConfig) glyph(table *bdf.GlyphTable, r rune) (bdf.Glyph, bool) {
	if c.charmap != nil {
		b, ok := c.charmap.EncodeRune(r)
		if !ok {
			return bdf.Glyph{}, false
		}
		r = rune(b)
	}
	return table.Glyph(r)
}

func (c *drawConfig) advanceOf(g bdf.Glyph) int {
	if c.advance == AdvanceDevice {
		return g.DeviceWidth.X
	}
	return c.cellWidth
}

// extent is a Canvas that records how far pixels reach instead of storing
// them. Negative coordinates are out of bounds as for Buffer.
type extent struct {
	w, h int
}

func (e *extent) SetPixel(x, y int, _ Color) error {
	if x < 0 {
		return &PixelOutOfBoundsError{Axis: AxisX, Value: x}
	}
	if y < 0 {
		return &PixelOutOfBoundsError{Axis: AxisY, Value: y}
	}
	e.w = max(e.w, x+1)
	e.h = max(e.h, y+1)
	return nil
}
