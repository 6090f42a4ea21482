package bdf

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/pixtext/cache"
)

// Face adapts a GlyphTable to golang.org/x/image/font.Face so it can be used
// with font.Drawer and anything else built on that interface.
//
// Unlike the fixed-cell rasterizer in package pixtext, Face honours each
// glyph's BBX offsets and DWIDTH advance, placing bitmaps relative to the
// baseline.
//
// Face is safe for concurrent use.
type Face struct {
	table *GlyphTable
	masks *cache.Cache[rune, *image.Alpha]
}

var _ font.Face = (*Face)(nil)

// NewFace returns a font.Face backed by t.
func NewFace(t *GlyphTable) *Face {
	return &Face{
		table: t,
		masks: cache.New[rune, *image.Alpha](t.Len()),
	}
}

// Close implements font.Face. It drops the cached masks.
func (f *Face) Close() error {
	f.masks.Clear()
	return nil
}

// Glyph implements font.Face.
func (f *Face) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {

	g, ok := f.table.Glyph(r)
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}

	x := dot.X.Round() + g.BBox.X
	y := dot.Y.Round() - (g.BBox.Y + g.BBox.H)
	m := f.masks.GetOrCreate(r, func() *image.Alpha { return glyphMask(g) })

	dr = image.Rect(x, y, x+m.Rect.Dx(), y+m.Rect.Dy())
	return dr, m, image.Point{}, fixed.I(g.DeviceWidth.X), true
}

// GlyphBounds implements font.Face. Bounds are relative to the dot, with y
// pointing down.
func (f *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	g, ok := f.table.Glyph(r)
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	bounds = fixed.Rectangle26_6{
		Min: fixed.P(g.BBox.X, -(g.BBox.Y + g.BBox.H)),
		Max: fixed.P(g.BBox.X+g.BBox.W, -g.BBox.Y),
	}
	return bounds, fixed.I(g.DeviceWidth.X), true
}

// GlyphAdvance implements font.Face.
func (f *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	g, ok := f.table.Glyph(r)
	if !ok {
		return 0, false
	}
	return fixed.I(g.DeviceWidth.X), true
}

// Kern implements font.Face. Bitmap fonts carry no kerning.
func (f *Face) Kern(r0, r1 rune) fixed.Int26_6 {
	return 0
}

// Metrics implements font.Face.
func (f *Face) Metrics() font.Metrics {
	ascent, descent := f.table.Ascent(), f.table.Descent()
	m := font.Metrics{
		Height:     fixed.I(ascent + descent),
		Ascent:     fixed.I(ascent),
		Descent:    fixed.I(descent),
		CaretSlope: image.Point{X: 0, Y: 1},
	}
	if v, ok := f.table.Property("X_HEIGHT"); ok {
		m.XHeight = fixed.I(v)
	}
	if v, ok := f.table.Property("CAP_HEIGHT"); ok {
		m.CapHeight = fixed.I(v)
	}
	return m
}

// glyphMask expands a packed glyph bitmap into an opaque/transparent mask
// clipped to the BBX width.
func glyphMask(g Glyph) *image.Alpha {
	w := min(g.BBox.W, g.Stride()*8)
	h := g.Height()
	m := image.NewAlpha(image.Rect(0, 0, max(w, 0), h))
	for y := range h {
		for x := range w {
			if g.Bit(x, y) {
				m.Pix[y*m.Stride+x] = 0xff
			}
		}
	}
	return m
}
