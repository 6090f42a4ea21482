package bdf

import (
	"maps"
	"slices"
)

// Vec2 is an integer width vector as used by SWIDTH and DWIDTH.
type Vec2 struct {
	X, Y int
}

// Size is the nominal font size declared by the SIZE directive.
type Size struct {
	Points int
	XRes   int
	YRes   int
}

// BoundingBox describes a pixel extent and its origin offset.
// For glyphs it comes from BBX, for the font from FONTBOUNDINGBOX.
type BoundingBox struct {
	W, H int
	X, Y int
}

// Property is a named integer font property such as FONT_ASCENT.
type Property struct {
	Name  string
	Value int
}

// Glyph is the bitmap and metrics for one character.
//
// The bitmap is stored row by row, top to bottom. Within a row the most
// significant bit of the first byte is the leftmost pixel and every row is
// padded to a whole number of bytes.
type Glyph struct {
	// Rune is the character this glyph renders.
	Rune rune

	// Name is the raw STARTCHAR token.
	Name string

	// Encoding is the font's native code. Negative values mean unencoded.
	Encoding int

	ScalableWidth Vec2
	DeviceWidth   Vec2
	BBox          BoundingBox

	stride int
	bitmap []byte
}

// Height returns the number of bitmap rows.
func (g Glyph) Height() int {
	if g.stride == 0 {
		return 0
	}
	return len(g.bitmap) / g.stride
}

// Stride returns the number of bytes per bitmap row.
func (g Glyph) Stride() int {
	return g.stride
}

// Row returns the bytes of bitmap row i. The slice shares memory with the
// glyph and must not be modified.
func (g Glyph) Row(i int) []byte {
	return g.bitmap[i*g.stride : (i+1)*g.stride]
}

// Bit reports whether the pixel at column x of row y is set.
// Coordinates outside the bitmap report false.
func (g Glyph) Bit(x, y int) bool {
	if x < 0 || y < 0 || x >= g.stride*8 || y >= g.Height() {
		return false
	}
	b := g.bitmap[y*g.stride+x/8]
	return b&(0x80>>(x%8)) != 0
}

// Bitmap returns a copy of the packed bitmap rows.
func (g Glyph) Bitmap() []byte {
	return slices.Clone(g.bitmap)
}

// GlyphTable is an immutable set of glyphs plus font-level metadata.
// It is safe for concurrent use.
type GlyphTable struct {
	version       float64
	description   string
	size          Size
	bbox          BoundingBox
	properties    []Property
	strings       map[string]string
	declaredChars int
	glyphs        map[rune]Glyph
}

// Version returns the STARTFONT format version.
func (t *GlyphTable) Version() float64 { return t.version }

// Description returns the FONT line without the directive name.
func (t *GlyphTable) Description() string { return t.description }

// Size returns the nominal size triple.
func (t *GlyphTable) Size() Size { return t.size }

// BoundingBox returns the global font bounding box.
func (t *GlyphTable) BoundingBox() BoundingBox { return t.bbox }

// DeclaredChars returns the CHARS count. It is informational and may differ
// from Len unless the table was parsed with WithStrict.
func (t *GlyphTable) DeclaredChars() int { return t.declaredChars }

// Properties returns the integer properties in declaration order.
func (t *GlyphTable) Properties() []Property {
	return slices.Clone(t.properties)
}

// Property returns the last value recorded for the named integer property.
func (t *GlyphTable) Property(name string) (int, bool) {
	for i := len(t.properties) - 1; i >= 0; i-- {
		if t.properties[i].Name == name {
			return t.properties[i].Value, true
		}
	}
	return 0, false
}

// StringProperty returns a quoted property from the STARTPROPERTIES block.
func (t *GlyphTable) StringProperty(name string) (string, bool) {
	s, ok := t.strings[name]
	return s, ok
}

// Ascent returns FONT_ASCENT, falling back to the bounding box top.
func (t *GlyphTable) Ascent() int {
	if v, ok := t.Property("FONT_ASCENT"); ok {
		return v
	}
	return t.bbox.H + t.bbox.Y
}

// Descent returns FONT_DESCENT as a positive distance below the baseline,
// falling back to the bounding box bottom.
func (t *GlyphTable) Descent() int {
	if v, ok := t.Property("FONT_DESCENT"); ok {
		return v
	}
	return -t.bbox.Y
}

// Glyph returns the glyph for r.
func (t *GlyphTable) Glyph(r rune) (Glyph, bool) {
	g, ok := t.glyphs[r]
	return g, ok
}

// Len returns the number of glyphs in the table.
func (t *GlyphTable) Len() int { return len(t.glyphs) }

// Runes returns every character in the table in ascending order.
func (t *GlyphTable) Runes() []rune {
	return slices.Sorted(maps.Keys(t.glyphs))
}
