package pixtext

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/gogpu/pixtext/bdf"
)

// DefaultCellWidth is the fixed character advance in pixels.
const DefaultCellWidth = 8

// AdvanceMode selects how far the cursor moves after each character.
type AdvanceMode int

const (
	// AdvanceFixed moves by a constant cell width (DefaultCellWidth unless
	// changed with WithCellWidth), whatever the glyph declares.
	AdvanceFixed AdvanceMode = iota

	// AdvanceDevice moves by the horizontal DWIDTH of each glyph.
	AdvanceDevice
)

// String returns the mode name as accepted by ParseAdvanceMode.
func (m AdvanceMode) String() string {
	switch m {
	case AdvanceFixed:
		return "fixed"
	case AdvanceDevice:
		return "device"
	default:
		return "unknown"
	}
}

// ParseAdvanceMode parses "fixed" or "device".
func ParseAdvanceMode(s string) (AdvanceMode, bool) {
	switch s {
	case "fixed":
		return AdvanceFixed, true
	case "device":
		return AdvanceDevice, true
	}
	return AdvanceFixed, false
}

// DrawOption configures DrawText and MeasureText.
//
// Example:
//
//	err := pixtext.DrawText(buf, table, "Hello,\nWorld!", 0, 0, pixtext.Black,
//	    pixtext.WithAdvance(pixtext.AdvanceDevice),
//	    pixtext.WithNewlines(0))
type DrawOption func(*drawConfig)

// drawConfig holds configuration for one DrawText call.
type drawConfig struct {
	advance     AdvanceMode
	cellWidth   int
	newlines    bool
	lineHeight  int
	fallback    rune
	hasFallback bool
	charmap     *charmap.Charmap
}

// defaultDrawConfig returns the default draw configuration.
func defaultDrawConfig() drawConfig {
	return drawConfig{
		advance:   AdvanceFixed,
		cellWidth: DefaultCellWidth,
	}
}

func newDrawConfig(table *bdf.GlyphTable, opts []DrawOption) drawConfig {
	cfg := defaultDrawConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.newlines && cfg.lineHeight <= 0 {
		cfg.lineHeight = max(table.BoundingBox().H, 1)
	}
	return cfg
}

// WithAdvance sets the cursor advance mode. The default is AdvanceFixed.
func WithAdvance(m AdvanceMode) DrawOption {
	return func(c *drawConfig) {
		c.advance = m
	}
}

// WithCellWidth sets the advance used by AdvanceFixed.
func WithCellWidth(px int) DrawOption {
	return func(c *drawConfig) {
		c.cellWidth = px
	}
}

// WithNewlines makes '\n' return the cursor to the starting x and move it
// down by lineHeight pixels. A lineHeight of 0 uses the font bounding box
// height. Without this option '\n' is looked up like any other character.
func WithNewlines(lineHeight int) DrawOption {
	return func(c *drawConfig) {
		c.newlines = true
		c.lineHeight = lineHeight
	}
}

// WithDefaultGlyph draws the glyph for r in place of characters the table
// does not contain. Without it such characters fail with UnknownGlyphError.
func WithDefaultGlyph(r rune) DrawOption {
	return func(c *drawConfig) {
		c.fallback = r
		c.hasFallback = true
	}
}

// WithCharmap encodes every character of the text with cm before looking it
// up, so text can be written in UTF-8 against a font keyed by a single-byte
// encoding such as charmap.CodePage437. Characters cm cannot encode are
// reported as unknown.
func WithCharmap(cm *charmap.Charmap) DrawOption {
	return func(c *drawConfig) {
		c.charmap = cm
	}
}
