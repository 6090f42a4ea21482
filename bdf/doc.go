// Package bdf loads bitmap fonts in the Glyph Bitmap Distribution Format.
//
// A BDF file is line oriented: every line starts with a directive name
// followed by space-separated arguments. The font header (STARTFONT, FONT,
// SIZE, FONTBOUNDINGBOX, CHARS, properties) is followed by one record per
// character delimited by STARTCHAR and ENDCHAR, whose BITMAP section lists
// one hexadecimal row per scanline.
//
// # Example usage
//
//	table, err := bdf.Load("fonts/cute-mono.bdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, ok := table.Glyph('A')
//
// Load and Parse read the whole description, run a single forward pass over
// its lines and return an immutable GlyphTable. Characters are keyed by the
// code point decoded from the STARTCHAR token (see DecodeCodePoint) unless
// WithEncodingKeys is given.
//
// NewFace wraps a table as a golang.org/x/image/font.Face.
package bdf
