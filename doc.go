// Package pixtext draws text from BDF bitmap fonts into pixel buffers.
//
// # Overview
//
// Fonts are loaded once with package bdf into an immutable GlyphTable.
// DrawText then rasterizes strings from that table into any Canvas, usually
// a Buffer: a flat, row-major slice of 0x00RRGGBB pixels of the kind a
// software framebuffer or window presents.
//
// # Quick Start
//
//	table, err := bdf.Load("fonts/retro-pixel-cute-mono.bdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	buf := pixtext.NewBuffer(500, 500)
//	buf.Clear(pixtext.White)
//	if err := pixtext.DrawText(buf, table, "Hello,", 0, 0, pixtext.Black); err != nil {
//	    log.Fatal(err)
//	}
//	if err := pixtext.DrawText(buf, table, "World!", 0, 16, pixtext.Black); err != nil {
//	    log.Fatal(err)
//	}
//
// # Layout
//
// By default every character occupies a fixed 8 pixel cell and '\n' has no
// special meaning, so multi-line text is drawn with one call per line.
// WithAdvance(AdvanceDevice) steps by each glyph's DWIDTH instead, and
// WithNewlines turns '\n' into a line break. Glyph bitmaps are placed at the
// top-left of their cell; BBX offsets are not applied. Use bdf.NewFace with
// golang.org/x/image/font for baseline-aligned drawing.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Errors
//
// Every pixel write is bounds checked and the first pixel outside the canvas
// aborts the call with *OutOfBoundsError; there is no clipping. Characters
// missing from the font fail with *UnknownGlyphError unless a default glyph
// is configured with WithDefaultGlyph.
package pixtext
