// Command pixtext renders text with a BDF bitmap font.
//
//	pixtext -font cute-mono.bdf -text 'Hello,\nWorld!' -o hello.png
//
// Without -o the result is previewed on the terminal.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	"log"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/charmap"

	"github.com/gogpu/pixtext"
	"github.com/gogpu/pixtext/bdf"
)

var charmaps = map[string]*charmap.Charmap{
	"cp437":  charmap.CodePage437,
	"cp850":  charmap.CodePage850,
	"latin1": charmap.ISO8859_1,
	"latin9": charmap.ISO8859_15,
	"cp1252": charmap.Windows1252,
	"koi8r":  charmap.KOI8R,
}

func main() {
	var (
		fontPath   = flag.String("font", "", "BDF font file")
		text       = flag.String("text", `Hello,\nWorld!`, `text to render; \n starts a new line`)
		x          = flag.Int("x", 0, "start x")
		y          = flag.Int("y", 0, "start y")
		width      = flag.Int("width", 0, "canvas width (0 = fit text)")
		height     = flag.Int("height", 0, "canvas height (0 = fit text)")
		output     = flag.String("o", "", "output PNG file (empty = terminal preview)")
		advance    = flag.String("advance", "fixed", "cursor advance: fixed or device")
		cell       = flag.Int("cell", pixtext.DefaultCellWidth, "cell width for -advance fixed")
		lineHeight = flag.Int("line-height", 0, "line height (0 = font bounding box)")
		fg         = flag.String("fg", "#000000", "ink color")
		bg         = flag.String("bg", "#FFFFFF", "background color")
		fallback   = flag.String("default", "", "character drawn for glyphs missing from the font")
		cmName     = flag.String("charmap", "", "encode text with a single-byte charmap (cp437, cp850, latin1, latin9, cp1252, koi8r)")
		engine     = flag.String("engine", "raster", "raster (fixed cells) or face (x/image font.Face, baseline aligned)")
		encKeys    = flag.Bool("encoding-keys", false, "key glyphs by ENCODING instead of the STARTCHAR name")
		strict     = flag.Bool("strict", false, "reject fonts whose bitmaps or CHARS count disagree with their metrics")
		verbose    = flag.Bool("v", false, "debug logging to stderr")
	)
	flag.Parse()

	if *verbose {
		pixtext.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if *fontPath == "" {
		fmt.Fprintln(os.Stderr, "-font is required")
		flag.Usage()
		os.Exit(2)
	}

	var loadOpts []bdf.Option
	if *encKeys {
		loadOpts = append(loadOpts, bdf.WithEncodingKeys())
	}
	if *strict {
		loadOpts = append(loadOpts, bdf.WithStrict())
	}
	table, err := bdf.Load(*fontPath, loadOpts...)
	if err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	mode, ok := pixtext.ParseAdvanceMode(*advance)
	if !ok {
		log.Fatalf("Unknown advance mode %q", *advance)
	}
	opts := []pixtext.DrawOption{
		pixtext.WithAdvance(mode),
		pixtext.WithCellWidth(*cell),
		pixtext.WithNewlines(*lineHeight),
	}
	if *fallback != "" {
		r, _ := utf8.DecodeRuneInString(*fallback)
		opts = append(opts, pixtext.WithDefaultGlyph(r))
	}
	if *cmName != "" {
		cm, ok := charmaps[*cmName]
		if !ok {
			log.Fatalf("Unknown charmap %q", *cmName)
		}
		opts = append(opts, pixtext.WithCharmap(cm))
	}

	s := strings.ReplaceAll(*text, `\n`, "\n")
	ink, paper := pixtext.Hex(*fg), pixtext.Hex(*bg)

	var img image.Image
	switch *engine {
	case "raster":
		img, err = renderRaster(table, s, *x, *y, *width, *height, ink, paper, opts)
	case "face":
		img, err = renderFace(table, s, *x, *y, *width, *height, *lineHeight, ink, paper)
	default:
		log.Fatalf("Unknown engine %q", *engine)
	}
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if *output == "" {
		if err := preview(os.Stdout, img, ink); err != nil {
			log.Fatalf("Failed to write preview: %v", err)
		}
		return
	}

	buf := toBuffer(img)
	if err := buf.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Text saved to %s (%dx%d)\n", *output, buf.Width(), buf.Height())
}

// renderRaster draws with pixtext.DrawText into a Buffer.
func renderRaster(table *bdf.GlyphTable, s string, x, y, w, h int, ink, paper pixtext.Color, opts []pixtext.DrawOption) (image.Image, error) {
	if w == 0 || h == 0 {
		mw, mh, err := pixtext.MeasureText(table, s, opts...)
		if err != nil {
			return nil, err
		}
		w, h = pick(w, x+mw), pick(h, y+mh)
	}

	buf := pixtext.NewBuffer(w, h)
	buf.Clear(paper)
	if err := pixtext.DrawText(buf, table, s, x, y, ink, opts...); err != nil {
		return nil, err
	}
	return buf, nil
}

// renderFace draws with a font.Drawer over bdf.NewFace, one line at a time,
// with (x, y) as the top-left of the first line box.
func renderFace(table *bdf.GlyphTable, s string, x, y, w, h, lineHeight int, ink, paper pixtext.Color) (image.Image, error) {
	face := bdf.NewFace(table)
	defer func() {
		_ = face.Close()
	}()

	m := face.Metrics()
	step := m.Height
	if lineHeight > 0 {
		step = fixed.I(lineHeight)
	}
	lines := strings.Split(s, "\n")

	if w == 0 || h == 0 {
		var widest fixed.Int26_6
		for _, line := range lines {
			widest = max(widest, font.MeasureString(face, line))
		}
		w = pick(w, x+widest.Ceil())
		h = pick(h, y+(step*fixed.Int26_6(len(lines)-1)+m.Height).Ceil())
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(paper), image.Point{}, draw.Src)

	d := font.Drawer{Dst: dst, Src: image.NewUniform(ink), Face: face}
	for i, line := range lines {
		for _, r := range line {
			if _, ok := face.GlyphAdvance(r); !ok {
				return nil, fmt.Errorf("no glyph for %q", r)
			}
		}
		d.Dot = fixed.Point26_6{
			X: fixed.I(x),
			Y: fixed.I(y) + m.Ascent + step*fixed.Int26_6(i),
		}
		d.DrawString(line)
	}
	return dst, nil
}

func pick(v, fallback int) int {
	if v != 0 {
		return v
	}
	return max(fallback, 1)
}

func toBuffer(img image.Image) *pixtext.Buffer {
	if buf, ok := img.(*pixtext.Buffer); ok {
		return buf
	}
	b := img.Bounds()
	buf := pixtext.NewBuffer(b.Dx(), b.Dy())
	for y := range b.Dy() {
		for x := range b.Dx() {
			c := pixtext.ColorModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(pixtext.Color)
			// x and y stay inside the buffer, so SetPixel cannot fail.
			_ = buf.SetPixel(x, y, c)
		}
	}
	return buf
}
