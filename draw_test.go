package pixtext

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"

	"github.com/gogpu/pixtext/bdf"
)

const testFont = `STARTFONT 2.1
FONT pixtext test
SIZE 8 75 75
FONTBOUNDINGBOX 12 8 0 0
CHARS 4
STARTCHAR U+0041
ENCODING 65
SWIDTH 500 0
DWIDTH 8 0
BBX 8 8 0 0
BITMAP
FF
81
81
81
81
81
81
FF
ENDCHAR
STARTCHAR U+0049
ENCODING 73
SWIDTH 200 0
DWIDTH 3 0
BBX 2 1 0 0
BITMAP
C0
ENDCHAR
STARTCHAR U+0057
ENCODING 87
SWIDTH 800 0
DWIDTH 13 0
BBX 12 1 0 0
BITMAP
FFF0
ENDCHAR
STARTCHAR U+0082
ENCODING 130
SWIDTH 100 0
DWIDTH 2 0
BBX 1 1 0 0
BITMAP
80
ENDCHAR
ENDFONT
`

func testTable(t *testing.T) *bdf.GlyphTable {
	t.Helper()
	table, err := bdf.Parse(strings.NewReader(testFont))
	if err != nil {
		t.Fatalf("bdf.Parse() failed: %v", err)
	}
	return table
}

// inked returns the coordinates of every pixel equal to ink, row by row.
func inked(b *Buffer, ink Color) [][2]int {
	var out [][2]int
	for y := range b.Height() {
		for x := range b.Width() {
			if b.Pixel(x, y) == ink {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}

func TestDrawTextEmpty(t *testing.T) {
	b := NewBuffer(8, 8)
	b.Clear(White)

	if err := DrawText(b, testTable(t), "", 0, 0, Black); err != nil {
		t.Fatalf("DrawText(\"\") = %v, want nil", err)
	}
	if got := inked(b, Black); len(got) != 0 {
		t.Errorf("empty text changed %d pixels", len(got))
	}
}

func TestDrawTextHollowSquare(t *testing.T) {
	table := testTable(t)
	g, _ := table.Glyph('A')

	b := NewBuffer(8, 8)
	b.Clear(White)
	if err := DrawText(b, table, "A", 0, 0, Black); err != nil {
		t.Fatalf("DrawText(\"A\") failed: %v", err)
	}

	for y := range 8 {
		for x := range 8 {
			set := g.Row(y)[0]&(0x80>>x) != 0
			want := White
			if set {
				want = Black
			}
			if got := b.Pixel(x, y); got != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}

	// Border only: 28 pixels on the edge of an 8x8 square.
	if got := len(inked(b, Black)); got != 28 {
		t.Errorf("%d pixels inked, want 28", got)
	}
}

func TestDrawTextOffset(t *testing.T) {
	b := NewBuffer(20, 4)
	if err := DrawText(b, testTable(t), "I", 5, 2, Red); err != nil {
		t.Fatalf("DrawText() failed: %v", err)
	}
	want := [][2]int{{5, 2}, {6, 2}}
	if diff := cmp.Diff(want, inked(b, Red)); diff != "" {
		t.Errorf("inked pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawTextAdvance(t *testing.T) {
	tests := []struct {
		name string
		opts []DrawOption
		want [][2]int
	}{
		{"fixed default", nil, [][2]int{{0, 0}, {1, 0}, {8, 0}, {9, 0}}},
		{"fixed cell 4", []DrawOption{WithCellWidth(4)}, [][2]int{{0, 0}, {1, 0}, {4, 0}, {5, 0}}},
		{"device width", []DrawOption{WithAdvance(AdvanceDevice)}, [][2]int{{0, 0}, {1, 0}, {3, 0}, {4, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(16, 1)
			if err := DrawText(b, testTable(t), "II", 0, 0, White, tt.opts...); err != nil {
				t.Fatalf("DrawText() failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, inked(b, White)); diff != "" {
				t.Errorf("inked pixels mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDrawTextWideGlyph(t *testing.T) {
	b := NewBuffer(12, 1)
	if err := DrawText(b, testTable(t), "W", 0, 0, White); err != nil {
		t.Fatalf("DrawText(\"W\") failed: %v", err)
	}
	if got := len(inked(b, White)); got != 12 {
		t.Errorf("%d pixels inked, want 12", got)
	}
}

func TestDrawTextUnknownGlyph(t *testing.T) {
	b := NewBuffer(32, 8)
	err := DrawText(b, testTable(t), "AZA", 0, 0, White)

	var ue *UnknownGlyphError
	if !errors.As(err, &ue) {
		t.Fatalf("DrawText() = %v, want *UnknownGlyphError", err)
	}
	if ue.Char != 'Z' || ue.Index != 1 {
		t.Errorf("Char, Index = %q, %d, want 'Z', 1", ue.Char, ue.Index)
	}
	if !errors.Is(err, ErrRaster) {
		t.Error("errors.Is(err, ErrRaster) = false")
	}

	// The first 'A' stays drawn, nothing after the failure is.
	if b.Pixel(0, 0) != White || b.Pixel(7, 7) != White {
		t.Error("glyph before the failing character was not drawn")
	}
	for y := range 8 {
		for x := 8; x < 32; x++ {
			if b.Pixel(x, y) != Black {
				t.Fatalf("pixel (%d, %d) drawn after the failing character", x, y)
			}
		}
	}
}

func TestDrawTextDefaultGlyph(t *testing.T) {
	b := NewBuffer(16, 8)
	if err := DrawText(b, testTable(t), "?A", 0, 0, White, WithDefaultGlyph('A')); err != nil {
		t.Fatalf("DrawText() failed: %v", err)
	}
	if got := len(inked(b, White)); got != 56 {
		t.Errorf("%d pixels inked, want two squares of 28", got)
	}

	err := DrawText(b, testTable(t), "?", 0, 0, White, WithDefaultGlyph('Q'))
	var ue *UnknownGlyphError
	if !errors.As(err, &ue) || ue.Char != '?' {
		t.Errorf("missing default glyph: DrawText() = %v, want UnknownGlyphError for '?'", err)
	}
}

// The last valid column is width-1 and the last valid row height-1; a glyph
// pixel landing exactly on x == width or y == height must fail.
func TestDrawTextBoundaryOffByOne(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		axis  Axis
		value int
	}{
		{"x == width", 1, 0, AxisX, 8},
		{"y == height", 0, 1, AxisY, 8},
		{"negative x", -1, 0, AxisX, -1},
		{"negative y", 0, -1, AxisY, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(8, 8)
			err := DrawText(b, testTable(t), "A", tt.x, tt.y, White)

			var oe *OutOfBoundsError
			if !errors.As(err, &oe) {
				t.Fatalf("DrawText() = %v, want *OutOfBoundsError", err)
			}
			if oe.Axis != tt.axis || oe.Value != tt.value || oe.Char != 'A' {
				t.Errorf("Axis, Value, Char = %v, %d, %q, want %v, %d, 'A'", oe.Axis, oe.Value, oe.Char, tt.axis, tt.value)
			}

			var pe *PixelOutOfBoundsError
			if !errors.As(err, &pe) {
				t.Error("OutOfBoundsError does not wrap *PixelOutOfBoundsError")
			}
			if !errors.Is(err, ErrRaster) {
				t.Error("errors.Is(err, ErrRaster) = false")
			}
		})
	}

	if err := DrawText(NewBuffer(8, 8), testTable(t), "A", 0, 0, White); err != nil {
		t.Errorf("exact fit: DrawText() = %v, want nil", err)
	}
}

func TestDrawTextNewlines(t *testing.T) {
	table := testTable(t)

	b := NewBuffer(8, 16)
	if err := DrawText(b, table, "A\nA", 0, 0, White, WithNewlines(0)); err != nil {
		t.Fatalf("DrawText() failed: %v", err)
	}
	if b.Pixel(0, 8) != White || b.Pixel(7, 15) != White {
		t.Error("second line not drawn one font height below the first")
	}

	b = NewBuffer(8, 16)
	if err := DrawText(b, table, "I\nI", 0, 0, White, WithNewlines(3)); err != nil {
		t.Fatalf("DrawText() failed: %v", err)
	}
	if diff := cmp.Diff([][2]int{{0, 0}, {1, 0}, {0, 3}, {1, 3}}, inked(b, White)); diff != "" {
		t.Errorf("inked pixels mismatch (-want +got):\n%s", diff)
	}

	// Without the option '\n' is an ordinary, here unmapped, character.
	err := DrawText(NewBuffer(16, 16), table, "A\nA", 0, 0, White)
	var ue *UnknownGlyphError
	if !errors.As(err, &ue) || ue.Char != '\n' {
		t.Errorf("DrawText() = %v, want UnknownGlyphError for '\\n'", err)
	}
}

func TestDrawTextCharmap(t *testing.T) {
	table := testTable(t)
	b := NewBuffer(8, 1)

	// 'é' is 0x82 in code page 437.
	if err := DrawText(b, table, "é", 0, 0, White, WithCharmap(charmap.CodePage437)); err != nil {
		t.Fatalf("DrawText() failed: %v", err)
	}
	if b.Pixel(0, 0) != White {
		t.Error("CP437 glyph not drawn")
	}

	err := DrawText(b, table, "é", 0, 0, White)
	var ue *UnknownGlyphError
	if !errors.As(err, &ue) || ue.Char != 'é' {
		t.Errorf("without charmap: DrawText() = %v, want UnknownGlyphError", err)
	}

	err = DrawText(b, table, "€", 0, 0, White, WithCharmap(charmap.CodePage437))
	if !errors.As(err, &ue) || ue.Char != '€' {
		t.Errorf("unencodable rune: DrawText() = %v, want UnknownGlyphError", err)
	}

	// The default glyph goes through the same charmap as the text.
	b = NewBuffer(8, 1)
	err = DrawText(b, table, "€", 0, 0, White, WithCharmap(charmap.CodePage437), WithDefaultGlyph('é'))
	if err != nil {
		t.Fatalf("charmap with default glyph: DrawText() failed: %v", err)
	}
	if b.Pixel(0, 0) != White {
		t.Error("charmap with default glyph: CP437 default glyph not drawn")
	}
}

func TestDrawTextNilTable(t *testing.T) {
	if err := DrawText(NewBuffer(1, 1), nil, "A", 0, 0, White); !errors.Is(err, ErrNilTable) {
		t.Errorf("DrawText(nil table) = %v, want ErrNilTable", err)
	}
}

type failingCanvas struct{ err error }

func (c failingCanvas) SetPixel(int, int, Color) error { return c.err }

func TestDrawTextCanvasError(t *testing.T) {
	sentinel := errors.New("device lost")
	err := DrawText(failingCanvas{sentinel}, testTable(t), "A", 0, 0, White)
	if !errors.Is(err, sentinel) {
		t.Fatalf("DrawText() = %v, want wrapped canvas error", err)
	}
	var oe *OutOfBoundsError
	if errors.As(err, &oe) {
		t.Error("non-bounds canvas error reported as OutOfBoundsError")
	}
}

func TestMeasureText(t *testing.T) {
	table := testTable(t)
	tests := []struct {
		text string
		opts []DrawOption
		w, h int
	}{
		{"", nil, 0, 0},
		{"A", nil, 8, 8},
		{"AI", nil, 10, 8},
		{"II", []DrawOption{WithAdvance(AdvanceDevice)}, 5, 1},
		{"A\nI", []DrawOption{WithNewlines(0)}, 8, 9},
	}
	for _, tt := range tests {
		w, h, err := MeasureText(table, tt.text, tt.opts...)
		if err != nil {
			t.Errorf("MeasureText(%q) failed: %v", tt.text, err)
			continue
		}
		if w != tt.w || h != tt.h {
			t.Errorf("MeasureText(%q) = %d, %d, want %d, %d", tt.text, w, h, tt.w, tt.h)
			continue
		}
		if w > 0 && h > 0 {
			if err := DrawText(NewBuffer(w, h), table, tt.text, 0, 0, White, tt.opts...); err != nil {
				t.Errorf("DrawText into measured %dx%d buffer failed: %v", w, h, err)
			}
		}
	}

	if _, _, err := MeasureText(table, "Z"); err == nil {
		t.Error("MeasureText(\"Z\") succeeded for a missing glyph")
	}
}

func TestParseAdvanceMode(t *testing.T) {
	for _, m := range []AdvanceMode{AdvanceFixed, AdvanceDevice} {
		got, ok := ParseAdvanceMode(m.String())
		if !ok || got != m {
			t.Errorf("ParseAdvanceMode(%q) = %v, %v", m.String(), got, ok)
		}
	}
	if _, ok := ParseAdvanceMode("proportional"); ok {
		t.Error("ParseAdvanceMode accepted an unknown mode")
	}
}

// Round trip: a one-glyph font parsed from text draws its border-only square.
func TestLoadAndDrawRoundTrip(t *testing.T) {
	src := `STARTFONT 2.1
FONT square
SIZE 8 75 75
FONTBOUNDINGBOX 8 8 0 0
CHARS 1
STARTCHAR U+0041
ENCODING 65
SWIDTH 500 0
DWIDTH 8 0
BBX 8 8 0 0
BITMAP
FF
81
81
81
81
81
81
FF
ENDCHAR
ENDFONT
`
	table, err := bdf.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("bdf.Parse() failed: %v", err)
	}

	b := NewBuffer(8, 8)
	if err := DrawText(b, table, "A", 0, 0, White); err != nil {
		t.Fatalf("DrawText() failed: %v", err)
	}

	var got strings.Builder
	for y := range 8 {
		for x := range 8 {
			if b.Pixel(x, y) == White {
				got.WriteByte('#')
			} else {
				got.WriteByte('.')
			}
		}
		got.WriteByte('\n')
	}
	want := "########\n" + strings.Repeat("#......#\n", 6) + "########\n"
	if diff := cmp.Diff(want, got.String()); diff != "" {
		t.Errorf("rendered square mismatch (-want +got):\n%s", diff)
	}
}
