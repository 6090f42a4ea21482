package main

import (
	"bufio"
	"image"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/gogpu/pixtext"
)

// preview prints img as text, one character per pixel. On a terminal ink
// pixels are full blocks and rows are cut to the terminal width; otherwise
// '#' and '.' are used and nothing is cut.
func preview(w io.Writer, img image.Image, ink pixtext.Color) error {
	on, off := "#", "."
	cols := -1
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		on, off = "█", " "
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil {
			cols = tw
		}
	}

	bw := bufio.NewWriter(w)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		n := b.Dx()
		if cols >= 0 {
			n = min(n, cols)
		}
		for x := b.Min.X; x < b.Min.X+n; x++ {
			if pixtext.ColorModel.Convert(img.At(x, y)) == ink {
				_, _ = bw.WriteString(on)
			} else {
				_, _ = bw.WriteString(off)
			}
		}
		_ = bw.WriteByte('\n')
	}
	return bw.Flush()
}
