package pixtext

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Canvas is the pixel-write primitive text is rasterized through.
// SetPixel must fail, not clip or wrap, when (x, y) is outside the canvas.
type Canvas interface {
	SetPixel(x, y int, c Color) error
}

// Buffer is a flat, row-major pixel buffer, the shape a window or
// framebuffer presents. Buffer is not safe for concurrent mutation.
type Buffer struct {
	width  int
	height int
	pix    []Color
}

var (
	_ Canvas      = (*Buffer)(nil)
	_ image.Image = (*Buffer)(nil)
)

// NewBuffer creates a buffer of the given size filled with Black.
func NewBuffer(width, height int) *Buffer {
	width, height = max(width, 0), max(height, 0)
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]Color, width*height),
	}
}

// Width returns the width of the buffer.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the height of the buffer.
func (b *Buffer) Height() int {
	return b.height
}

// Pix returns the underlying pixels, row by row. Pixel (x, y) is at index
// y*Width()+x.
func (b *Buffer) Pix() []Color {
	return b.pix
}

// SetPixel sets a single pixel. It returns a *PixelOutOfBoundsError when
// x is outside [0, Width()) or y is outside [0, Height()); the buffer is not
// touched in that case.
func (b *Buffer) SetPixel(x, y int, c Color) error {
	if x < 0 || x >= b.width {
		return &PixelOutOfBoundsError{Axis: AxisX, Value: x, Limit: b.width}
	}
	if y < 0 || y >= b.height {
		return &PixelOutOfBoundsError{Axis: AxisY, Value: y, Limit: b.height}
	}
	b.pix[y*b.width+x] = c
	return nil
}

// Pixel returns the color at (x, y), or Black outside the buffer.
func (b *Buffer) Pixel(x, y int) Color {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Black
	}
	return b.pix[y*b.width+x]
}

// Clear fills the entire buffer with a color.
func (b *Buffer) Clear(c Color) {
	for i := range b.pix {
		b.pix[i] = c
	}
}

// ToImage converts the buffer to an image.RGBA.
func (b *Buffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for i, c := range b.pix {
		r, g, bl := c.Components()
		o := i * 4
		img.Pix[o+0] = r
		img.Pix[o+1] = g
		img.Pix[o+2] = bl
		img.Pix[o+3] = 0xff
	}
	return img
}

// SavePNG saves the buffer to a PNG file.
func (b *Buffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, b.ToImage()); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	return b.Pixel(x, y)
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return ColorModel
}
