package pixtext

import (
	"image/color"
)

// Color is an opaque 0x00RRGGBB pixel value, the format used by common
// software framebuffers.
type Color uint32

// Common colors.
var (
	Black = Color(0x000000)
	White = Color(0xFFFFFF)
	Red   = Color(0xFF0000)
	Green = Color(0x00FF00)
	Blue  = Color(0x0000FF)
)

// RGB creates a color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// Hex creates a color from a hex string.
// Supports formats: "RGB" and "RRGGBB", with or without a leading '#'.
// Malformed strings yield Black.
func Hex(hex string) Color {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	switch len(hex) {
	case 3:
		if !parseHex(hex[0:1], &r) || !parseHex(hex[1:2], &g) || !parseHex(hex[2:3], &b) {
			return Black
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if !parseHex(hex[0:2], &r) || !parseHex(hex[2:4], &g) || !parseHex(hex[4:6], &b) {
			return Black
		}
	default:
		return Black
	}
	return RGB(uint8(r), uint8(g), uint8(b))
}

// parseHex parses s as hexadecimal into val and reports success.
func parseHex(s string, val *uint32) bool {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return false
		}
	}
	return true
}

// Components returns the 8-bit red, green and blue components.
func (c Color) Components() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA implements color.Color. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.Components()
	return uint32(r8) * 0x101, uint32(g8) * 0x101, uint32(b8) * 0x101, 0xffff
}

// ColorModel converts any color.Color to Color, dropping alpha after
// compositing over black.
var ColorModel = color.ModelFunc(func(c color.Color) color.Color {
	if pc, ok := c.(Color); ok {
		return pc
	}
	r, g, b, _ := c.RGBA()
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
})
