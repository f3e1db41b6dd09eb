package engine

import (
	"image"
	"image/color"
)

// PackRGBA packs channels into 0xAARRGGBB.
func PackRGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// UnpackRGBA splits a 0xAARRGGBB color into its channels.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), uint8(c >> 24)
}

// Shade scales the rgb intensity of c by f in [0, 1], keeping alpha.
func Shade(c uint32, f float64) uint32 {
	if f >= 1 {
		return c
	}
	if f < 0 {
		f = 0
	}
	r, g, b, a := UnpackRGBA(c)
	return PackRGBA(uint8(float64(r)*f), uint8(float64(g)*f), uint8(float64(b)*f), a)
}

// ColorBuffer is a row-major frame of packed 0xAARRGGBB pixels.
type ColorBuffer struct {
	Width, Height int
	Pixels        []uint32
}

func NewColorBuffer(width, height int) *ColorBuffer {
	return &ColorBuffer{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

func (b *ColorBuffer) Fill(c uint32) {
	for i := range b.Pixels {
		b.Pixels[i] = c
	}
}

// Set writes one pixel, ignoring coordinates outside the buffer.
func (b *ColorBuffer) Set(x, y int, c uint32) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	b.Pixels[y*b.Width+x] = c
}

// Pixel returns the packed color at (x, y), or 0 outside the buffer.
func (b *ColorBuffer) Pixel(x, y int) uint32 {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return 0
	}
	return b.Pixels[y*b.Width+x]
}

// WriteRGBA converts the buffer into 8-bit RGBA byte order, as expected by
// image.RGBA.Pix and ebiten.Image.WritePixels. dst must hold 4*Width*Height
// bytes.
func (b *ColorBuffer) WriteRGBA(dst []byte) {
	for i, c := range b.Pixels {
		r, g, bl, a := UnpackRGBA(c)
		dst[4*i] = r
		dst[4*i+1] = g
		dst[4*i+2] = bl
		dst[4*i+3] = a
	}
}

// image.Image

func (b *ColorBuffer) ColorModel() color.Model { return color.NRGBAModel }
func (b *ColorBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.Width, b.Height) }
func (b *ColorBuffer) At(x, y int) color.Color {
	r, g, bl, a := UnpackRGBA(b.Pixel(x, y))
	return color.NRGBA{R: r, G: g, B: bl, A: a}
}
