package engine

import (
	"fmt"
	"image"
	"math"
)

// Texture is a decoded wall image in packed 0xAARRGGBB pixels.
type Texture struct {
	Width, Height int
	Pixels        []uint32
}

func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: make([]uint32, width*height),
	}
}

// TextureFromImage copies any decoded image into a Texture.
func TextureFromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	t := NewTexture(bounds.Dx(), bounds.Dy())
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			t.Pixels[y*t.Width+x] = PackRGBA(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
		}
	}
	return t
}

// At returns the texel at (x, y) with both coordinates clamped to the image.
func (t *Texture) At(x, y int) uint32 {
	x = clampInt(x, 0, t.Width-1)
	y = clampInt(y, 0, t.Height-1)
	return t.Pixels[y*t.Width+x]
}

func (t *Texture) Set(x, y int, c uint32) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	t.Pixels[y*t.Width+x] = c
}

// Column maps a world offset along a wall face in [0, tileSize) to a texel
// column.
func (t *Texture) Column(offset, tileSize float64) int {
	return clampInt(int(math.Floor(offset*float64(t.Width)/tileSize)), 0, t.Width-1)
}

// ValidateTextures checks that every wall code in grid has a texture in
// slot code-1.
func ValidateTextures(grid *Grid, textures []*Texture) error {
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			code, _ := grid.Content(row, col)
			if code == 0 {
				continue
			}
			if code > len(textures) || textures[code-1] == nil || len(textures[code-1].Pixels) == 0 {
				return fmt.Errorf("tile (%d,%d) code %d with %d textures: %w", row, col, code, len(textures), ErrMissingTexture)
			}
		}
	}
	return nil
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
