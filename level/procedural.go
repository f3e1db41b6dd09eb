package level

import (
	"image/color"

	"raycaster/engine"
)

// base colors for generated textures, cycled by wall code
var proceduralColors = []color.RGBA{
	{178, 34, 34, 255},   // brick red
	{106, 90, 205, 255},  // slate purple
	{85, 107, 47, 255},   // moss
	{128, 128, 128, 255}, // stone
	{184, 134, 11, 255},  // ochre
	{70, 130, 180, 255},  // steel blue
	{139, 90, 43, 255},   // wood
	{192, 192, 192, 255}, // silver
}

type pattern func(tex *engine.Texture, base color.RGBA)

var patterns = []pattern{bricks, checker, planks, bricks, stripes, checker, planks, stripes}

// ProceduralTextures generates count textures of size x size, one per wall
// code, for maps that are run without texture files.
func ProceduralTextures(count, size int) []*engine.Texture {
	textures := make([]*engine.Texture, count)
	for i := range textures {
		tex := engine.NewTexture(size, size)
		patterns[i%len(patterns)](tex, proceduralColors[i%len(proceduralColors)])
		textures[i] = tex
	}
	return textures
}

func pack(c color.RGBA) uint32 {
	return engine.PackRGBA(c.R, c.G, c.B, c.A)
}

func darker(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
}

// bricks draws running-bond courses with dark mortar lines.
func bricks(tex *engine.Texture, base color.RGBA) {
	courseHeight := max(tex.Height/4, 1)
	brickWidth := max(tex.Width/2, 1)
	mortar := pack(darker(darker(base)))
	face := pack(base)

	for y := 0; y < tex.Height; y++ {
		course := y / courseHeight
		offset := (course % 2) * brickWidth / 2
		for x := 0; x < tex.Width; x++ {
			c := face
			if y%courseHeight == 0 || (x+offset)%brickWidth == 0 {
				c = mortar
			}
			tex.Set(x, y, c)
		}
	}
}

func checker(tex *engine.Texture, base color.RGBA) {
	cell := max(tex.Width/8, 1)
	light, dark := pack(base), pack(darker(base))
	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			tex.Set(x, y, c)
		}
	}
}

// planks are vertical boards with a seam on the left edge of each.
func planks(tex *engine.Texture, base color.RGBA) {
	board := max(tex.Width/4, 1)
	face, seam := pack(base), pack(darker(base))
	for y := 0; y < tex.Height; y++ {
		for x := 0; x < tex.Width; x++ {
			c := face
			if x%board == 0 {
				c = seam
			}
			tex.Set(x, y, c)
		}
	}
}

func stripes(tex *engine.Texture, base color.RGBA) {
	band := max(tex.Height/8, 1)
	light, dark := pack(base), pack(darker(base))
	for y := 0; y < tex.Height; y++ {
		c := light
		if (y/band)%2 == 1 {
			c = dark
		}
		for x := 0; x < tex.Width; x++ {
			tex.Set(x, y, c)
		}
	}
}
