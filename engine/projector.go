package engine

import "math"

// -- projector

// closest corrected distance a strip is projected at; keeps a viewer that
// stands on a wall face from producing an infinite strip
const minDistance = 1e-6

// drawn for wall codes without a texture slot
const missingTextureColor uint32 = 0xFFFF00FF

type Projector struct {
	fov      float64
	tileSize float64
	ceiling  uint32
	floor    uint32
	textures []*Texture
}

func NewProjector(fov, tileSize float64, ceiling, floor uint32, textures []*Texture) *Projector {
	return &Projector{
		fov:      fov,
		tileSize: tileSize,
		ceiling:  ceiling,
		floor:    floor,
		textures: textures,
	}
}

// Texture returns the texture for a wall code, or nil.
func (p *Projector) Texture(code int) *Texture {
	if code < 1 || code > len(p.textures) {
		return nil
	}
	return p.textures[code-1]
}

// CorrectedDistance removes the fish-eye distortion from a hit by projecting
// its distance onto the facing direction.
func CorrectedDistance(hit RayHit, facing float64) float64 {
	return hit.Distance * math.Cos(hit.Angle-facing)
}

// WallStripHeight is the on-screen height of a tileSize-tall wall at the
// corrected distance.
func WallStripHeight(tileSize, corrected, projectionPlaneDistance float64) float64 {
	if math.IsNaN(corrected) {
		return 0
	}
	if corrected < minDistance {
		corrected = minDistance
	}
	return tileSize / corrected * projectionPlaneDistance
}

// TextureOffset is how far along the struck wall face the hit lies, in
// [0, tileSize).
func TextureOffset(hit RayHit, tileSize float64) float64 {
	v := hit.HitX
	if hit.HitIsVertical {
		v = hit.HitY
	}
	offset := math.Mod(v, tileSize)
	if offset < 0 {
		offset += tileSize
	}
	return offset
}

// Project renders one wall strip per hit into buf. Hit i covers columns
// [i*w/n, (i+1)*w/n), so with fewer hits than columns the strips widths
// differ by at most one pixel and every hit lands under its own ray.
func (p *Projector) Project(hits []RayHit, facing float64, buf *ColorBuffer) {
	n := len(hits)
	if n == 0 {
		return
	}
	ppd := ProjectionPlaneDistance(buf.Width, p.fov)

	for i, hit := range hits {
		x0 := i * buf.Width / n
		x1 := (i + 1) * buf.Width / n
		if x0 == x1 {
			// more hits than columns
			continue
		}
		p.projectStrip(hit, facing, ppd, x0, x1, buf)
	}
}

func (p *Projector) projectStrip(hit RayHit, facing, ppd float64, x0, x1 int, buf *ColorBuffer) {
	height := float64(buf.Height)
	stripHeight := WallStripHeight(p.tileSize, CorrectedDistance(hit, facing), ppd)
	top := height/2 - stripHeight/2
	yStart := int(math.Max(0, math.Min(height, top)))
	yEnd := int(math.Max(0, math.Min(height, top+stripHeight)))
	shade := math.Min(1, stripHeight/height)

	tex := p.Texture(hit.TileCode)
	texX := 0
	if tex != nil {
		texX = tex.Column(TextureOffset(hit, p.tileSize), p.tileSize)
	}

	for y := 0; y < buf.Height; y++ {
		var c uint32
		switch {
		case y < yStart:
			c = p.ceiling
		case y >= yEnd:
			c = p.floor
		case tex == nil:
			c = Shade(missingTextureColor, shade)
		default:
			texY := int((float64(y) - top) * float64(tex.Height) / stripHeight)
			c = Shade(tex.At(texX, texY), shade)
		}
		row := buf.Pixels[y*buf.Width:]
		for x := x0; x < x1; x++ {
			row[x] = c
		}
	}
}
