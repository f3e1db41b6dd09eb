// minimap.go
package main

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"raycaster/engine"
	"raycaster/model"
)

const (
	minimapSize   = 200 // longest side in screen pixels
	minimapMargin = 10
	minimapRays   = 48 // ray lines drawn per frame
)

var (
	minimapFloor = color.RGBA{200, 200, 200, 255}
	minimapRay   = color.RGBA{255, 0, 0, 160}
)

// Minimap is a top-down view of the grid with the player and the current rays.
type Minimap struct {
	grid   *engine.Grid
	static *ebiten.Image
	white  *ebiten.Image
	scale  float64 // screen pixels per world unit
}

func NewMinimap(grid *engine.Grid, textures []*engine.Texture) *Minimap {
	m := &Minimap{
		grid:  grid,
		scale: minimapSize / math.Max(grid.WorldWidth(), grid.WorldHeight()),
	}
	m.generateStatic(textures)
	return m
}

// generateStatic draws every tile once; walls use their texture's average
// color so the map matches the 3D view.
func (m *Minimap) generateStatic(textures []*engine.Texture) {
	tile := float32(m.grid.TileSize() * m.scale)
	m.static = ebiten.NewImage(int(math.Ceil(float64(tile)*float64(m.grid.Cols()))), int(math.Ceil(float64(tile)*float64(m.grid.Rows()))))

	for row := 0; row < m.grid.Rows(); row++ {
		for col := 0; col < m.grid.Cols(); col++ {
			code, _ := m.grid.Content(row, col)
			tileColor := minimapFloor
			if code > 0 {
				tileColor = wallColor(code, textures)
			}
			vector.DrawFilledRect(m.static, float32(col)*tile, float32(row)*tile, tile, tile, tileColor, false)
		}
	}
}

func wallColor(code int, textures []*engine.Texture) color.RGBA {
	if code > len(textures) || textures[code-1] == nil || len(textures[code-1].Pixels) == 0 {
		return color.RGBA{50, 50, 50, 255}
	}
	var r, g, b int
	pixels := textures[code-1].Pixels
	for _, p := range pixels {
		pr, pg, pb, _ := engine.UnpackRGBA(p)
		r, g, b = r+int(pr), g+int(pg), b+int(pb)
	}
	n := len(pixels)
	return color.RGBA{uint8(r / n), uint8(g / n), uint8(b / n), 255}
}

func (m *Minimap) Draw(screen *ebiten.Image, snap model.Snapshot) {
	player, hits := snap.Player, snap.Hits

	originX := float64(screen.Bounds().Dx()-m.static.Bounds().Dx()) - minimapMargin
	originY := float64(minimapMargin)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(originX, originY)
	screen.DrawImage(m.static, op)

	toScreen := func(x, y float64) (float32, float32) {
		return float32(originX + x*m.scale), float32(originY + y*m.scale)
	}

	px, py := toScreen(player.Position.X, player.Position.Y)

	// one line per sampled ray from the player to its hit point
	step := max(len(hits)/minimapRays, 1)
	for i := 0; i < len(hits); i += step {
		hit := hits[i]
		if !hit.Hit {
			continue
		}
		hx, hy := toScreen(hit.HitX, hit.HitY)
		vector.StrokeLine(screen, px, py, hx, hy, 1, minimapRay, false)
	}

	m.drawPlayer(screen, px, py, player.RotationAngle, player.MapColor)
}

func (m *Minimap) drawPlayer(screen *ebiten.Image, playerX, playerY float32, angle float64, playerColor color.RGBA) {
	// calculate triangle points
	triangleSize := float32(math.Max(m.grid.TileSize()*m.scale/2, 4))

	x1 := playerX + triangleSize*float32(math.Cos(angle))
	y1 := playerY + triangleSize*float32(math.Sin(angle))

	x2 := playerX + triangleSize*float32(math.Cos(angle+2.5))
	y2 := playerY + triangleSize*float32(math.Sin(angle+2.5))

	x3 := playerX + triangleSize*float32(math.Cos(angle-2.5))
	y3 := playerY + triangleSize*float32(math.Sin(angle-2.5))

	cr, cg, cb, ca := float32(playerColor.R)/255, float32(playerColor.G)/255, float32(playerColor.B)/255, float32(playerColor.A)/255

	// define triangle vertices
	vertices := []ebiten.Vertex{
		{DstX: x1, DstY: y1, SrcX: 1.5, SrcY: 1.5, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		{DstX: x2, DstY: y2, SrcX: 1.5, SrcY: 1.5, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
		{DstX: x3, DstY: y3, SrcX: 1.5, SrcY: 1.5, ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca},
	}

	// define triangle indices
	indices := []uint16{0, 1, 2}

	if m.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		m.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	screen.DrawTriangles(vertices, indices, m.white, nil)
}
