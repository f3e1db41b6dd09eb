package engine

import (
	"fmt"
	"math"
)

// Grid is an immutable row-major tile map. A code of 0 is open floor, any
// positive code is a wall whose value also selects its texture.
type Grid struct {
	rows, cols int
	tileSize   float64
	tiles      []int
}

// NewGrid copies tiles into a new Grid. Every row must have the same length
// and every code must be non-negative.
func NewGrid(tiles [][]int, tileSize float64) (*Grid, error) {
	if tileSize <= 0 || math.IsNaN(tileSize) || math.IsInf(tileSize, 0) {
		return nil, ErrBadTileSize
	}
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, ErrEmptyGrid
	}

	rows, cols := len(tiles), len(tiles[0])
	g := &Grid{
		rows:     rows,
		cols:     cols,
		tileSize: tileSize,
		tiles:    make([]int, 0, rows*cols),
	}
	for r, row := range tiles {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d has %d tiles, want %d: %w", r, len(row), cols, ErrNotRectangular)
		}
		for c, code := range row {
			if code < 0 {
				return nil, fmt.Errorf("tile (%d,%d) = %d: %w", r, c, code, ErrNegativeTile)
			}
		}
		g.tiles = append(g.tiles, row...)
	}
	return g, nil
}

func (g *Grid) Rows() int            { return g.rows }
func (g *Grid) Cols() int            { return g.cols }
func (g *Grid) TileSize() float64    { return g.tileSize }
func (g *Grid) WorldWidth() float64  { return float64(g.cols) * g.tileSize }
func (g *Grid) WorldHeight() float64 { return float64(g.rows) * g.tileSize }

// Content returns the code at (row, col); ok is false outside the grid.
func (g *Grid) Content(row, col int) (code int, ok bool) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0, false
	}
	return g.tiles[row*g.cols+col], true
}

// TileIndex floor-divides a world position into grid coordinates.
func (g *Grid) TileIndex(x, y float64) (row, col int) {
	return int(math.Floor(y / g.tileSize)), int(math.Floor(x / g.tileSize))
}

// ContentAt returns the code of the tile containing world point (x, y).
func (g *Grid) ContentAt(x, y float64) (int, bool) {
	row, col := g.TileIndex(x, y)
	return g.Content(row, col)
}

// IsPassable reports whether (x, y) lies inside the grid on an open tile.
func (g *Grid) IsPassable(x, y float64) bool {
	code, ok := g.ContentAt(x, y)
	return ok && code == 0
}

// MaxCode is the highest material id present.
func (g *Grid) MaxCode() int {
	max := 0
	for _, code := range g.tiles {
		if code > max {
			max = code
		}
	}
	return max
}

// Validate checks that every border tile is a wall. Rays cast from inside a
// grid that passes Validate always terminate on a hit.
func (g *Grid) Validate() error {
	for c := 0; c < g.cols; c++ {
		for _, r := range []int{0, g.rows - 1} {
			if code, _ := g.Content(r, c); code == 0 {
				return fmt.Errorf("tile (%d,%d): %w", r, c, ErrOpenBorder)
			}
		}
	}
	for r := 0; r < g.rows; r++ {
		for _, c := range []int{0, g.cols - 1} {
			if code, _ := g.Content(r, c); code == 0 {
				return fmt.Errorf("tile (%d,%d): %w", r, c, ErrOpenBorder)
			}
		}
	}
	return nil
}
