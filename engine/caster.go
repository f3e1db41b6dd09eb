package engine

import (
	"math"
	"sync"
)

// -- caster

// Projection selects how a screen column maps to a ray angle.
type Projection int

const (
	// ProjectionPerspective spaces rays by atan over a flat projection
	// plane, which keeps straight walls straight.
	ProjectionPerspective Projection = iota
	// ProjectionLinear spaces rays at equal angular steps across the fov.
	ProjectionLinear
)

// parallel rays closer than this to an axis never cross that axis' lines
const parallelEpsilon = 1e-12

// minimum columns handed to a single worker goroutine
const minColumnsPerWorker = 32

// Pose is the viewpoint rays are cast from.
type Pose struct {
	X, Y  float64
	Angle float64
}

// RayHit is the nearest wall struck by one column's ray.
type RayHit struct {
	Column        int
	Angle         float64
	HitX, HitY    float64
	Distance      float64 // euclidean, not fish-eye corrected; +Inf when Hit is false
	TileCode      int
	HitIsVertical bool
	Hit           bool
}

// Caster turns a pose into one RayHit per screen column.
type Caster struct {
	fov        float64
	projection Projection
	workers    int
}

// NewCaster creates a caster for the given horizontal field of view in
// radians. workers > 1 lets CastRays split columns across goroutines.
func NewCaster(fov float64, projection Projection, workers int) *Caster {
	if workers < 1 {
		workers = 1
	}
	return &Caster{
		fov:        fov,
		projection: projection,
		workers:    workers,
	}
}

// ProjectionPlaneDistance is the distance from the eye to a plane width
// units wide that exactly spans fov.
func ProjectionPlaneDistance(width int, fov float64) float64 {
	return (float64(width) / 2) / math.Tan(fov/2)
}

// RayAngle returns the normalized world angle of the ray for column.
func (c *Caster) RayAngle(facing float64, column, numColumns int) float64 {
	if c.projection == ProjectionLinear {
		return NormalizeAngle(facing - c.fov/2 + float64(column)*(c.fov/float64(numColumns)))
	}
	ppd := ProjectionPlaneDistance(numColumns, c.fov)
	return NormalizeAngle(facing + math.Atan(float64(column-numColumns/2)/ppd))
}

// CastRay casts the ray for a single screen column.
func (c *Caster) CastRay(grid *Grid, pose Pose, column, numColumns int) RayHit {
	hit := Trace(grid, pose.X, pose.Y, c.RayAngle(pose.Angle, column, numColumns))
	hit.Column = column
	return hit
}

// CastRays fills hits with one ray per column, len(hits) columns wide.
func (c *Caster) CastRays(grid *Grid, pose Pose, hits []RayHit) {
	numColumns := len(hits)
	workers := c.workers
	if limit := numColumns / minColumnsPerWorker; workers > limit {
		workers = limit
	}
	if workers <= 1 {
		c.castBand(grid, pose, hits, 0, numColumns)
		return
	}

	var wg sync.WaitGroup
	band := (numColumns + workers - 1) / workers
	for start := 0; start < numColumns; start += band {
		end := start + band
		if end > numColumns {
			end = numColumns
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			c.castBand(grid, pose, hits, start, end)
		}(start, end)
	}
	wg.Wait()
}

func (c *Caster) castBand(grid *Grid, pose Pose, hits []RayHit, start, end int) {
	for x := start; x < end; x++ {
		hits[x] = c.CastRay(grid, pose, x, len(hits))
	}
}

// Trace finds the nearest wall along the ray leaving (x, y) at angle. Grid
// lines of both families are searched independently and the nearer crossing
// wins, with ties going to the horizontal line.
func Trace(grid *Grid, x, y, angle float64) RayHit {
	angle = NormalizeAngle(angle)
	down := angle > 0 && angle < Pi
	right := angle < HalfPi || angle > 3*HalfPi
	sin, cos := math.Sincos(angle)

	var horz, vert gridCrossing
	if math.Abs(sin) > parallelEpsilon {
		horz = march(grid, horizontalSearch(grid, x, y, sin, cos, down))
	}
	if math.Abs(cos) > parallelEpsilon {
		vert = march(grid, verticalSearch(grid, x, y, sin, cos, right))
	}

	hit := RayHit{Angle: angle, Distance: math.Inf(1)}
	nearest, vertical := nearer(horz, vert, x, y)
	if nearest.ok {
		hit.HitX, hit.HitY = nearest.x, nearest.y
		hit.Distance = nearest.distance(x, y)
		hit.TileCode = nearest.code
		hit.HitIsVertical = vertical
		hit.Hit = true
	}
	return hit
}

// gridSearch walks one family of grid lines. line is the index of the line
// the current point lies on; side is added to it to pick the tile on the far
// side of the line (-1 when walking toward lower indices).
type gridSearch struct {
	x, y     float64
	dx, dy   float64
	line     int
	dline    int
	side     int
	vertical bool
}

type gridCrossing struct {
	x, y float64
	code int
	ok   bool
}

// nearer picks the crossing closest to (x, y). Equal distances resolve to the
// horizontal crossing; corner pixels depend on this.
func nearer(horz, vert gridCrossing, x, y float64) (gridCrossing, bool) {
	if horz.ok && horz.distance(x, y) <= vert.distance(x, y) {
		return horz, false
	}
	return vert, vert.ok
}

func (c gridCrossing) distance(x, y float64) float64 {
	if !c.ok {
		return math.Inf(1)
	}
	return math.Hypot(c.x-x, c.y-y)
}

// horizontalSearch crosses constant-y lines.
func horizontalSearch(grid *Grid, x, y, sin, cos float64, down bool) gridSearch {
	t := grid.TileSize()
	s := gridSearch{line: int(math.Floor(y / t)), dline: 1, dy: t}
	if down {
		s.line++
	} else {
		s.dline, s.dy, s.side = -1, -t, -1
	}
	s.y = float64(s.line) * t
	s.x = x + (s.y-y)*cos/sin
	s.dx = s.dy * cos / sin
	return s
}

// verticalSearch crosses constant-x lines.
func verticalSearch(grid *Grid, x, y, sin, cos float64, right bool) gridSearch {
	t := grid.TileSize()
	s := gridSearch{line: int(math.Floor(x / t)), dline: 1, dx: t, vertical: true}
	if right {
		s.line++
	} else {
		s.dline, s.dx, s.side = -1, -t, -1
	}
	s.x = float64(s.line) * t
	s.y = y + (s.x-x)*sin/cos
	s.dy = s.dx * sin / cos
	return s
}

// march steps s until it reaches a wall or leaves the grid's world bounds.
// Each step moves one whole tile along the line family's axis, so leaving the
// bounds is guaranteed.
func march(grid *Grid, s gridSearch) gridCrossing {
	w, h, t := grid.WorldWidth(), grid.WorldHeight(), grid.TileSize()
	for s.x >= 0 && s.x <= w && s.y >= 0 && s.y <= h {
		var row, col int
		if s.vertical {
			row, col = int(math.Floor(s.y/t)), s.line+s.side
		} else {
			row, col = s.line+s.side, int(math.Floor(s.x/t))
		}
		if code, ok := grid.Content(row, col); ok && code != 0 {
			return gridCrossing{x: s.x, y: s.y, code: code, ok: true}
		}
		s.x += s.dx
		s.y += s.dy
		s.line += s.dline
	}
	return gridCrossing{}
}
