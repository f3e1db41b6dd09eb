package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCeiling uint32 = 0xFFA9A9A9
	testFloor   uint32 = 0xFF2F4F4F
	testWall    uint32 = 0xFFC08040
)

func solidTexture(w, h int, c uint32) *Texture {
	t := NewTexture(w, h)
	for i := range t.Pixels {
		t.Pixels[i] = c
	}
	return t
}

func wallHit(distance float64, code int) RayHit {
	return RayHit{
		Distance:      distance,
		TileCode:      code,
		HitX:          4 * testTile,
		HitY:          2.5 * testTile,
		HitIsVertical: true,
		Hit:           true,
	}
}

func noHit() RayHit {
	return RayHit{Distance: math.Inf(1)}
}

func TestCorrectedDistance(t *testing.T) {
	hit := RayHit{Angle: 1.2, Distance: 100}
	assert.InDelta(t, 100, CorrectedDistance(hit, 1.2), 1e-12)

	hit.Angle = 1.2 + Pi/3
	assert.InDelta(t, 50, CorrectedDistance(hit, 1.2), 1e-9)

	// across the 0/2π seam
	hit.Angle = Pi2 - 0.1
	assert.InDelta(t, 100*math.Cos(0.2), CorrectedDistance(hit, 0.1), 1e-9)
}

func TestWallStripHeight(t *testing.T) {
	ppd := ProjectionPlaneDistance(320, Pi/3)
	prev := math.Inf(1)
	for d := 1.0; d < 2000; d *= 1.5 {
		h := WallStripHeight(testTile, d, ppd)
		assert.Less(t, h, prev, "distance %v", d)
		prev = h
	}

	assert.InDelta(t, ppd, WallStripHeight(testTile, testTile, ppd), 1e-9)
	assert.Zero(t, WallStripHeight(testTile, math.Inf(1), ppd))
	assert.Zero(t, WallStripHeight(testTile, math.NaN(), ppd))

	// standing on the wall face
	h := WallStripHeight(testTile, 0, ppd)
	assert.False(t, math.IsInf(h, 0))
	assert.Greater(t, h, 1e6)
}

func TestProjectorTextureSlots(t *testing.T) {
	a, b := solidTexture(1, 1, 1), solidTexture(1, 1, 2)
	p := NewProjector(Pi/3, testTile, testCeiling, testFloor, []*Texture{a, b})

	assert.Same(t, a, p.Texture(1))
	assert.Same(t, b, p.Texture(2))
	assert.Nil(t, p.Texture(0))
	assert.Nil(t, p.Texture(3))
	assert.Nil(t, p.Texture(-1))
}

func TestProjectDistantWall(t *testing.T) {
	const w, h = 64, 48
	fov := Pi / 3
	p := NewProjector(fov, testTile, testCeiling, testFloor, []*Texture{solidTexture(8, 8, testWall)})
	buf := NewColorBuffer(w, h)

	hits := make([]RayHit, w)
	for i := range hits {
		hits[i] = wallHit(96, 1)
	}
	p.Project(hits, 0, buf)

	sh := WallStripHeight(testTile, 96, ProjectionPlaneDistance(w, fov))
	require.Less(t, sh, float64(h))

	for x := 0; x < w; x++ {
		assert.Equal(t, testCeiling, buf.Pixel(x, 0))
		assert.Equal(t, testFloor, buf.Pixel(x, h-1))
		assert.Equal(t, Shade(testWall, sh/h), buf.Pixel(x, h/2))
	}
	assert.NotEqual(t, testWall, buf.Pixel(w/2, h/2))
}

func TestProjectCloseWallFillsColumn(t *testing.T) {
	const w, h = 16, 48
	p := NewProjector(Pi/3, testTile, testCeiling, testFloor, []*Texture{solidTexture(8, 8, testWall)})
	buf := NewColorBuffer(w, h)

	hits := make([]RayHit, w)
	for i := range hits {
		hits[i] = wallHit(1, 1)
	}
	p.Project(hits, 0, buf)

	for y := 0; y < h; y++ {
		assert.Equal(t, testWall, buf.Pixel(3, y), "row %d", y)
	}
}

func TestProjectNoHitShowsCeilingAndFloor(t *testing.T) {
	const w, h = 8, 20
	p := NewProjector(Pi/3, testTile, testCeiling, testFloor, nil)
	buf := NewColorBuffer(w, h)

	hits := make([]RayHit, w)
	for i := range hits {
		hits[i] = noHit()
	}
	p.Project(hits, 0, buf)

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			want := testFloor
			if y < h/2 {
				want = testCeiling
			}
			assert.Equal(t, want, buf.Pixel(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestProjectMissingTextureIsMagenta(t *testing.T) {
	p := NewProjector(Pi/3, testTile, testCeiling, testFloor, []*Texture{solidTexture(4, 4, testWall)})
	buf := NewColorBuffer(4, 10)

	hits := []RayHit{wallHit(1, 3), wallHit(1, 3), wallHit(1, 3), wallHit(1, 3)}
	p.Project(hits, 0, buf)

	assert.Equal(t, missingTextureColor, buf.Pixel(0, 5))
	assert.Equal(t, missingTextureColor, buf.Pixel(3, 0))
}

func TestProjectSamplesTexture(t *testing.T) {
	// four columns of distinct colors, top row and bottom row differ
	tex := NewTexture(4, 2)
	for x := 0; x < 4; x++ {
		tex.Set(x, 0, PackRGBA(uint8(10*x+10), 0, 0, 0xFF))
		tex.Set(x, 1, PackRGBA(0, uint8(10*x+10), 0, 0xFF))
	}
	p := NewProjector(Pi/3, testTile, testCeiling, testFloor, []*Texture{tex})

	const h = 48
	buf := NewColorBuffer(4, h)
	hits := make([]RayHit, 4)
	for i := range hits {
		hits[i] = wallHit(1, 1)
		// offset 1, 17, 33, 49 along the face selects texel columns 0..3
		hits[i].HitY = 2*testTile + float64(i)*testTile/4 + 1
	}
	p.Project(hits, 0, buf)

	for x := 0; x < 4; x++ {
		assert.Equal(t, tex.At(x, 0), buf.Pixel(x, 0), "column %d top", x)
		assert.Equal(t, tex.At(x, 1), buf.Pixel(x, h-1), "column %d bottom", x)
	}
}

func TestProjectWidensStrips(t *testing.T) {
	red, blue := PackRGBA(0xFF, 0, 0, 0xFF), PackRGBA(0, 0, 0xFF, 0xFF)
	p := NewProjector(Pi/3, testTile, testCeiling, testFloor, []*Texture{
		solidTexture(2, 2, red),
		solidTexture(2, 2, blue),
	})
	buf := NewColorBuffer(10, 12)

	hits := []RayHit{wallHit(1, 1), wallHit(1, 2), wallHit(1, 1), wallHit(1, 2)}
	p.Project(hits, 0, buf)

	// strip bounds 0, 2, 5, 7, 10
	want := []uint32{red, red, blue, blue, blue, red, red, blue, blue, blue}
	for x, c := range want {
		assert.Equal(t, c, buf.Pixel(x, 6), "column %d", x)
	}
}

func TestProjectSpreadsStripsEvenly(t *testing.T) {
	red, blue := PackRGBA(0xFF, 0, 0, 0xFF), PackRGBA(0, 0, 0xFF, 0xFF)
	p := NewProjector(Pi/3, testTile, testCeiling, testFloor, []*Texture{
		solidTexture(2, 2, red),
		solidTexture(2, 2, blue),
	})

	tests := []struct {
		width, rays int
	}{
		{512, 200},
		{512, 511},
		{320, 320},
		{7, 3},
	}
	for _, tt := range tests {
		buf := NewColorBuffer(tt.width, 40)
		hits := make([]RayHit, tt.rays)
		for i := range hits {
			hits[i] = wallHit(1, 1+i%2)
		}
		p.Project(hits, 0, buf)

		// alternating codes make every strip its own run
		var runs []int
		for x := 0; x < tt.width; x++ {
			if x == 0 || buf.Pixel(x, 20) != buf.Pixel(x-1, 20) {
				runs = append(runs, 0)
			}
			runs[len(runs)-1]++
		}
		require.Len(t, runs, tt.rays, "%d rays over %d px", tt.rays, tt.width)
		lo, hi := tt.width/tt.rays, (tt.width+tt.rays-1)/tt.rays
		for i, w := range runs {
			assert.True(t, w >= lo && w <= hi, "%d rays over %d px: strip %d is %d px", tt.rays, tt.width, i, w)
		}
	}
}

func TestProjectMoreHitsThanColumns(t *testing.T) {
	red, blue := PackRGBA(0xFF, 0, 0, 0xFF), PackRGBA(0, 0, 0xFF, 0xFF)
	p := NewProjector(Pi/3, testTile, testCeiling, testFloor, []*Texture{
		solidTexture(2, 2, red),
		solidTexture(2, 2, blue),
	})
	buf := NewColorBuffer(2, 12)

	p.Project([]RayHit{wallHit(1, 1), wallHit(1, 2), wallHit(1, 1), wallHit(1, 2)}, 0, buf)
	assert.Equal(t, blue, buf.Pixel(0, 6))
	assert.Equal(t, blue, buf.Pixel(1, 6))
}

func TestProjectEmptyHitsLeavesBuffer(t *testing.T) {
	p := NewProjector(Pi/3, testTile, testCeiling, testFloor, nil)
	buf := NewColorBuffer(4, 4)
	buf.Fill(7)
	p.Project(nil, 0, buf)
	for _, c := range buf.Pixels {
		assert.Equal(t, uint32(7), c)
	}
}
