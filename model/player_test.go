package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raycaster/engine"
)

const tile = 64.0

// corridor is a 3x5 map with a pillar at (1,3):
//
//	1 1 1 1 1
//	1 0 0 2 1
//	1 1 1 1 1
func corridor(t *testing.T) *engine.Grid {
	t.Helper()
	g, err := engine.NewGrid([][]int{
		{1, 1, 1, 1, 1},
		{1, 0, 0, 2, 1},
		{1, 1, 1, 1, 1},
	}, tile)
	require.NoError(t, err)
	return g
}

func TestUpdateWalkAllowed(t *testing.T) {
	g := corridor(t)
	p := NewPlayer(80, 96, 0, 10, engine.HalfPi)

	got := Update(p, g, Intents{WalkDirection: 1}, 1)
	assert.InDelta(t, 90, got.Position.X, 1e-9)
	assert.InDelta(t, 96, got.Position.Y, 1e-9)
	assert.Equal(t, p.RotationAngle, got.RotationAngle)

	got = Update(p, g, Intents{WalkDirection: -1}, 0.5)
	assert.InDelta(t, 75, got.Position.X, 1e-9)
}

func TestUpdateWalkBlockedByWall(t *testing.T) {
	g := corridor(t)
	// one step short of the pillar at x=192
	p := NewPlayer(185, 96, 0, 10, engine.HalfPi)

	got := Update(p, g, Intents{WalkDirection: 1}, 1)
	assert.Equal(t, p.Position, got.Position)

	// the outer wall north of the corridor
	p = NewPlayer(100, 70, 3*engine.HalfPi, 10, engine.HalfPi)
	got = Update(p, g, Intents{WalkDirection: 1}, 1)
	assert.Equal(t, p.Position, got.Position)
}

func TestUpdateRejectsOutOfBounds(t *testing.T) {
	g, err := engine.NewGrid([][]int{{0, 0}, {0, 0}}, tile)
	require.NoError(t, err)

	p := NewPlayer(5, 60, engine.Pi, 10, 0)
	got := Update(p, g, Intents{WalkDirection: 1}, 1)
	assert.Equal(t, p.Position, got.Position)
}

func TestUpdateTurnKeepsAngleNormalized(t *testing.T) {
	g := corridor(t)
	p := NewPlayer(100, 96, 0.1, 10, 1)

	got := Update(p, g, Intents{TurnDirection: -1}, 0.5)
	assert.InDelta(t, engine.Pi2-0.4, got.RotationAngle, 1e-12)
	assert.Equal(t, p.Position, got.Position)

	got = Update(p, g, Intents{TurnDirection: 1}, 0.5)
	assert.InDelta(t, 0.6, got.RotationAngle, 1e-12)
}

func TestUpdateTurnsBeforeMoving(t *testing.T) {
	g, err := engine.NewGrid([][]int{
		{1, 1, 1, 1},
		{1, 0, 0, 1},
		{1, 0, 0, 1},
		{1, 1, 1, 1},
	}, tile)
	require.NoError(t, err)

	// turning a quarter turn clockwise then walking moves down the screen
	p := NewPlayer(96, 96, 0, 20, engine.HalfPi)
	got := Update(p, g, Intents{WalkDirection: 1, TurnDirection: 1}, 1)
	assert.InDelta(t, 96, got.Position.X, 1e-9)
	assert.InDelta(t, 116, got.Position.Y, 1e-9)
}

func TestUpdateStrafe(t *testing.T) {
	g, err := engine.NewGrid([][]int{
		{1, 1, 1, 1},
		{1, 0, 0, 1},
		{1, 0, 0, 1},
		{1, 1, 1, 1},
	}, tile)
	require.NoError(t, err)

	p := NewPlayer(96, 96, 0, 20, 0)
	got := Update(p, g, Intents{StrafeDirection: 1}, 1)
	assert.InDelta(t, 96, got.Position.X, 1e-9)
	assert.InDelta(t, 96+20*strafeFactor, got.Position.Y, 1e-9)
}

func TestUpdateClampsIntents(t *testing.T) {
	g := corridor(t)
	p := NewPlayer(80, 96, 0, 10, 0)

	got := Update(p, g, Intents{WalkDirection: 7}, 1)
	assert.InDelta(t, 90, got.Position.X, 1e-9)
}

func TestIntentsIsZero(t *testing.T) {
	assert.True(t, Intents{}.IsZero())
	assert.False(t, Intents{TurnDirection: -1}.IsZero())
}
