package model

import (
	"image/color"

	"github.com/harbdog/raycaster-go/geom"

	"raycaster/engine"
)

// strafing is slightly slower than walking
const strafeFactor = 0.75

type Player struct {
	Position      geom.Vector2
	RotationAngle float64
	WalkSpeed     float64 // world units per second
	StrafeSpeed   float64 // world units per second
	TurnSpeed     float64 // radians per second
	MapColor      color.RGBA
}

func NewPlayer(x, y, angle, walkSpeed, turnSpeed float64) Player {
	return Player{
		Position:      geom.Vector2{X: x, Y: y},
		RotationAngle: engine.NormalizeAngle(angle),
		WalkSpeed:     walkSpeed,
		StrafeSpeed:   walkSpeed * strafeFactor,
		TurnSpeed:     turnSpeed,
		MapColor:      color.RGBA{255, 0, 0, 255},
	}
}

// Pose is the viewpoint the player casts rays from.
func (p Player) Pose() engine.Pose {
	return engine.Pose{X: p.Position.X, Y: p.Position.Y, Angle: p.RotationAngle}
}

// Intents are the per-tick movement requests, each in {-1, 0, 1}.
type Intents struct {
	WalkDirection   int // 1 forward, -1 backward
	TurnDirection   int // 1 clockwise on screen, -1 counter-clockwise
	StrafeDirection int // 1 right, -1 left
}

func (in Intents) clamped() Intents {
	return Intents{
		WalkDirection:   clampDirection(in.WalkDirection),
		TurnDirection:   clampDirection(in.TurnDirection),
		StrafeDirection: clampDirection(in.StrafeDirection),
	}
}

func (in Intents) IsZero() bool {
	return in == Intents{}
}

func clampDirection(d int) int {
	return int(geom.Clamp(float64(d), -1, 1))
}

// Update applies one tick of intents to the player and returns the result.
// The heading turns first and movement follows the new heading; a move whose
// destination is outside the grid or inside a wall is discarded while the
// turn is kept.
func Update(p Player, grid *engine.Grid, intents Intents, dt float64) Player {
	in := intents.clamped()

	p.RotationAngle = engine.NormalizeAngle(p.RotationAngle + float64(in.TurnDirection)*p.TurnSpeed*dt)

	if in.WalkDirection == 0 && in.StrafeDirection == 0 {
		return p
	}

	walk := geom.LineFromAngle(p.Position.X, p.Position.Y, p.RotationAngle, float64(in.WalkDirection)*p.WalkSpeed*dt)
	strafe := geom.LineFromAngle(walk.X2, walk.Y2, p.RotationAngle+engine.HalfPi, float64(in.StrafeDirection)*p.StrafeSpeed*dt)

	if grid.IsPassable(strafe.X2, strafe.Y2) {
		p.Position = geom.Vector2{X: strafe.X2, Y: strafe.Y2}
	}
	return p
}
