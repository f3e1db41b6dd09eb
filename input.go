package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"raycaster/model"
)

func (g *Game) handleInput() error {
	// if escape, exit game
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// if p, pause game
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		g.log.WithField("paused", g.paused).Debug("pause toggled")
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showMinimap = !g.showMinimap
	}

	g.intents = readIntents(ebiten.IsKeyPressed)
	return nil
}

// readIntents maps held keys to movement intents. Opposing keys cancel out.
func readIntents(pressed func(ebiten.Key) bool) model.Intents {
	var in model.Intents

	if pressed(ebiten.KeyW) || pressed(ebiten.KeyUp) {
		in.WalkDirection++
	}
	if pressed(ebiten.KeyS) || pressed(ebiten.KeyDown) {
		in.WalkDirection--
	}

	if pressed(ebiten.KeyRight) || pressed(ebiten.KeyE) {
		in.TurnDirection++
	}
	if pressed(ebiten.KeyLeft) || pressed(ebiten.KeyQ) {
		in.TurnDirection--
	}

	if pressed(ebiten.KeyD) {
		in.StrafeDirection++
	}
	if pressed(ebiten.KeyA) {
		in.StrafeDirection--
	}

	return in
}
