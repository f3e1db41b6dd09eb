package main

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/sirupsen/logrus"

	"raycaster/config"
	"raycaster/model"
	"raycaster/world"
)

// -- game

// main game object
type Game struct {
	log    logrus.FieldLogger
	paused bool

	// window resolution
	screenWidth  int
	screenHeight int

	world   *world.World
	sim     *model.Simulation
	intents model.Intents
	dt      float64

	// state the overlays read, detached from the live buffers
	snap model.Snapshot

	//--render target the color buffer is uploaded into--//
	scene  *ebiten.Image
	pixels []byte

	minimap     *Minimap
	showMinimap bool
	hud         *HUD
}

// NewGame loads the world described by cfg and prepares the window.
func NewGame(cfg *config.Config, log logrus.FieldLogger) (*Game, error) {
	w, err := world.New(cfg, log)
	if err != nil {
		return nil, err
	}

	buf := w.Simulation.Buffer()
	g := &Game{
		log:          log,
		screenWidth:  cfg.Window.Width,
		screenHeight: cfg.Window.Height,
		world:        w,
		sim:          w.Simulation,
		dt:           1 / float64(cfg.Window.TPS),
		scene:        ebiten.NewImage(buf.Width, buf.Height),
		pixels:       make([]byte, 4*buf.Width*buf.Height),
		minimap:      NewMinimap(w.Level.Grid, w.Textures),
		showMinimap:  cfg.Window.Minimap,
	}

	if g.snap, err = g.sim.Snapshot(); err != nil {
		return nil, err
	}

	if cfg.Window.HUD {
		if g.hud, err = NewHUD(); err != nil {
			return nil, err
		}
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(g.screenWidth, g.screenHeight)
	ebiten.SetTPS(cfg.Window.TPS)

	return g, nil
}

// Run is the Ebiten Run loop caller
func (g *Game) Run() error {
	g.paused = false

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		g.log.Info("exit requested")
		return nil
	}
	return err
}

// Layout takes the outside size (e.g., the window size) and returns the (logical) screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenWidth, g.screenHeight
}

// Update is called every tick (1/TPS [s]).
func (g *Game) Update() error {
	// when paused only the pause, quit and overlay keys are handled
	if err := g.handleInput(); err != nil {
		return err
	}

	if !g.paused {
		g.sim.Step(g.intents, g.dt)
	}

	snap, err := g.sim.Snapshot()
	if err != nil {
		return err
	}
	g.snap = snap

	if g.hud != nil {
		g.hud.Update(g)
	}
	return nil
}

// Draw is called every frame (typically 1/60[s] for 60Hz display).
func (g *Game) Draw(screen *ebiten.Image) {
	g.sim.Buffer().WriteRGBA(g.pixels)
	g.scene.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterNearest
	op.GeoM.Scale(
		float64(g.screenWidth)/float64(g.scene.Bounds().Dx()),
		float64(g.screenHeight)/float64(g.scene.Bounds().Dy()),
	)
	screen.DrawImage(g.scene, op)

	if g.showMinimap {
		g.minimap.Draw(screen, g.snap)
	}

	if g.hud != nil {
		g.hud.Draw(screen)
		return
	}

	// draw FPS/TPS counter debug display
	fps := fmt.Sprintf("FPS: %0.2f\nTPS: %0.2f/%v", ebiten.ActualFPS(), ebiten.ActualTPS(), ebiten.TPS())
	if g.paused {
		fps += "\nPAUSED"
	}
	ebitenutil.DebugPrint(screen, fps)
}
