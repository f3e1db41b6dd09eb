// Package world assembles a running simulation from configuration: it loads
// the level and textures and wires them into model.Simulation.
package world

import (
	"github.com/sirupsen/logrus"

	"raycaster/config"
	"raycaster/engine"
	"raycaster/level"
	"raycaster/model"
)

// World is a loaded level together with the simulation running on it.
type World struct {
	Level      *level.Level
	Textures   []*engine.Texture
	Simulation *model.Simulation
}

func New(cfg *config.Config, log logrus.FieldLogger) (*World, error) {
	lvl, err := level.Load(cfg.LevelSource(), log)
	if err != nil {
		return nil, err
	}

	textures, err := loadTextures(cfg, lvl.Grid, log)
	if err != nil {
		return nil, err
	}

	settings, err := cfg.Settings()
	if err != nil {
		return nil, err
	}

	grid := lvl.Grid
	center := lvl.StartOr(grid.WorldWidth()/2, grid.WorldHeight()/2)
	player := cfg.NewPlayer(center)

	sim, err := model.NewSimulation(grid, player, textures, settings)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"x":       player.Position.X,
		"y":       player.Position.Y,
		"width":   settings.Width,
		"height":  settings.Height,
		"columns": len(sim.Hits()),
	}).Info("world ready")

	return &World{
		Level:      lvl,
		Textures:   textures,
		Simulation: sim,
	}, nil
}

func loadTextures(cfg *config.Config, grid *engine.Grid, log logrus.FieldLogger) ([]*engine.Texture, error) {
	if len(cfg.Textures.Files) == 0 {
		size := cfg.Textures.Size
		if size == 0 {
			size = int(grid.TileSize())
		}
		log.WithFields(logrus.Fields{
			"count": grid.MaxCode(),
			"size":  size,
		}).Info("no texture files configured, generating textures")
		return level.ProceduralTextures(grid.MaxCode(), size), nil
	}
	return level.LoadTextures(cfg.TextureFS(), cfg.Textures.Files, cfg.Textures.Size, log)
}
