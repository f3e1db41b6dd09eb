package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"

	"raycaster/engine"
	"raycaster/level"
	"raycaster/model"
)

func (c *Config) Projection() (engine.Projection, error) {
	switch strings.ToLower(c.Render.ProjectionName) {
	case "", "perspective":
		return engine.ProjectionPerspective, nil
	case "linear":
		return engine.ProjectionLinear, nil
	}
	return 0, fmt.Errorf("%q: %w", c.Render.ProjectionName, ErrProjection)
}

// Settings maps the render section onto simulation settings.
func (c *Config) Settings() (model.Settings, error) {
	var s model.Settings
	if err := copier.Copy(&s, &c.Render); err != nil {
		return s, err
	}

	var err error
	if s.Projection, err = c.Projection(); err != nil {
		return s, err
	}
	if s.Ceiling, err = ParseColor(c.Render.CeilingColor); err != nil {
		return s, err
	}
	if s.Floor, err = ParseColor(c.Render.FloorColor); err != nil {
		return s, err
	}
	s.Fov = geom.Radians(c.Render.FovDegrees)
	return s, nil
}

// NewPlayer places the player at the configured position, or at start when
// none is configured.
func (c *Config) NewPlayer(start geom.Vector2) model.Player {
	x, y := c.Player.X, c.Player.Y
	if x == 0 && y == 0 {
		x, y = start.X, start.Y
	}
	return model.NewPlayer(
		x, y,
		geom.Radians(c.Player.AngleDegrees),
		c.Player.WalkSpeed,
		geom.Radians(c.Player.TurnSpeedDegrees),
	)
}

// LevelSource describes the configured map. Relative image paths resolve
// against the working directory.
func (c *Config) LevelSource() level.Source {
	src := level.Source{
		FS:       os.DirFS("."),
		Rows:     c.Map.Rows,
		TileSize: c.Map.TileSize,
		Palette:  level.DefaultPalette(),
	}
	if c.Map.Image != "" {
		src.FS = os.DirFS(filepath.Dir(c.Map.Image))
		src.Image = filepath.Base(c.Map.Image)
	}
	return src
}

// TextureFS is the directory texture files are read from.
func (c *Config) TextureFS() fs.FS {
	dir := c.Textures.Dir
	if dir == "" {
		dir = "."
	}
	return os.DirFS(dir)
}

func (c *Config) LogLevel() (logrus.Level, error) {
	return logrus.ParseLevel(c.Log.Level)
}

// NewLogger builds the process logger from the log section.
func (c *Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	if lvl, err := c.LogLevel(); err == nil {
		log.SetLevel(lvl)
	}
	if strings.EqualFold(c.Log.Format, "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
