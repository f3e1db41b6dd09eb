// Package config loads raycaster settings from an embedded default file, an
// optional user file and RAYCASTER_* environment variables.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

//go:embed default.yaml
var defaultConfig []byte

const envPrefix = "RAYCASTER"

var (
	ErrInvalid    = errors.New("invalid configuration")
	ErrColor      = errors.New("color must be #RRGGBB")
	ErrProjection = errors.New("projection must be perspective or linear")
)

type Config struct {
	Window   Window   `mapstructure:"window"`
	Render   Render   `mapstructure:"render"`
	Player   Player   `mapstructure:"player"`
	Map      Map      `mapstructure:"map"`
	Textures Textures `mapstructure:"textures"`
	Log      Log      `mapstructure:"log"`
}

type Window struct {
	Title   string `mapstructure:"title"`
	Width   int    `mapstructure:"width"`
	Height  int    `mapstructure:"height"`
	TPS     int    `mapstructure:"tps"`
	Minimap bool   `mapstructure:"minimap"`
	HUD     bool   `mapstructure:"hud"`
}

type Render struct {
	Width          int     `mapstructure:"width"`
	Height         int     `mapstructure:"height"`
	Columns        int     `mapstructure:"columns"`
	Workers        int     `mapstructure:"workers"`
	FovDegrees     float64 `mapstructure:"fov_degrees"`
	ProjectionName string  `mapstructure:"projection"`
	CeilingColor   string  `mapstructure:"ceiling"`
	FloorColor     string  `mapstructure:"floor"`
}

type Player struct {
	X                float64 `mapstructure:"x"`
	Y                float64 `mapstructure:"y"`
	AngleDegrees     float64 `mapstructure:"angle_degrees"`
	WalkSpeed        float64 `mapstructure:"walk_speed"`
	TurnSpeedDegrees float64 `mapstructure:"turn_speed_degrees"`
}

type Map struct {
	TileSize float64  `mapstructure:"tile_size"`
	Image    string   `mapstructure:"image"`
	Rows     []string `mapstructure:"rows"`
}

type Textures struct {
	Dir   string   `mapstructure:"dir"`
	Files []string `mapstructure:"files"`
	Size  int      `mapstructure:"size"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the embedded defaults, merges the file at path when it is not
// empty, applies environment overrides such as RAYCASTER_RENDER_COLUMNS and
// validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(defaultConfig)); err != nil {
		return nil, fmt.Errorf("default config: %w", err)
	}

	if path != "" {
		user := viper.New()
		user.SetConfigFile(path)
		if err := user.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		if err := v.MergeConfigMap(user.AllSettings()); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.TPS > 0, "window.tps %d", c.Window.TPS)
	check(c.Render.Width > 0 && c.Render.Height > 0, "render size %dx%d", c.Render.Width, c.Render.Height)
	check(c.Render.Columns >= 0 && c.Render.Columns <= c.Render.Width, "render.columns %d", c.Render.Columns)
	check(c.Render.FovDegrees > 0 && c.Render.FovDegrees < 180, "render.fov_degrees %v", c.Render.FovDegrees)
	check(c.Map.TileSize > 0, "map.tile_size %v", c.Map.TileSize)
	check(c.Player.WalkSpeed >= 0, "player.walk_speed %v", c.Player.WalkSpeed)
	check(c.Player.TurnSpeedDegrees >= 0, "player.turn_speed_degrees %v", c.Player.TurnSpeedDegrees)
	check(c.Textures.Size >= 0, "textures.size %d", c.Textures.Size)

	if _, err := c.Projection(); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseColor(c.Render.CeilingColor); err != nil {
		errs = append(errs, fmt.Errorf("render.ceiling: %w", err))
	}
	if _, err := ParseColor(c.Render.FloorColor); err != nil {
		errs = append(errs, fmt.Errorf("render.floor: %w", err))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalid, err))
	}
	return errors.Join(errs...)
}

// ParseColor parses "#RRGGBB" into an opaque 0xAARRGGBB color.
func ParseColor(s string) (uint32, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return 0, fmt.Errorf("%q: %w", s, ErrColor)
	}
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrColor)
	}
	return 0xFF000000 | uint32(rgb), nil
}
