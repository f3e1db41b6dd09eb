// Package level turns map descriptions into engine grids and decodes the wall
// textures they reference.
package level

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"

	"github.com/harbdog/raycaster-go/geom"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"

	"raycaster/engine"
)

var (
	ErrUnknownTile     = errors.New("unknown tile rune")
	ErrUnknownColor    = errors.New("unknown level color")
	ErrMultipleStarts  = errors.New("more than one player start marker")
	ErrNoLevelDefined  = errors.New("no tile rows or level image given")
	ErrDecodeLevelFile = errors.New("level image could not be decoded")
)

// Level is a loaded map plus the player start marker, if it had one.
type Level struct {
	Grid  *engine.Grid
	Start *geom.Vector2
}

// StartOr returns the marked player start, or (x, y) when the map has none.
func (l *Level) StartOr(x, y float64) geom.Vector2 {
	if l.Start == nil {
		return geom.Vector2{X: x, Y: y}
	}
	return *l.Start
}

const (
	emptyRune  = '.'
	playerRune = 'P'
)

// FromRows builds a level from text rows. Digits are tile codes, '.' and ' '
// are open floor, and 'P' is open floor holding the player start.
func FromRows(rows []string, tileSize float64) (*Level, error) {
	if len(rows) == 0 {
		return nil, ErrNoLevelDefined
	}

	tiles := make([][]int, len(rows))
	var start *geom.Vector2
	for r, row := range rows {
		runes := []rune(row)
		tiles[r] = make([]int, len(runes))
		for c, ch := range runes {
			switch {
			case ch >= '0' && ch <= '9':
				tiles[r][c] = int(ch - '0')
			case ch == emptyRune || ch == ' ':
			case ch == playerRune:
				if start != nil {
					return nil, fmt.Errorf("row %d col %d: %w", r, c, ErrMultipleStarts)
				}
				start = tileCenter(r, c, tileSize)
			default:
				return nil, fmt.Errorf("row %d col %d %q: %w", r, c, ch, ErrUnknownTile)
			}
		}
	}

	grid, err := engine.NewGrid(tiles, tileSize)
	if err != nil {
		return nil, err
	}
	return &Level{Grid: grid, Start: start}, nil
}

// Palette maps level image pixel colors to tile codes.
type Palette struct {
	Codes  map[color.NRGBA]int
	Player color.NRGBA
}

// DefaultPalette keeps the black-wall, white-floor, blue-player scheme and
// gives further colors their own wall codes.
func DefaultPalette() Palette {
	return Palette{
		Codes: map[color.NRGBA]int{
			{255, 255, 255, 255}: 0,
			{0, 0, 0, 255}:       1,
			{255, 0, 0, 255}:     2,
			{0, 255, 0, 255}:     3,
			{255, 255, 0, 255}:   4,
			{255, 0, 255, 255}:   5,
			{0, 255, 255, 255}:   6,
			{128, 128, 128, 255}: 7,
			{128, 64, 0, 255}:    8,
		},
		Player: color.NRGBA{0, 0, 255, 255},
	}
}

// FromImage builds a level from a decoded image with one pixel per tile.
func FromImage(img image.Image, tileSize float64, palette Palette) (*Level, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	tiles := make([][]int, height)
	for i := range tiles {
		tiles[i] = make([]int, width)
	}

	// fill tiles based on pixel colors
	var start *geom.Vector2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)

			if c == palette.Player {
				if start != nil {
					return nil, fmt.Errorf("pixel (%d,%d): %w", x, y, ErrMultipleStarts)
				}
				start = tileCenter(y, x, tileSize)
				continue
			}
			code, ok := palette.Codes[c]
			if !ok {
				return nil, fmt.Errorf("pixel (%d,%d) %v: %w", x, y, c, ErrUnknownColor)
			}
			tiles[y][x] = code
		}
	}

	grid, err := engine.NewGrid(tiles, tileSize)
	if err != nil {
		return nil, err
	}
	return &Level{Grid: grid, Start: start}, nil
}

// DecodeImage reads a PNG, JPEG or BMP level image.
func DecodeImage(r io.Reader, tileSize float64, palette Palette) (*Level, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeLevelFile, err)
	}
	return FromImage(img, tileSize, palette)
}

// Source says where a level comes from. Image takes precedence over Rows.
type Source struct {
	FS       fs.FS
	Image    string
	Rows     []string
	TileSize float64
	Palette  Palette
}

// Load reads the level described by src and checks that its border is closed.
func Load(src Source, log logrus.FieldLogger) (*Level, error) {
	var (
		lvl *Level
		err error
	)
	switch {
	case src.Image != "":
		lvl, err = loadImageFile(src)
	case len(src.Rows) > 0:
		lvl, err = FromRows(src.Rows, src.TileSize)
	default:
		err = ErrNoLevelDefined
	}
	if err != nil {
		return nil, err
	}

	if err := lvl.Grid.Validate(); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"image":    src.Image,
		"rows":     lvl.Grid.Rows(),
		"cols":     lvl.Grid.Cols(),
		"tileSize": lvl.Grid.TileSize(),
		"maxCode":  lvl.Grid.MaxCode(),
		"start":    lvl.Start != nil,
	}).Info("level loaded")
	return lvl, nil
}

func loadImageFile(src Source) (*Level, error) {
	file, err := src.FS.Open(src.Image)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lvl, err := DecodeImage(file, src.TileSize, src.Palette)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src.Image, err)
	}
	return lvl, nil
}

func tileCenter(row, col int, tileSize float64) *geom.Vector2 {
	return &geom.Vector2{
		X: (float64(col) + 0.5) * tileSize,
		Y: (float64(row) + 0.5) * tileSize,
	}
}
