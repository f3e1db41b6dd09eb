package engine

import "errors"

var (
	ErrEmptyGrid      = errors.New("grid has no tiles")
	ErrNotRectangular = errors.New("grid rows differ in length")
	ErrNegativeTile   = errors.New("grid tile code is negative")
	ErrBadTileSize    = errors.New("tile size must be positive")
	ErrOpenBorder     = errors.New("grid border is not fully enclosed by walls")
	ErrMissingTexture = errors.New("tile code references a missing texture")
)
