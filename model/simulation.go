package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/jinzhu/copier"

	"raycaster/engine"
)

var (
	ErrBadViewport = errors.New("viewport width and height must be positive")
	ErrBadFov      = errors.New("field of view must be in (0, π)")
	ErrBadColumns  = errors.New("ray columns must be in [0, width]")
	ErrPlayerStart = errors.New("player does not start on a passable tile")
)

// Settings describe the view a Simulation renders.
type Settings struct {
	Width   int // color buffer size in pixels
	Height  int
	Columns int // rays per frame; 0 casts one per pixel column
	Workers int

	Fov        float64 // radians
	Projection engine.Projection

	Ceiling uint32
	Floor   uint32
}

func (s Settings) validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", s.Width, s.Height, ErrBadViewport)
	}
	if !(s.Fov > 0 && s.Fov < math.Pi) {
		return fmt.Errorf("fov %v: %w", s.Fov, ErrBadFov)
	}
	if s.Columns < 0 || s.Columns > s.Width {
		return fmt.Errorf("columns %d for width %d: %w", s.Columns, s.Width, ErrBadColumns)
	}
	return nil
}

// Simulation owns the world state and runs the per-frame pipeline:
// Update, then CastRays, then Project.
type Simulation struct {
	grid      *engine.Grid
	player    Player
	caster    *engine.Caster
	projector *engine.Projector
	hits      []engine.RayHit
	buffer    *engine.ColorBuffer
	frame     uint64
}

// NewSimulation validates the world and allocates the per-frame buffers.
// textures[n-1] is used for wall code n.
func NewSimulation(grid *engine.Grid, player Player, textures []*engine.Texture, settings Settings) (*Simulation, error) {
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if err := engine.ValidateTextures(grid, textures); err != nil {
		return nil, err
	}
	if !grid.IsPassable(player.Position.X, player.Position.Y) {
		return nil, fmt.Errorf("(%.1f, %.1f): %w", player.Position.X, player.Position.Y, ErrPlayerStart)
	}

	columns := settings.Columns
	if columns == 0 {
		columns = settings.Width
	}

	s := &Simulation{
		grid:      grid,
		player:    player,
		caster:    engine.NewCaster(settings.Fov, settings.Projection, settings.Workers),
		projector: engine.NewProjector(settings.Fov, grid.TileSize(), settings.Ceiling, settings.Floor, textures),
		hits:      make([]engine.RayHit, columns),
		buffer:    engine.NewColorBuffer(settings.Width, settings.Height),
	}
	s.render()
	return s, nil
}

// Step advances one tick. Movement is always applied before rays are cast so
// the frame shows the post-move position.
func (s *Simulation) Step(intents Intents, dt float64) {
	s.player = Update(s.player, s.grid, intents, dt)
	s.render()
	s.frame++
}

func (s *Simulation) render() {
	s.caster.CastRays(s.grid, s.player.Pose(), s.hits)
	s.projector.Project(s.hits, s.player.RotationAngle, s.buffer)
}

func (s *Simulation) Grid() *engine.Grid          { return s.grid }
func (s *Simulation) Player() Player              { return s.player }
func (s *Simulation) Hits() []engine.RayHit       { return s.hits }
func (s *Simulation) Buffer() *engine.ColorBuffer { return s.buffer }
func (s *Simulation) Frame() uint64               { return s.frame }

// Snapshot is a copy of the simulation state that stays valid after the next
// Step overwrites the live buffers.
type Snapshot struct {
	Frame  uint64
	Player Player
	Hits   []engine.RayHit
}

func (s *Simulation) Snapshot() (Snapshot, error) {
	live := Snapshot{
		Frame:  s.frame,
		Player: s.player,
		Hits:   s.hits,
	}
	var snap Snapshot
	if err := copier.CopyWithOption(&snap, &live, copier.Option{DeepCopy: true}); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot frame %d: %w", s.frame, err)
	}
	return snap, nil
}
