package world

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raycaster/config"
	"raycaster/engine"
	"raycaster/model"
)

func TestNewFromDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	log, hook := test.NewNullLogger()

	w, err := New(cfg, log)
	require.NoError(t, err)

	require.NotNil(t, w.Level.Start)
	assert.Equal(t, *w.Level.Start, w.Simulation.Player().Position)
	assert.Len(t, w.Textures, w.Level.Grid.MaxCode())
	assert.Equal(t, 64, w.Textures[0].Width)
	assert.Len(t, w.Simulation.Hits(), cfg.Render.Width)
	assert.Equal(t, "world ready", hook.LastEntry().Message)

	// the first frame is rendered before any step
	for _, hit := range w.Simulation.Hits() {
		require.True(t, hit.Hit)
	}
}

func TestNewLoadsTextureFiles(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wall.png"), buf.Bytes(), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Map.Rows = []string{"111", "1P1", "111"}
	cfg.Textures.Dir = dir
	cfg.Textures.Files = []string{"wall.png"}
	cfg.Textures.Size = 0
	log, _ := test.NewNullLogger()

	w, err := New(cfg, log)
	require.NoError(t, err)
	require.Len(t, w.Textures, 1)
	assert.Equal(t, 2, w.Textures[0].Width)
	assert.Equal(t, engine.PackRGBA(10, 20, 30, 255), w.Textures[0].At(0, 0))

	w.Simulation.Step(model.Intents{TurnDirection: 1}, 1.0/60)
	assert.Equal(t, uint64(1), w.Simulation.Frame())
}

func TestNewMissingTexture(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Map.Rows = []string{"111", "1P2", "111"}
	cfg.Textures.Dir = t.TempDir()
	cfg.Textures.Files = []string{}
	log, _ := test.NewNullLogger()

	// procedural textures cover every code
	_, err = New(cfg, log)
	require.NoError(t, err)

	cfg.Textures.Files = []string{"nope.png"}
	_, err = New(cfg, log)
	assert.Error(t, err)
}

func TestNewLoadsLevelImage(t *testing.T) {
	// 4x3 ring of red walls around a floor tile and the start
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{255, 0, 0, 255})
		}
	}
	img.SetNRGBA(1, 1, color.NRGBA{0, 0, 255, 255})
	img.SetNRGBA(2, 1, color.NRGBA{255, 255, 255, 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	file := filepath.Join(t.TempDir(), "level.png")
	require.NoError(t, os.WriteFile(file, buf.Bytes(), 0o644))

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Map.Image = file
	log, _ := test.NewNullLogger()

	w, err := New(cfg, log)
	require.NoError(t, err)
	assert.Equal(t, 3, w.Level.Grid.Rows())
	assert.Equal(t, 4, w.Level.Grid.Cols())
	assert.Equal(t, 2, w.Level.Grid.MaxCode())
	assert.Len(t, w.Textures, 2)
	assert.Equal(t, 1.5*64, w.Simulation.Player().Position.X)
}
