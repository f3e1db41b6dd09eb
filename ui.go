// ui.go
package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"raycaster/engine"
)

const hudFontSize = 14

const hudHelp = "W/S walk, Q/E or arrows turn, A/D strafe\nTAB minimap, P pause, ESC exit"

// HUD is the status panel in the lower left corner.
type HUD struct {
	ui     *ebitenui.UI
	status *widget.Text
	pose   *widget.Text
}

func NewHUD() (*HUD, error) {
	face, err := loadFace(hudFontSize)
	if err != nil {
		return nil, err
	}

	h := &HUD{
		status: widget.NewText(widget.TextOpts.Text("", face, color.White)),
		pose:   widget.NewText(widget.TextOpts.Text("", face, color.White)),
	}
	help := widget.NewText(widget.TextOpts.Text(hudHelp, face, color.RGBA{180, 180, 180, 255}))

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(color.NRGBA{0, 0, 0, 160})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Padding(widget.Insets{Top: 6, Left: 8, Right: 8, Bottom: 6}),
			widget.RowLayoutOpts.Spacing(4),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)
	panel.AddChild(h.status)
	panel.AddChild(h.pose)
	panel.AddChild(help)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(widget.NewInsetsSimple(10)),
		)),
	)
	root.AddChild(panel)

	h.ui = &ebitenui.UI{Container: root}
	return h, nil
}

// loadFace parses the bundled Go Regular font at size points.
func loadFace(size float64) (font.Face, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("hud font: %w", err)
	}
	return truetype.NewFace(tt, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func (h *HUD) Update(g *Game) {
	state := "running"
	if g.paused {
		state = "PAUSED"
	}
	h.status.Label = fmt.Sprintf("FPS %0.1f  TPS %0.1f  frame %d  %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), g.snap.Frame, state)

	p := g.snap.Player
	center := g.snap.Hits[len(g.snap.Hits)/2]
	h.pose.Label = fmt.Sprintf("x %.1f  y %.1f  angle %.1f°  ahead %s",
		p.Position.X, p.Position.Y, p.RotationAngle*180/engine.Pi, describeHit(center))

	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	h.ui.Draw(screen)
}

func describeHit(hit engine.RayHit) string {
	if !hit.Hit {
		return "nothing"
	}
	face := "horizontal"
	if hit.HitIsVertical {
		face = "vertical"
	}
	return fmt.Sprintf("wall %d at %.1f (%s)", hit.TileCode, hit.Distance, face)
}
