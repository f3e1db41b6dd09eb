package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"raycaster/engine"
	"raycaster/model"
)

// Terminals only report key presses and their auto-repeat, never releases, so
// a key counts as held until this many ticks pass without a repeat.
const holdTicks = 8

const upperHalfBlock = '▀'

var statusStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

type terminal struct {
	screen tcell.Screen
	sim    *model.Simulation
	log    logrus.FieldLogger
	held   heldIntents
	paused bool
}

func newTerminal(screen tcell.Screen, sim *model.Simulation, log logrus.FieldLogger) *terminal {
	return &terminal{screen: screen, sim: sim, log: log}
}

// loop polls events on a goroutine and steps the simulation on every tick
// until a quit key is pressed.
func (t *terminal) loop(tick time.Duration) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(t.screen, events, done)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	dt := tick.Seconds()

	for {
		select {
		case ev := <-events:
			if quit := t.handleEvent(ev); quit {
				t.log.Info("exit requested")
				return nil
			}
		case <-ticker.C:
			if !t.paused {
				t.sim.Step(t.held.intents, dt)
			}
			t.held.tick()
			draw(t.screen, t.sim.Buffer())
			if t.paused {
				drawStatus(t.screen, "PAUSED - p to resume, esc to quit")
			}
			t.screen.Show()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done is
// closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (t *terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return true
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'p':
			t.paused = !t.paused
			t.log.WithField("paused", t.paused).Debug("pause toggled")
		default:
			t.held.press(keyIntents(ev))
		}
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return false
}

// keyIntents maps a single key press to the intents it requests.
func keyIntents(ev *tcell.EventKey) model.Intents {
	var in model.Intents
	switch ev.Key() {
	case tcell.KeyUp:
		in.WalkDirection = 1
	case tcell.KeyDown:
		in.WalkDirection = -1
	case tcell.KeyLeft:
		in.TurnDirection = -1
	case tcell.KeyRight:
		in.TurnDirection = 1
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			in.WalkDirection = 1
		case 's', 'S':
			in.WalkDirection = -1
		case 'q', 'Q':
			in.TurnDirection = -1
		case 'e', 'E':
			in.TurnDirection = 1
		case 'a', 'A':
			in.StrafeDirection = -1
		case 'd', 'D':
			in.StrafeDirection = 1
		}
	}
	return in
}

// heldIntents keeps each movement axis active for holdTicks after its last
// key press.
type heldIntents struct {
	intents model.Intents
	walk    int
	turn    int
	strafe  int
}

func (h *heldIntents) press(in model.Intents) {
	if in.WalkDirection != 0 {
		h.intents.WalkDirection, h.walk = in.WalkDirection, holdTicks
	}
	if in.TurnDirection != 0 {
		h.intents.TurnDirection, h.turn = in.TurnDirection, holdTicks
	}
	if in.StrafeDirection != 0 {
		h.intents.StrafeDirection, h.strafe = in.StrafeDirection, holdTicks
	}
}

func (h *heldIntents) tick() {
	release(&h.walk, &h.intents.WalkDirection)
	release(&h.turn, &h.intents.TurnDirection)
	release(&h.strafe, &h.intents.StrafeDirection)
}

func release(ttl, direction *int) {
	if *ttl > 0 {
		*ttl--
	}
	if *ttl == 0 {
		*direction = 0
	}
}

// draw scales buf onto the screen with two vertically stacked pixels per
// cell: the upper one as the foreground of '▀', the lower one as background.
func draw(screen tcell.Screen, buf *engine.ColorBuffer) {
	cols, rows := screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := sample(buf, x, 2*y, cols, 2*rows)
			bottom := sample(buf, x, 2*y+1, cols, 2*rows)
			style := tcell.StyleDefault.Foreground(toColor(top)).Background(toColor(bottom))
			screen.SetContent(x, y, upperHalfBlock, nil, style)
		}
	}
}

func drawStatus(screen tcell.Screen, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(i, 0, r, nil, statusStyle)
	}
}

// sample picks the buffer pixel under (x, y) of a w x h target.
func sample(buf *engine.ColorBuffer, x, y, w, h int) uint32 {
	return buf.Pixel(x*buf.Width/w, y*buf.Height/h)
}

func toColor(c uint32) tcell.Color {
	r, g, b, _ := engine.UnpackRGBA(c)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
