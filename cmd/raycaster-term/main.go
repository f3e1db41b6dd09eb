// Command raycaster-term renders the raycaster in a terminal, two pixels per
// character cell.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"raycaster/config"
	"raycaster/world"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "config file (yaml, json or toml) merged over the defaults")
	logPath := pflag.String("log-file", "", "append logs to this file; logs are discarded otherwise")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatal(err)
	}

	log := cfg.NewLogger()
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			logrus.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(cfg, log); err != nil {
		logrus.Fatal(err)
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to start tcell: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init tcell.Screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	// the frame matches the terminal at startup; later resizes rescale it
	cols, rows := screen.Size()
	cfg.Render.Width, cfg.Render.Height, cfg.Render.Columns = cols, rows*2, 0

	w, err := world.New(cfg, log)
	if err != nil {
		return err
	}

	t := newTerminal(screen, w.Simulation, log)
	return t.loop(time.Second / time.Duration(cfg.Window.TPS))
}
