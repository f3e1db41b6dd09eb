// main.go
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"raycaster/config"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "config file (yaml, json or toml) merged over the defaults")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatal(err)
	}
	log := cfg.NewLogger()

	g, err := NewGame(cfg, log)
	if err != nil {
		log.Fatal(err)
	}
	if err := g.Run(); err != nil {
		log.Fatal(err)
	}
}
