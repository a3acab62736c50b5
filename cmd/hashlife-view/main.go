//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"hashlife/internal/app"
	"hashlife/pkg/core"
	"hashlife/pkg/rle"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	points, err := loadPoints(cfg)
	if err != nil {
		log.Fatal(err)
	}

	scale := max(cfg.Scale, 1)
	session := app.NewSession(cfg, points, cfg.Width/scale, cfg.Height/scale)
	game := app.New(session, cfg)

	ebiten.SetWindowTitle("hashlife")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func loadPoints(cfg *app.Config) ([]core.Point, error) {
	if cfg.Pattern == "" {
		return core.NewRNG(cfg.Seed).Soup(core.Point{}, cfg.Soup, cfg.Soup, cfg.Density), nil
	}
	f, err := os.Open(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return rle.Parse(f)
}
