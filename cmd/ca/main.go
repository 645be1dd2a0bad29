//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"seat-ca/internal/app"
	_ "seat-ca/internal/sims/seating"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	sim, err := cfg.BuildSim()
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(sim, cfg, logger)
	size := sim.Size()
	scale := max(cfg.Scale, 1)

	ebiten.SetWindowTitle("seat-ca: " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*scale+max(cfg.Panel, 0), size.H*scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
