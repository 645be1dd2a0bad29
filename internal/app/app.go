//go:build ebiten

package app

import (
	"image/color"
	"log/slog"
	"time"

	"seat-ca/internal/core"
	"seat-ca/internal/render"
	"seat-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type errorReporter interface {
	Err() error
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	pacer   *core.FixedStep
	log     *slog.Logger

	tint     color.RGBA
	scale    int
	panel    int
	paused   bool
	tickOnce bool
	settled  bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config, logger *slog.Logger) *Game {
	size := sim.Size()
	scale := max(cfg.Scale, 1)
	return &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H, render.SeatPalette),
		overlay: ui.NewOverlay(sim, scale),
		hud:     ui.NewHUD(sim, cfg.Panel),
		pacer:   core.NewFixedStep(cfg.Rate),
		log:     logger,
		tint:    color.RGBA{R: 250, G: 220, B: 90, A: 255},
		scale:   scale,
		panel:   max(cfg.Panel, 0),
		seed:    cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.settled = false
	g.log.Info("reset", "sim", g.sim.Name(), "seed", seed)
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	g.overlay.Update()
	if g.hud.Update(g.sim.Size().W * g.scale) {
		g.settled = false
	}

	if g.tickOnce || (!g.paused && g.pacer.ShouldStep()) {
		g.sim.Step()
		g.tickOnce = false
	}
	g.checkSettled()
	return nil
}

func (g *Game) checkSettled() {
	s, ok := g.sim.(core.Settler)
	if !ok || g.settled || !s.Settled() {
		return
	}
	g.settled = true
	if r, ok := g.sim.(errorReporter); ok && r.Err() != nil {
		g.log.Warn("stopped", "sim", g.sim.Name(), "err", r.Err())
		return
	}
	if p, ok := g.sim.(core.ParameterProvider); ok {
		snap := p.Parameters()
		gen, _ := snap.Lookup("generation")
		occ, _ := snap.Lookup("occupied")
		g.log.Info("settled", "sim", g.sim.Name(), "generation", gen.Value, "occupied", occ.Value)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.overlay.Targets(), g.tint, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.panel, s.H * g.scale
}
