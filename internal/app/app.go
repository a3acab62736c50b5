//go:build ebiten

package app

import (
	"time"

	"hashlife/internal/core"
	"hashlife/internal/render"
	"hashlife/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hudWidth is the width of the side panel in screen pixels.
const hudWidth = 220

// Game adapts a Session to the ebiten.Game interface.
type Game struct {
	s       *Session
	painter *render.GridPainter
	hud     *ui.HUD
	clock   *core.FixedStep
	ramp    *render.Ramp

	scale    int
	tickOnce bool
}

// New constructs a Game for the provided session.
func New(s *Session, cfg *Config) *Game {
	scale := max(cfg.Scale, 1)
	return &Game{
		s:       s,
		painter: render.NewGridPainter(s.View.W, s.View.H),
		hud:     ui.NewHUD(s, hudWidth),
		clock:   core.NewFixedStep(cfg.TPS),
		ramp:    DefaultRamp(),
		scale:   scale,
	}
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.s.Paused = !g.s.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.s.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.s.View.Fit(g.s.Universe().Bounds())
	}
	g.handleAdjustKeys()
	g.handlePan()
	g.hud.Update(g.s.View.W * g.scale)

	ticks := g.clock.Due(time.Now())
	switch {
	case g.tickOnce:
		ticks = 1
		g.tickOnce = false
	case g.s.Paused:
		ticks = 0
	}
	g.s.Tick(ticks)
	return nil
}

func (g *Game) handleAdjustKeys() {
	keys := []struct {
		key       ebiten.Key
		control   string
		direction int
	}{
		{ebiten.KeyEqual, "zoom", -1},
		{ebiten.KeyMinus, "zoom", 1},
		{ebiten.KeyBracketRight, "speed", 1},
		{ebiten.KeyBracketLeft, "speed", -1},
		{ebiten.KeyB, "brightness", 1},
		{ebiten.KeyV, "brightness", -1},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			g.s.Adjust(k.control, k.direction)
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.s.Adjust("zoom", -sign(int(dy*100)))
	}
}

func (g *Game) handlePan() {
	step := max(g.s.View.W, g.s.View.H) / 32
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		g.s.View.Pan(-step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		g.s.View.Pan(step, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.s.View.Pan(0, -step)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.s.View.Pan(0, step)
	}
}

// Draw renders the current view and the side panel.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Resize(g.s.View.W, g.s.View.H)
	g.painter.Blit(screen, g.s.Frame(), g.ramp, g.scale)
	g.hud.Draw(screen, g.s.View.W*g.scale, g.s.View.H*g.scale)
}

// Layout sizes the view to the window, leaving room for the panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.s.View.Resize((outsideWidth-hudWidth)/g.scale, outsideHeight/g.scale)
	return outsideWidth, outsideHeight
}
