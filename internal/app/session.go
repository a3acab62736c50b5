package app

import (
	"fmt"
	"log/slog"
	"strconv"

	"hashlife/internal/ui"
	"hashlife/pkg/core"
	"hashlife/pkg/sims/hashlife"
)

const (
	maxSpeed      = 40
	minBrightness = 1.0 / 64
	maxBrightness = 1 << 20
)

// Session is the viewer state that does not depend on a window: the
// universe, the view onto it and the playback controls.
type Session struct {
	u       *hashlife.Universe
	initial []core.Point
	opts    []hashlife.Option

	View       View
	Speed      int
	Brightness float64
	Paused     bool

	gcThreshold int
	log         *slog.Logger
}

// NewSession builds a universe from points and fits the view to it.
func NewSession(cfg *Config, points []core.Point, w, h int) *Session {
	s := &Session{
		initial:     points,
		Speed:       min(max(cfg.Speed, 0), maxSpeed),
		Brightness:  cfg.Brightness,
		gcThreshold: cfg.GCThreshold,
		log:         slog.Default().With("system", "viewer"),
		opts: []hashlife.Option{
			hashlife.WithTableLog2(uint8(min(max(cfg.TableLog2, 1), 39))),
			// collection is driven by the session after each tick
			hashlife.WithGCThreshold(0),
		},
	}
	s.View.W, s.View.H = max(w, 1), max(h, 1)
	s.Reset()
	return s
}

// Reset restores the initial pattern and refits the view.
func (s *Session) Reset() {
	s.u = hashlife.FromPoints(s.initial, s.opts...)
	s.View.Fit(s.u.Bounds())
}

// Universe exposes the simulated universe.
func (s *Session) Universe() *hashlife.Universe { return s.u }

// Tick advances ticks steps of 1<<Speed generations each and collects
// garbage once the store exceeds the threshold.
func (s *Session) Tick(ticks int) {
	if ticks <= 0 {
		return
	}
	for i := 0; i < ticks; i++ {
		s.u.StepForward(uint64(1) << s.Speed)
	}
	if s.gcThreshold > 0 && s.u.CollectIfAbove(s.gcThreshold) {
		s.log.Debug("store collected", "nodes", s.u.NodeCount(), "generation", s.u.Generation())
	}
}

// Frame renders the current view as a density map.
func (s *Session) Frame() []byte {
	return s.u.GrayscaleMap(s.View.Offset, s.View.W, s.View.H, s.View.Zoom, s.Brightness)
}

// Name implements ui.Source.
func (s *Session) Name() string { return "hashlife" }

// Stats implements ui.Source.
func (s *Session) Stats() []ui.Stat {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	c := s.View.Centre()
	return []ui.Stat{
		{Label: "state", Value: state},
		{Label: "generation", Value: ui.FormatCount(s.u.Generation())},
		{Label: "population", Value: ui.FormatCount(s.u.Population())},
		{Label: "nodes", Value: ui.FormatCount(uint64(s.u.NodeCount()))},
		{Label: "depth", Value: strconv.Itoa(s.u.Depth())},
		{Label: "centre", Value: c.String()},
	}
}

// Controls implements ui.Source.
func (s *Session) Controls() []ui.Control {
	return []ui.Control{
		{Key: "speed", Label: "Gens/tick"},
		{Key: "zoom", Label: "Cells/pixel"},
		{Key: "brightness", Label: "Brightness"},
	}
}

// ControlValue implements ui.Source.
func (s *Session) ControlValue(key string) string {
	switch key {
	case "speed":
		return "2^" + strconv.Itoa(s.Speed)
	case "zoom":
		return "2^" + strconv.Itoa(int(s.View.Zoom))
	case "brightness":
		return fmt.Sprintf("%.3g", s.Brightness)
	}
	return "--"
}

// CanAdjust implements ui.Source.
func (s *Session) CanAdjust(key string, direction int) bool {
	switch key {
	case "speed":
		return (direction < 0 && s.Speed > 0) || (direction > 0 && s.Speed < maxSpeed)
	case "zoom":
		return (direction < 0 && s.View.Zoom > 0) || (direction > 0 && s.View.Zoom < maxZoom)
	case "brightness":
		return (direction < 0 && s.Brightness > minBrightness) || (direction > 0 && s.Brightness < maxBrightness)
	}
	return false
}

// Adjust implements ui.Source. Each step doubles or halves the setting.
func (s *Session) Adjust(key string, direction int) bool {
	if direction == 0 || !s.CanAdjust(key, direction) {
		return false
	}
	switch key {
	case "speed":
		s.Speed += sign(direction)
	case "zoom":
		s.View.ZoomBy(sign(direction))
	case "brightness":
		if direction > 0 {
			s.Brightness = min(s.Brightness*2, maxBrightness)
		} else {
			s.Brightness = max(s.Brightness/2, minBrightness)
		}
	}
	return true
}

func sign(n int) int {
	if n < 0 {
		return -1
	}
	return 1
}
