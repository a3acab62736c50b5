package app

import (
	"image/color"

	"hashlife/internal/render"
)

var (
	colorOff = color.RGBA{R: 8, G: 10, B: 14, A: 255}
	colorOn  = color.RGBA{R: 250, G: 236, B: 170, A: 255}
)

// DefaultRamp is the palette used by the viewer and colour frame export.
func DefaultRamp() *render.Ramp { return render.NewRamp(colorOff, colorOn) }
