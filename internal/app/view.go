package app

import (
	"hashlife/pkg/core"
)

// maxZoom keeps a pixel's side, 1<<zoom cells, inside int64.
const maxZoom = 60

// View maps a W*H pixel raster onto the cell plane. Each pixel covers a
// square of 1<<Zoom cells per side; Offset is the cell under pixel (0, 0).
type View struct {
	Offset core.Point
	Zoom   uint8
	W, H   int
}

// Centre returns the cell under the middle of the raster.
func (v *View) Centre() core.Point {
	return v.Offset.Add(core.Point{X: int64(v.W/2) << v.Zoom, Y: int64(v.H/2) << v.Zoom})
}

func (v *View) centreOn(c core.Point) {
	v.Offset = c.Sub(core.Point{X: int64(v.W/2) << v.Zoom, Y: int64(v.H/2) << v.Zoom})
}

// Pan moves the view by dx, dy pixels.
func (v *View) Pan(dx, dy int) {
	v.Offset = v.Offset.Add(core.Point{X: int64(dx) << v.Zoom, Y: int64(dy) << v.Zoom})
}

// ZoomBy zooms out by delta levels (in when negative), keeping the centre.
func (v *View) ZoomBy(delta int) {
	z := min(max(int(v.Zoom)+delta, 0), maxZoom)
	if z == int(v.Zoom) {
		return
	}
	c := v.Centre()
	v.Zoom = uint8(z)
	v.centreOn(c)
}

// Resize changes the raster size, keeping the centre.
func (v *View) Resize(w, h int) {
	if w == v.W && h == v.H {
		return
	}
	c := v.Centre()
	v.W, v.H = max(w, 1), max(h, 1)
	v.centreOn(c)
}

// Fit picks the closest zoom that shows all of r and centres on it.
func (v *View) Fit(r core.Rect) {
	if r.Empty() {
		v.Zoom = 0
		v.centreOn(core.Point{})
		return
	}
	z := 0
	for z < maxZoom && (r.Dx()>>z > int64(v.W) || r.Dy()>>z > int64(v.H)) {
		z++
	}
	v.Zoom = uint8(z)
	v.centreOn(core.Point{X: r.Min.X + r.Dx()/2, Y: r.Min.Y + r.Dy()/2})
}
