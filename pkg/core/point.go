package core

import "fmt"

// Point is an absolute cell coordinate. Y grows downwards.
type Point struct {
	X, Y int64
}

// Add translates p by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Mul scales both coordinates by k.
func (p Point) Mul(k int64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Div divides both coordinates by k, rounding towards negative infinity so
// that cells keep mapping to the block that contains them.
func (p Point) Div(k int64) Point { return Point{X: floorDiv(p.X, k), Y: floorDiv(p.Y, k)} }

// Less orders points row-major: by Y, then by X.
func (p Point) Less(q Point) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

// Compare returns -1, 0 or +1 following Less, for use with slices.SortFunc.
func (p Point) Compare(q Point) int {
	switch {
	case p.Less(q):
		return -1
	case q.Less(p):
		return 1
	}
	return 0
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Rect is a half-open box of cells [Min, Max).
type Rect struct {
	Min, Max Point
}

// Dx returns the width of r.
func (r Rect) Dx() int64 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() int64 { return r.Max.Y - r.Min.Y }

// Empty reports whether r contains no cells.
func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// BoundingBox returns the smallest Rect containing every point.
func BoundingBox(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	r := Rect{Min: points[0], Max: points[0].Add(Point{X: 1, Y: 1})}
	for _, p := range points[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X+1)
		r.Max.Y = max(r.Max.Y, p.Y+1)
	}
	return r
}
