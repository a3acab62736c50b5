package core

// ByteGrid stores a 2D grid of byte-sized values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions. Non-positive sizes
// produce an empty grid.
func NewByteGrid(w, h int) *ByteGrid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Contains reports whether (x, y) lies inside the grid.
func (g *ByteGrid) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// AddSaturating adds v to the cell at (x, y), clamping at 255.
func (g *ByteGrid) AddSaturating(x, y int, v uint64) {
	idx := g.Index(x, y)
	sum := uint64(g.data[idx]) + v
	if sum > 255 {
		sum = 255
	}
	g.data[idx] = uint8(sum)
}
