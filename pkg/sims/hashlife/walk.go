package hashlife

import (
	"math/bits"

	"hashlife/internal/table"
	"hashlife/pkg/core"
)

// densityFractionBits is the fixed-point precision of the brightness scale.
const densityFractionBits = 16

// maxBrightness keeps 255*brightness in fixed point well inside 64 bits.
const maxBrightness = 1 << 24

// Visitor is called for every live square reached by Walk. level is log2 of
// the square's side: single cells are level 0, raw blocks level 3 and a node
// at depth d level d+3. Returning false skips the square's children.
type Visitor func(level int, at core.Point, population uint64) bool

// Walk visits live squares top-down, starting at the root. Squares without
// live cells are never visited.
func (u *Universe) Walk(visit Visitor) {
	u.walk(u.root, u.depth, u.offset, visit)
}

func (u *Universe) walk(k table.Key, depth int, at core.Point, visit Visitor) {
	if depth == 0 {
		walkRaw(k.Lo, 0, 0, 3, at, visit)
		return
	}
	node := u.store.mustGet(k)
	if node.Population == 0 || !visit(depth+3, at, node.Population) {
		return
	}
	half := int64(4) << depth
	for i, child := range node.Quad {
		u.walk(child, depth-1, at.Add(core.Point{X: int64(i%2) * half, Y: int64(i/2) * half}), visit)
	}
}

// walkRaw descends into the square of side 1<<level at (x, y) inside an 8x8
// block.
func walkRaw(block uint64, x, y, level int, at core.Point, visit Visitor) {
	pop := uint64(bits.OnesCount64(block & squareMask(x, y, 1<<level)))
	if pop == 0 || !visit(level, at, pop) || level == 0 {
		return
	}
	half := 1 << (level - 1)
	for i := 0; i < 4; i++ {
		dx, dy := (i%2)*half, (i/2)*half
		walkRaw(block, x+dx, y+dy, level-1, at.Add(core.Point{X: int64(dx), Y: int64(dy)}), visit)
	}
}

func squareMask(x, y, size int) uint64 {
	row := (uint64(1)<<size - 1) << x
	var m uint64
	for r := y; r < y+size; r++ {
		m |= row << (8 * r)
	}
	return m
}

// Points returns every live cell, in no particular order.
func (u *Universe) Points() []core.Point {
	var points []core.Point
	u.Walk(func(level int, at core.Point, _ uint64) bool {
		if level == 0 {
			points = append(points, at)
			return false
		}
		return true
	})
	return points
}

// GrayscaleMap renders a width*height density map whose top-left pixel sits
// at offset. Each pixel covers a square of 1<<zoom cells per side and is
// 255*brightness times the fraction of live cells in it, clamped to 255.
// Rows are stored top to bottom, one byte per pixel.
func (u *Universe) GrayscaleMap(offset core.Point, width, height int, zoom uint8, brightness float64) []byte {
	grid := core.NewByteGrid(width, height)
	if grid.W == 0 || grid.H == 0 {
		return grid.Cells()
	}
	scale := 255 * fixedBrightness(brightness)
	shift := 2*uint(zoom) + densityFractionBits
	u.Walk(func(level int, at core.Point, pop uint64) bool {
		if level >= 62 {
			return true
		}
		side := int64(1) << level
		x0, y0 := (at.X-offset.X)>>zoom, (at.Y-offset.Y)>>zoom
		x1, y1 := (at.X+side-1-offset.X)>>zoom, (at.Y+side-1-offset.Y)>>zoom
		if x1 < 0 || y1 < 0 || x0 >= int64(grid.W) || y0 >= int64(grid.H) {
			return false
		}
		if level > int(zoom) {
			return true
		}
		// a square no larger than a pixel is credited to the pixel holding
		// its top-left cell
		if grid.Contains(int(x0), int(y0)) {
			grid.AddSaturating(int(x0), int(y0), density(pop, scale, shift))
		}
		return false
	})
	return grid.Cells()
}

func fixedBrightness(b float64) uint64 {
	if !(b > 0) {
		return 0
	}
	if b > maxBrightness {
		b = maxBrightness
	}
	return uint64(b * (1 << densityFractionBits))
}

// density returns min(255, scale*pop >> shift) without overflowing.
func density(pop, scale uint64, shift uint) uint64 {
	hi, lo := bits.Mul64(scale, pop)
	var v uint64
	switch {
	case shift >= 128:
		return 0
	case shift >= 64:
		v = hi >> (shift - 64)
	default:
		if hi>>shift != 0 {
			return 255
		}
		v = lo>>shift | hi<<(64-shift)
	}
	return min(v, 255)
}
