// Package life implements Conway's Game of Life on an unbounded grid by
// counting the neighbours of every live cell. It is slow and simple, which
// makes it the reference the quadtree engine is checked against.
package life

import (
	"hashlife/pkg/core"
)

// Life holds the set of live cells.
type Life struct {
	cur        map[core.Point]struct{}
	generation uint64
}

// New returns a Life simulation with the provided live cells.
func New(points []core.Point) *Life {
	cur := make(map[core.Point]struct{}, len(points))
	for _, p := range points {
		cur[p] = struct{}{}
	}
	return &Life{cur: cur}
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Points returns the live cells, in no particular order.
func (l *Life) Points() []core.Point {
	points := make([]core.Point, 0, len(l.cur))
	for p := range l.cur {
		points = append(points, p)
	}
	return points
}

// Population returns the number of live cells.
func (l *Life) Population() uint64 { return uint64(len(l.cur)) }

// Generation returns the number of generations advanced so far.
func (l *Life) Generation() uint64 { return l.generation }

// Alive reports whether the cell at p is alive.
func (l *Life) Alive(p core.Point) bool {
	_, ok := l.cur[p]
	return ok
}

// Step advances the simulation by n generations.
func (l *Life) Step(n uint64) {
	for i := uint64(0); i < n; i++ {
		l.step()
	}
}

func (l *Life) step() {
	neighbors := make(map[core.Point]int, len(l.cur)*4)
	for p := range l.cur {
		for dy := int64(-1); dy <= 1; dy++ {
			for dx := int64(-1); dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				neighbors[core.Point{X: p.X + dx, Y: p.Y + dy}]++
			}
		}
	}
	nxt := make(map[core.Point]struct{}, len(l.cur))
	for p, n := range neighbors {
		_, alive := l.cur[p]
		if (alive && (n == 2 || n == 3)) || (!alive && n == 3) {
			nxt[p] = struct{}{}
		}
	}
	l.cur = nxt
	l.generation++
}

func init() {
	core.Register("life", func(_ map[string]string, points []core.Point) core.Universe {
		return New(points)
	})
}
