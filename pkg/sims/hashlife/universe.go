// Package hashlife simulates Life with a hash-consed quadtree: identical
// regions share one node and their futures are computed once.
package hashlife

import (
	"log/slog"

	"hashlife/internal/table"
	"hashlife/pkg/core"
)

// minStepDepth is the smallest root depth whose grandchildren leave room for
// the two-pass overlap in advance.
const minStepDepth = 3

// Universe owns one quadtree root together with its depth and the absolute
// position of its top-left cell. A Universe is not safe for concurrent use.
type Universe struct {
	store      *Store
	root       table.Key
	depth      int
	offset     core.Point
	generation uint64

	gcThreshold int
	log         *slog.Logger
}

// New returns an empty universe.
func New(opts ...Option) *Universe {
	o := newOptions(opts)
	u := &Universe{
		store:       NewStore(o.cfg.TableLog2),
		gcThreshold: o.cfg.GCThreshold,
		log:         o.log,
	}
	u.root = u.store.Black(1)
	u.depth = 1
	// depth 2 at least, so the root always has grandchildren
	u.IncreaseDepth()
	return u
}

// FromPoints builds a universe whose live cells are exactly points.
func FromPoints(points []core.Point, opts ...Option) *Universe {
	u := New(opts...)
	if len(points) == 0 {
		return u
	}

	// blocks are numbered from the top-left block of the pattern so that
	// halving always converges on block (0, 0)
	base := core.BoundingBox(points).Min.Div(8)
	level := make(map[core.Point]table.Key)
	for _, p := range points {
		block := p.Div(8)
		local := p.Sub(block.Mul(8))
		block = block.Sub(base)
		k := level[block]
		k.Lo |= 1 << (local.Y*8 + local.X)
		level[block] = k
	}

	depth := 0
	for len(level) > 1 || depth < minStepDepth {
		depth++
		level = u.gather(level, depth)
	}
	for p, k := range level {
		u.root = k
		u.offset = p.Mul(int64(8) << depth).Add(base.Mul(8))
	}
	u.depth = depth
	return u
}

// gather groups 2x2 neighbourhoods of depth-1 keys into depth keys, padding
// missing neighbours with dead space.
func (u *Universe) gather(prev map[core.Point]table.Key, depth int) map[core.Point]table.Key {
	next := make(map[core.Point]table.Key, len(prev)/2+1)
	black := u.store.Black(depth - 1)
	for p := range prev {
		parent := p.Div(2)
		if _, ok := next[parent]; ok {
			continue
		}
		var q Quad
		for i := range q {
			child := parent.Mul(2).Add(core.Point{X: int64(i % 2), Y: int64(i / 2)})
			if k, ok := prev[child]; ok {
				q[i] = k
			} else {
				q[i] = black
			}
		}
		next[parent] = u.store.Canonicalize(q)
	}
	return next
}

// Name returns the engine identifier.
func (u *Universe) Name() string { return "hashlife" }

// Depth returns the depth of the root; the root spans 8<<Depth cells.
func (u *Universe) Depth() int { return u.depth }

// Offset returns the absolute position of the root's top-left cell.
func (u *Universe) Offset() core.Point { return u.offset }

// Generation returns the number of generations advanced so far.
func (u *Universe) Generation() uint64 { return u.generation }

// Population returns the number of live cells.
func (u *Universe) Population() uint64 { return u.store.KeyPopulation(u.root) }

// NodeCount returns the number of nodes held by the store.
func (u *Universe) NodeCount() int { return u.store.Len() }

// Bounds returns the bounding box of the live cells.
func (u *Universe) Bounds() core.Rect { return core.BoundingBox(u.Points()) }

// IncreaseDepth pads the root with one ring of dead space. The old root
// becomes the centre of the new one, so absolute positions do not change.
func (u *Universe) IncreaseDepth() {
	c := u.store.mustGet(u.root).Quad
	b := u.store.Black(u.depth - 1)
	g := [16]table.Key{
		b, b, b, b,
		b, c[0], c[1], b,
		b, c[2], c[3], b,
		b, b, b, b,
	}
	u.root = u.store.Canonicalize(Quad{
		u.store.Canonicalize(window(&g, 0, 0)), u.store.Canonicalize(window(&g, 2, 0)),
		u.store.Canonicalize(window(&g, 0, 2)), u.store.Canonicalize(window(&g, 2, 2)),
	})
	shift := int64(8) << (u.depth - 1)
	u.offset = u.offset.Sub(core.Point{X: shift, Y: shift})
	u.depth++
	treeGrows.Inc()
}

// borderOccupied reports whether any live cell sits in the outer ring of the
// root's 4x4 grandchild grid.
func (u *Universe) borderOccupied() bool {
	grid := u.store.expand(u.store.mustGet(u.root).Quad)
	for i, k := range grid {
		if outerRing[i] && u.store.KeyPopulation(k) != 0 {
			return true
		}
	}
	return false
}

// StepForward advances the universe by n generations.
func (u *Universe) StepForward(n uint64) {
	for n > 0 {
		for u.depth < minStepDepth {
			u.IncreaseDepth()
		}
		cur := min(FullSteps(u.depth-1), n)
		if u.borderOccupied() {
			u.IncreaseDepth()
			u.log.Debug("universe needs room", "depth", u.depth, "population", u.Population())
			continue
		}

		u.IncreaseDepth()
		u.root = u.store.advance(u.store.mustGet(u.root).Quad, u.depth-1, cur)
		u.depth--
		shift := int64(8) << (u.depth - 1)
		u.offset = u.offset.Add(core.Point{X: shift, Y: shift})

		u.generation += cur
		generationsAdvanced.Add(float64(cur))
		n -= cur
	}
	storeNodes.Set(float64(u.store.Len()))
}

// Step advances n generations, then collects garbage when the store holds
// more nodes than the configured threshold.
func (u *Universe) Step(n uint64) {
	u.StepForward(n)
	if u.gcThreshold > 0 {
		u.CollectIfAbove(u.gcThreshold)
	}
}

func init() {
	core.Register("hashlife", func(cfg map[string]string, points []core.Point) core.Universe {
		return FromPoints(points, WithConfig(FromMap(cfg)))
	})
}
