package hashlife

import (
	"slices"
	"testing"

	"hashlife/internal/table"
	"hashlife/pkg/core"
	"hashlife/pkg/sims/life"

	"github.com/stretchr/testify/require"
)

var glider = []core.Point{{X: 1, Y: 0}, {X: 2, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 2, Y: 2}}

func sorted(points []core.Point) []core.Point {
	points = slices.Clone(points)
	slices.SortFunc(points, core.Point.Compare)
	return points
}

func shifted(points []core.Point, by core.Point) []core.Point {
	out := make([]core.Point, len(points))
	for i, p := range points {
		out[i] = p.Add(by)
	}
	return out
}

func soup(seed int64, origin core.Point, size int) []core.Point {
	return core.NewRNG(seed).Soup(origin, size, size, 0.35)
}

// keyPoints lists the live cells of k, a key at depth whose top-left cell is
// at offset.
func keyPoints(s *Store, k table.Key, depth int, offset core.Point) []core.Point {
	u := &Universe{store: s, root: k, depth: depth, offset: offset}
	return u.Points()
}

func TestNewIsEmpty(t *testing.T) {
	u := New()
	require.Zero(t, u.Population())
	require.Empty(t, u.Points())
	require.Equal(t, 2, u.Depth())
	require.Zero(t, u.Generation())

	u.StepForward(100)
	require.Zero(t, u.Population())
	require.EqualValues(t, 100, u.Generation())
}

func TestFromPointsRoundTrip(t *testing.T) {
	cases := map[string][]core.Point{
		"glider":   glider,
		"negative": {{X: -1, Y: -1}, {X: -8, Y: 0}, {X: -9, Y: -17}, {X: 5, Y: -3}},
		"spread":   {{X: 0, Y: 0}, {X: 1000, Y: -1000}, {X: -4096, Y: 77}},
		"soup":     soup(1, core.Point{X: -40, Y: 13}, 50),
	}
	for name, points := range cases {
		t.Run(name, func(t *testing.T) {
			u := FromPoints(points)
			require.Equal(t, sorted(points), sorted(u.Points()))
			require.EqualValues(t, len(points), u.Population())
			require.GreaterOrEqual(t, u.Depth(), minStepDepth)
		})
	}
}

func TestFromPointsAcrossOrigin(t *testing.T) {
	blinker := []core.Point{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}}
	u := FromPoints(blinker)
	require.Equal(t, minStepDepth, u.Depth())
	require.Equal(t, sorted(blinker), sorted(u.Points()))

	corners := []core.Point{{X: -1, Y: -1}, {X: 0, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: -300, Y: 200}}
	u = FromPoints(corners)
	require.Equal(t, sorted(corners), sorted(u.Points()))
	// the root starts on a block boundary at or before the top-left cell
	require.Zero(t, u.Offset().X%8)
	require.Zero(t, u.Offset().Y%8)
	require.LessOrEqual(t, u.Offset().X, int64(-300))
	require.LessOrEqual(t, u.Offset().Y, int64(-1))
}

func TestFromPointsIgnoresDuplicates(t *testing.T) {
	u := FromPoints([]core.Point{{X: 3, Y: 3}, {X: 3, Y: 3}})
	require.Equal(t, []core.Point{{X: 3, Y: 3}}, u.Points())
}

func TestIncreaseDepthKeepsCells(t *testing.T) {
	u := FromPoints(glider)
	depth := u.Depth()
	u.IncreaseDepth()
	u.IncreaseDepth()
	require.Equal(t, depth+2, u.Depth())
	require.Equal(t, sorted(glider), sorted(u.Points()))
}

func TestGliderMovesDiagonally(t *testing.T) {
	u := FromPoints(glider)
	u.StepForward(4)
	require.Equal(t, sorted(shifted(glider, core.Point{X: 1, Y: 1})), sorted(u.Points()))
	require.EqualValues(t, 4, u.Generation())

	u.StepForward(4 * 1000)
	require.Equal(t, sorted(shifted(glider, core.Point{X: 1001, Y: 1001})), sorted(u.Points()))
	require.Equal(t, core.Rect{Min: core.Point{X: 1001, Y: 1001}, Max: core.Point{X: 1004, Y: 1004}}, u.Bounds())
}

func TestBlinkerPeriod(t *testing.T) {
	blinker := []core.Point{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}}
	u := FromPoints(blinker)
	u.StepForward(1)
	require.Equal(t, sorted([]core.Point{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}}), sorted(u.Points()))
	u.StepForward(1)
	require.Equal(t, sorted(blinker), sorted(u.Points()))
}

func TestMatchesNaiveEngine(t *testing.T) {
	for _, n := range []uint64{1, 3, 4, 17, 64, 100, 257} {
		points := soup(int64(n), core.Point{X: -10, Y: -7}, 32)
		u := FromPoints(points)
		ref := life.New(points)

		u.StepForward(n)
		ref.Step(n)
		require.Equal(t, sorted(ref.Points()), sorted(u.Points()), "after %d generations", n)
		require.Equal(t, ref.Population(), u.Population())
	}
}

func TestStepsAreAdditive(t *testing.T) {
	points := soup(5, core.Point{}, 24)
	whole := FromPoints(points)
	whole.StepForward(96)

	parts := FromPoints(points)
	for _, n := range []uint64{10, 22, 1, 63} {
		parts.StepForward(n)
	}
	require.Equal(t, sorted(whole.Points()), sorted(parts.Points()))
	require.Equal(t, whole.Generation(), parts.Generation())
}

func TestAdvanceCentreMatchesNaiveEngine(t *testing.T) {
	points := soup(9, core.Point{X: 3, Y: 5}, 40)
	u := FromPoints(points)
	depth := u.Depth() - 1

	for _, n := range []uint64{0, 1, 5, FullSteps(depth)} {
		ref := life.New(points)
		ref.Step(n)

		quarter := int64(2) << u.Depth()
		at := u.Offset().Add(core.Point{X: quarter, Y: quarter})
		side := int64(8) << depth
		var want []core.Point
		for _, p := range ref.Points() {
			if p.X >= at.X && p.Y >= at.Y && p.X < at.X+side && p.Y < at.Y+side {
				want = append(want, p)
			}
		}

		k := u.store.Advance(u.root, depth, n)
		require.Equal(t, sorted(want), sorted(keyPoints(u.store, k, depth, at)), "after %d generations", n)
	}
}

func TestFullAdvanceIsMemoized(t *testing.T) {
	u := FromPoints(soup(2, core.Point{}, 40))
	depth := u.Depth() - 1

	k := u.store.Advance(u.root, depth, FullSteps(depth))
	require.Equal(t, k, u.store.mustGet(u.root).Forward)

	n := u.store.Len()
	require.Equal(t, k, u.store.Advance(u.root, depth, FullSteps(depth)))
	require.Equal(t, n, u.store.Len())
}

func TestPartialAdvanceIsNotMemoized(t *testing.T) {
	u := FromPoints(soup(3, core.Point{}, 40))
	depth := u.Depth() - 1
	u.store.Advance(u.root, depth, 3)
	require.Equal(t, NullKey, u.store.mustGet(u.root).Forward)
}

func TestAdvanceRejectsBadArguments(t *testing.T) {
	u := FromPoints(glider)
	depth := u.Depth() - 1
	require.Panics(t, func() { u.store.Advance(u.root, depth, FullSteps(depth)+1) })
	require.Panics(t, func() { u.store.Advance(u.root, 0, 1) })
}

func TestGarbageCollectKeepsUniverse(t *testing.T) {
	points := soup(4, core.Point{X: -20, Y: -20}, 40)
	u := FromPoints(points, WithGCThreshold(0))
	ref := life.New(points)

	u.StepForward(200)
	ref.Step(200)
	before := u.NodeCount()
	cells := sorted(u.Points())
	depth, offset := u.Depth(), u.Offset()

	u.GarbageCollect()
	require.LessOrEqual(t, u.NodeCount(), before)
	require.Equal(t, cells, sorted(u.Points()))
	require.Equal(t, depth, u.Depth())
	require.Equal(t, offset, u.Offset())

	u.StepForward(77)
	ref.Step(77)
	require.Equal(t, sorted(ref.Points()), sorted(u.Points()))
}

func TestCollectKeepsForwardResults(t *testing.T) {
	u := FromPoints(soup(6, core.Point{}, 40))
	depth := u.Depth() - 1
	fwd := u.store.Advance(u.root, depth, FullSteps(depth))
	orphan := u.store.Canonicalize(Quad{RawKey(0x55), RawKey(0xaa), RawKey(1), RawKey(2)})

	next := u.store.collect(u.root)
	node, ok := next.Get(u.root)
	require.True(t, ok)
	require.Equal(t, fwd, node.Forward)
	_, ok = next.Get(fwd)
	require.True(t, ok)
	_, ok = next.Get(orphan)
	require.False(t, ok)

	// the chain of black nodes survives even when nothing references it
	for d := 1; d < len(next.blacks); d++ {
		_, ok := next.Get(next.Black(d))
		require.True(t, ok, "black node at depth %d", d)
	}
}

func TestCollectIfAbove(t *testing.T) {
	u := FromPoints(soup(8, core.Point{}, 30))
	u.StepForward(50)
	require.False(t, u.CollectIfAbove(u.NodeCount()))
	require.True(t, u.CollectIfAbove(0))
}

func TestStepCollectsAboveThreshold(t *testing.T) {
	points := soup(10, core.Point{}, 30)
	u := FromPoints(points, WithGCThreshold(1))
	ref := life.New(points)
	u.Step(120)
	ref.Step(120)
	require.Equal(t, sorted(ref.Points()), sorted(u.Points()))

	// a collected store holds only what the root reaches plus the black chain
	reach := u.store.collect(u.root)
	require.Equal(t, reach.Len(), u.NodeCount())
}

func TestWalkVisitsLevels(t *testing.T) {
	u := FromPoints([]core.Point{{X: 5, Y: 6}})
	levels := map[int]bool{}
	u.Walk(func(level int, at core.Point, pop uint64) bool {
		require.EqualValues(t, 1, pop)
		levels[level] = true
		if level == 0 {
			require.Equal(t, core.Point{X: 5, Y: 6}, at)
		}
		return true
	})
	for l := 0; l <= u.Depth()+3; l++ {
		require.True(t, levels[l], "level %d not visited", l)
	}
}

func TestWalkPrunes(t *testing.T) {
	u := FromPoints(glider)
	calls := 0
	u.Walk(func(int, core.Point, uint64) bool {
		calls++
		return false
	})
	require.Equal(t, 1, calls)
}

func TestGrayscaleMap(t *testing.T) {
	var block []core.Point
	for y := int64(0); y < 8; y++ {
		for x := int64(0); x < 8; x++ {
			block = append(block, core.Point{X: x, Y: y})
		}
	}
	u := FromPoints(block)

	img := u.GrayscaleMap(core.Point{}, 4, 4, 3, 1)
	require.Len(t, img, 16)
	require.EqualValues(t, 255, img[0])
	for _, v := range img[1:] {
		require.Zero(t, v)
	}

	half := FromPoints(block[:32])
	img = half.GrayscaleMap(core.Point{}, 2, 2, 3, 1)
	require.Equal(t, []byte{127, 0, 0, 0}, img)

	img = half.GrayscaleMap(core.Point{}, 2, 2, 3, 4)
	require.EqualValues(t, 255, img[0])

	img = half.GrayscaleMap(core.Point{}, 2, 2, 3, 0)
	require.Equal(t, []byte{0, 0, 0, 0}, img)
}

func TestGrayscaleMapCellsAndClipping(t *testing.T) {
	u := FromPoints(glider)

	img := u.GrayscaleMap(core.Point{}, 3, 3, 0, 1)
	require.Equal(t, []byte{
		0, 255, 0,
		0, 0, 255,
		255, 255, 255,
	}, img)

	img = u.GrayscaleMap(core.Point{X: 1, Y: 1}, 2, 2, 0, 1)
	require.Equal(t, []byte{0, 255, 255, 255}, img)

	img = u.GrayscaleMap(core.Point{X: 100, Y: -100}, 4, 4, 0, 1)
	require.Equal(t, make([]byte, 16), img)

	require.Empty(t, u.GrayscaleMap(core.Point{}, 0, 10, 0, 1))
}

func TestGrayscaleMapWideZoom(t *testing.T) {
	u := FromPoints(glider)
	// five cells spread over 2^80 cells round down to black
	img := u.GrayscaleMap(core.Point{X: -1 << 20, Y: -1 << 20}, 1, 1, 40, 1e9)
	require.EqualValues(t, 0, img[0])

	img = u.GrayscaleMap(core.Point{}, 1, 1, 2, 1)
	// the whole glider sits in the top-left 4x4 square
	require.EqualValues(t, 255*5/16, img[0])
}

func TestDensitySaturates(t *testing.T) {
	require.EqualValues(t, 255, density(^uint64(0), ^uint64(0), 16))
	require.EqualValues(t, 0, density(1, 1, 200))
	require.EqualValues(t, 255, density(1<<40, 255<<16, 16+2*10))
}

func TestConfigFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{"table_log2": "10", "gc_threshold": "0"})
	require.Equal(t, Config{TableLog2: 10, GCThreshold: 0}, cfg)

	cfg = FromMap(map[string]string{"table_log2": "99", "gc_threshold": "-1"})
	require.Equal(t, DefaultConfig(), cfg)

	require.Equal(t, DefaultConfig(), FromMap(nil))
}

func TestRegistered(t *testing.T) {
	f, ok := core.Engines()["hashlife"]
	require.True(t, ok)
	u := f(map[string]string{"table_log2": "8"}, glider)
	require.Equal(t, "hashlife", u.Name())
	u.Step(8)
	require.Equal(t, sorted(shifted(glider, core.Point{X: 2, Y: 2})), sorted(u.Points()))
}
