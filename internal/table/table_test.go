package table

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

var nullKey = Key{Hi: 0xcccccccccccccccc, Lo: 0xcccccccccccccccc}

func TestInsertionsOnSquares(t *testing.T) {
	base := Key{Hi: 0x8fab04dd8336fe8b, Lo: 0x33e4424a0d9e3e97}
	tbl := New[int](1, Key{Lo: 0xcc}, 0xccccccc)

	const maxCheck = 5
	for i := uint64(0); i < maxCheck; i++ {
		tbl.Add(Key{Hi: base.Hi, Lo: base.Lo + i*i}, int(i))
	}
	require.Equal(t, maxCheck, tbl.Len())

	x := uint64(0)
	for j := uint64(0); j < maxCheck*maxCheck; j++ {
		v, ok := tbl.Get(Key{Hi: base.Hi, Lo: base.Lo + j})
		require.Equal(t, x*x == j, ok, "key offset %d", j)
		if x*x == j {
			require.Equal(t, int(x), v)
			x++
		}
	}
}

func TestRoundTripAcrossGrowth(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	tbl := New[uint64](1, nullKey, 0)

	keys := make([]Key, 0, 5000)
	seen := make(map[Key]bool)
	for len(keys) < cap(keys) {
		k := Key{Hi: rng.Uint64() | 1<<63, Lo: rng.Uint64()}
		if seen[k] || k == nullKey {
			continue
		}
		seen[k] = true
		keys = append(keys, k)

		before := tbl.SizeLog2()
		tbl.Add(k, k.Lo^k.Hi)
		v, ok := tbl.Get(k)
		require.True(t, ok)
		require.Equal(t, k.Lo^k.Hi, v)
		if tbl.SizeLog2() != before {
			// every earlier key must survive the rehash
			for _, old := range keys {
				v, ok := tbl.Get(old)
				require.True(t, ok)
				require.Equal(t, old.Lo^old.Hi, v)
			}
		}
	}
	require.Equal(t, len(keys), tbl.Len())
	require.Less(t, tbl.Len(), 1<<tbl.SizeLog2()/2+1)
}

func TestAddOverwritesValue(t *testing.T) {
	tbl := New[string](4, nullKey, "")
	k := Key{Hi: 1, Lo: 2}
	tbl.Add(k, "first")
	tbl.Add(k, "second")
	require.Equal(t, 1, tbl.Len())
	v, ok := tbl.Get(k)
	require.True(t, ok)
	require.Equal(t, "second", v)
}

func TestClusteredKeysTerminate(t *testing.T) {
	// Keys that share their low bits and every jitter byte must still land in
	// distinct slots.
	tbl := New[int](3, nullKey, -1)
	for i := 0; i < 200; i++ {
		tbl.Add(Key{Hi: uint64(i) << 56, Lo: 0}, i)
	}
	for i := 0; i < 200; i++ {
		v, ok := tbl.Get(Key{Hi: uint64(i) << 56, Lo: 0})
		require.True(t, ok)
		require.Equal(t, i, v)
	}
}

func TestAllVisitsEveryEntry(t *testing.T) {
	tbl := New[int](2, nullKey, 0)
	want := map[Key]int{}
	for i := 1; i <= 100; i++ {
		k := Key{Hi: uint64(i) * 0x9e3779b97f4a7c15, Lo: uint64(i)}
		tbl.Add(k, i)
		want[k] = i
	}

	got := map[Key]int{}
	for k, v := range tbl.All() {
		got[k] = v
	}
	require.Equal(t, want, got)
}

func TestAddEmptyKeyPanics(t *testing.T) {
	tbl := New[int](2, nullKey, 0)
	require.Panics(t, func() { tbl.Add(nullKey, 1) })
}
