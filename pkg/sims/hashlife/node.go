package hashlife

import (
	"encoding/binary"
	"math/bits"

	"hashlife/internal/table"

	"github.com/spaolacci/murmur3"
)

// NullKey marks an empty table slot and a forward result that has not been
// computed yet. It is never produced for a raw block since its upper half is
// non-zero.
var NullKey = table.Key{Hi: 0xcccccccccccccccc, Lo: 0xcccccccccccccccc}

// Quad holds the four children of a node: NW, NE, SW, SE.
//
// Each child is either a raw key, an 8x8 block packed into the low 64 bits
// with bit y*8+x set for a live cell at (x, y), or the content hash of
// another Quad. A content hash whose upper 64 bits are zero would be read as
// a raw block; at 2^-64 per node that risk is accepted.
type Quad [4]table.Key

// Node is the value stored for every canonical Quad.
type Node struct {
	Quad       Quad
	Forward    table.Key
	Population uint64
}

// IsRaw reports whether k holds cell data rather than a node hash.
func IsRaw(k table.Key) bool { return k.Hi == 0 }

// RawKey wraps an 8x8 block of cells.
func RawKey(block uint64) table.Key { return table.Key{Lo: block} }

// IsRaw reports whether the children of q are raw blocks.
func (q Quad) IsRaw() bool { return IsRaw(q[0]) }

// HashQuad returns the content hash of q.
func HashQuad(q Quad) table.Key {
	var buf [64]byte
	for i, k := range q {
		binary.LittleEndian.PutUint64(buf[i*16:], k.Lo)
		binary.LittleEndian.PutUint64(buf[i*16+8:], k.Hi)
	}
	h1, h2 := murmur3.Sum128(buf[:])
	return table.Key{Hi: h1, Lo: h2}
}

func rawPopulation(q Quad) uint64 {
	var n int
	for _, k := range q {
		n += bits.OnesCount64(k.Lo)
	}
	return uint64(n)
}

// transpose re-tiles four 2x2 grandchild groups (NW, NE, SW, SE order) into a
// row-major 4x4 grid.
func transpose(g [16]table.Key) [16]table.Key {
	return [16]table.Key{
		g[0], g[1], g[4], g[5],
		g[2], g[3], g[6], g[7],
		g[8], g[9], g[12], g[13],
		g[10], g[11], g[14], g[15],
	}
}

// window extracts the 2x2 Quad whose top-left corner is (x, y) in a
// row-major 4x4 grid.
func window(g *[16]table.Key, x, y int) Quad {
	return Quad{
		g[y*4+x], g[y*4+x+1],
		g[(y+1)*4+x], g[(y+1)*4+x+1],
	}
}

var outerRing = [16]bool{
	true, true, true, true,
	true, false, false, true,
	true, false, false, true,
	true, true, true, true,
}
