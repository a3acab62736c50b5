package hashlife

import (
	"fmt"

	"hashlife/internal/table"
)

// The base case works on a 16x16 window with one 4-bit lane per cell: row y
// is a uint64 whose lane x (bits 4x..4x+3) holds cell x. Neighbour counts
// including the cell itself never exceed 9, so lane sums cannot carry into
// the next cell.

const (
	laneOnes = 0x1111111111111111
	// lanes 1..14; the outermost ring of a 16x16 window has no valid result
	laneRowMask = 0x0111111111111110
	// maxRawSteps is the number of generations a 16x16 window can advance
	// while its centre 8x8 stays exact.
	maxRawSteps = 4
)

var (
	spreadTable  [256]uint32
	compactTable [1 << 16]uint8
)

func init() {
	for i := range spreadTable {
		spreadTable[i] = spreadByte(uint8(i))
	}
	for i := range compactTable {
		compactTable[i] = compactNibbles(uint16(i))
	}
}

// spreadByte moves bit i of b to bit 4i.
func spreadByte(b uint8) uint32 {
	q := uint32(b)
	q = (q | q<<12) & 0x000f000f
	q = (q | q<<6) & 0x03030303
	q = (q | q<<3) & 0x11111111
	return q
}

// compactNibbles gathers bit 0 of each of four lanes into the low nibble.
func compactNibbles(v uint16) uint8 {
	return uint8(v&1 | (v>>3)&2 | (v>>6)&4 | (v>>9)&8)
}

// compactLanes is the inverse of spreadByte.
func compactLanes(v uint32) uint8 {
	return compactTable[uint16(v)] | compactTable[uint16(v>>16)]<<4
}

func rowByte(k table.Key, y int) uint8 { return uint8(k.Lo >> (8 * y)) }

// unpackLanes lays the four raw blocks of q out as a 16x16 lane window.
func unpackLanes(q Quad) [16]uint64 {
	var rows [16]uint64
	for y := 0; y < 8; y++ {
		rows[y] = uint64(spreadTable[rowByte(q[0], y)]) | uint64(spreadTable[rowByte(q[1], y)])<<32
		rows[y+8] = uint64(spreadTable[rowByte(q[2], y)]) | uint64(spreadTable[rowByte(q[3], y)])<<32
	}
	return rows
}

// ruleLanes applies B3/S23 to per-lane 3x3 sums that include the cell itself:
// a sum of 3 is always alive next, a sum of 4 keeps a live cell alive.
func ruleLanes(sums, alive uint64) uint64 {
	b1 := sums & laneOnes
	b2 := (sums >> 1) & laneOnes
	b4 := (sums >> 2) & laneOnes
	eq3 := b1 & b2 &^ b4
	eq4 := b4 &^ b1 &^ b2
	return eq3 | (eq4 & alive)
}

// stepLanes advances a lane window by one generation. The outer ring of the
// result is cleared.
func stepLanes(rows [16]uint64) [16]uint64 {
	var sums [16]uint64
	for y, r := range rows {
		sums[y] = r + r<<4 + r>>4
	}
	var next [16]uint64
	for y := 1; y < 15; y++ {
		next[y] = ruleLanes(sums[y-1]+sums[y]+sums[y+1], rows[y]) & laneRowMask
	}
	return next
}

// innerLanes extracts lanes 4..11 of rows 4..11.
func innerLanes(rows [16]uint64) [8]uint32 {
	var inner [8]uint32
	for y := range inner {
		inner[y] = uint32(rows[y+4] >> 16)
	}
	return inner
}

// packLanes folds an 8x8 lane block back into a raw block.
func packLanes(inner [8]uint32) uint64 {
	var block uint64
	for y, row := range inner {
		block |= uint64(compactLanes(row)) << (8 * y)
	}
	return block
}

// stepRaw advances the 16x16 window formed by four raw blocks by n
// generations and returns its centre 8x8 block.
func stepRaw(q Quad, n uint64) table.Key {
	if n > maxRawSteps {
		panic(fmt.Sprintf("hashlife: base case asked for %d steps, at most %d possible", n, maxRawSteps))
	}
	rows := unpackLanes(q)
	for i := uint64(0); i < n; i++ {
		rows = stepLanes(rows)
	}
	return RawKey(packLanes(innerLanes(rows)))
}
