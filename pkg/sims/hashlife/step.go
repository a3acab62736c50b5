package hashlife

import (
	"fmt"

	"hashlife/internal/table"
)

// FullSteps is the largest advance a Quad whose children sit at depth can
// make in one call: 4<<depth generations.
func FullSteps(depth int) uint64 { return 4 << depth }

// Advance moves the node k, whose children sit at depth, forward by n
// generations and returns the key of its centre half, a key at depth.
func (s *Store) Advance(k table.Key, depth int, n uint64) table.Key {
	return s.advance(s.mustGet(k).Quad, depth, n)
}

// advance returns the centre of q after n generations. The children of q sit
// at depth, and so does the returned key. Only full-length advances are
// memoized, on the node of q.
func (s *Store) advance(q Quad, depth int, n uint64) table.Key {
	full := FullSteps(depth)
	if n > full {
		panic(fmt.Sprintf("hashlife: %d steps requested at depth %d, at most %d possible", n, depth, full))
	}
	k := HashQuad(q)
	node, found := s.nodes.Get(k)
	if n == full && found && node.Forward != NullKey {
		return node.Forward
	}

	result := s.compute(q, depth, n)

	if !found || (n == full && node.Forward == NullKey) {
		forward := NullKey
		if n == full {
			forward = result
		}
		pop := node.Population
		if !found {
			pop = s.Population(q)
		}
		s.nodes.Add(k, Node{Quad: q, Forward: forward, Population: pop})
	}
	return result
}

func (s *Store) compute(q Quad, depth int, n uint64) table.Key {
	if q.IsRaw() != (depth == 0) {
		panic(fmt.Sprintf("hashlife: quad raw=%t at depth %d", q.IsRaw(), depth))
	}
	if depth == 0 {
		return stepRaw(q, n)
	}
	if s.Population(q) == 0 {
		return s.Black(depth)
	}
	return s.computeRecursive(q, depth, n)
}

// computeRecursive runs the two overlapping passes over the 4x4 grandchild
// grid: nine windows advanced by up to half the budget, then four windows
// over those results advanced by the remainder.
func (s *Store) computeRecursive(q Quad, depth int, n uint64) table.Key {
	grid := s.expand(q)
	var result Quad
	if n == 0 {
		result = window(&grid, 1, 1)
	} else {
		half := FullSteps(depth - 1)
		for pass := 0; pass < 2; pass++ {
			dt := min(half, n-min(n, half*uint64(pass)))
			var next [16]table.Key
			for y := 0; y < 3-pass; y++ {
				for x := 0; x < 3-pass; x++ {
					next[y*4+x] = s.advance(window(&grid, x, y), depth-1, dt)
				}
			}
			grid = next
		}
		result = window(&grid, 0, 0)
	}
	return s.Canonicalize(result)
}
