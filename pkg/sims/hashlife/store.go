package hashlife

import (
	"fmt"

	"hashlife/internal/table"
)

// Store is the content-addressed node table. Every Quad is stored once under
// its hash, so identical regions anywhere in space or time share one node.
type Store struct {
	nodes  *table.Table[Node]
	blacks []table.Key
}

var nullNode = Node{
	Quad:       Quad{NullKey, NullKey, NullKey, NullKey},
	Forward:    NullKey,
	Population: 0xcccccccccccccccc,
}

// NewStore returns an empty store with 1<<sizeLog2 initial slots.
func NewStore(sizeLog2 uint8) *Store {
	return &Store{
		nodes:  table.New(sizeLog2, NullKey, nullNode),
		blacks: []table.Key{RawKey(0)},
	}
}

// Len returns the number of stored nodes.
func (s *Store) Len() int { return s.nodes.Len() }

// Get returns the node stored under k.
func (s *Store) Get(k table.Key) (Node, bool) { return s.nodes.Get(k) }

func (s *Store) mustGet(k table.Key) Node {
	n, ok := s.nodes.Get(k)
	if !ok {
		panic(fmt.Sprintf("hashlife: node %016x%016x missing from store", k.Hi, k.Lo))
	}
	return n
}

// Population sums the live cells below q.
func (s *Store) Population(q Quad) uint64 {
	if q.IsRaw() {
		return rawPopulation(q)
	}
	var total uint64
	for _, k := range q {
		total += s.mustGet(k).Population
	}
	return total
}

// KeyPopulation returns the live cells below k, raw or not.
func (s *Store) KeyPopulation(k table.Key) uint64 {
	if IsRaw(k) {
		return rawPopulation(Quad{k})
	}
	return s.mustGet(k).Population
}

// Canonicalize returns the key of q, inserting it when it has not been seen.
// An existing node is left untouched so a cached forward result survives.
func (s *Store) Canonicalize(q Quad) table.Key {
	k := HashQuad(q)
	if _, ok := s.nodes.Get(k); !ok {
		s.nodes.Add(k, Node{Quad: q, Forward: NullKey, Population: s.Population(q)})
	}
	return k
}

// Black returns the all-dead key at depth. Depth 0 is the empty raw block.
func (s *Store) Black(depth int) table.Key {
	if depth < len(s.blacks) {
		return s.blacks[depth]
	}
	prev := s.Black(depth - 1)
	k := s.Canonicalize(Quad{prev, prev, prev, prev})
	s.blacks = append(s.blacks, k)
	return k
}

// expand returns the 4x4 grid of grandchildren of q in row-major order.
func (s *Store) expand(q Quad) [16]table.Key {
	var g [16]table.Key
	for i, k := range q {
		child := s.mustGet(k).Quad
		copy(g[i*4:], child[:])
	}
	return transpose(g)
}
