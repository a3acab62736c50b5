package hashlife

import (
	"slices"

	"hashlife/internal/table"
)

// collect returns a store of the same size class holding only the nodes
// reachable from roots and from the deepest black key, through children and
// cached forward results.
func (s *Store) collect(roots ...table.Key) *Store {
	next := &Store{
		nodes:  table.New(s.nodes.SizeLog2(), NullKey, nullNode),
		blacks: slices.Clone(s.blacks),
	}
	s.copyReachable(next, s.blacks[len(s.blacks)-1])
	for _, k := range roots {
		s.copyReachable(next, k)
	}
	return next
}

func (s *Store) copyReachable(dst *Store, k table.Key) {
	if IsRaw(k) {
		return
	}
	if _, ok := dst.nodes.Get(k); ok {
		return
	}
	node := s.mustGet(k)
	dst.nodes.Add(k, node)
	for _, child := range node.Quad {
		s.copyReachable(dst, child)
	}
	if node.Forward != NullKey {
		s.copyReachable(dst, node.Forward)
	}
}

// GarbageCollect drops every node the current root no longer reaches. The
// root, depth and offset are unchanged.
func (u *Universe) GarbageCollect() {
	before := u.store.Len()
	u.store = u.store.collect(u.root)
	after := u.store.Len()

	gcRuns.Inc()
	gcNodesReclaimed.Add(float64(before - after))
	storeNodes.Set(float64(after))
	u.log.Debug("garbage collected", "before", before, "after", after, "generation", u.generation)
}

// CollectIfAbove runs GarbageCollect when the store holds more than
// threshold nodes, and reports whether it did.
func (u *Universe) CollectIfAbove(threshold int) bool {
	if u.store.Len() <= threshold {
		return false
	}
	u.GarbageCollect()
	return true
}
