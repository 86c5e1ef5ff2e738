package graph

import (
	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/vgerr"
)

func errNotFinalized(g *Graph) error {
	return errors.Wrapf(vgerr.ErrNotFinalized, "graph with %d nodes has no cached order", len(g.store.nodes))
}

// TopologicalIter is a read-only, index-based iterator over a Graph's
// cached topological order. Increment and decrement saturate at the ends
// instead of wrapping or panicking.
type TopologicalIter struct {
	g          *Graph
	generation int
	idx        int
}

// Begin returns an iterator to the first node in the topological order. It
// returns ErrNotFinalized if the graph has nodes but no cached order.
func (g *Graph) Begin() (*TopologicalIter, error) {
	if len(g.topo) == 0 && len(g.store.nodes) > 0 {
		return nil, errNotFinalized(g)
	}
	return &TopologicalIter{g: g, generation: g.generation, idx: 0}, nil
}

// End returns an iterator one past the last node in the topological order.
func (g *Graph) End() *TopologicalIter {
	return &TopologicalIter{g: g, generation: g.generation, idx: len(g.topo)}
}

// Inc advances the iterator by one position, saturating at the end.
func (it *TopologicalIter) Inc() *TopologicalIter {
	if it.idx < len(it.g.topo) {
		it.idx++
	}
	return it
}

// Dec moves the iterator back by one position, saturating at zero.
func (it *TopologicalIter) Dec() *TopologicalIter {
	if it.idx > 0 {
		it.idx--
	}
	return it
}

// Node returns the node at the iterator's current position, or nil at End.
func (it *TopologicalIter) Node() *Node {
	if it.idx < 0 || it.idx >= len(it.g.topo) {
		return nil
	}
	return it.g.store.nodes[it.g.topo[it.idx]]
}

// Equal reports whether it and other are positioned at the same index in
// the same topological order. Iterators bound to distinct orders (either a
// different Graph, or the same Graph re-finalized since) always compare
// unequal, per spec §4.4.
func (it *TopologicalIter) Equal(other *TopologicalIter) bool {
	if other == nil {
		return false
	}
	return it.g == other.g && it.generation == other.generation && it.idx == other.idx
}
