// Package graph implements the variant-aware reference DAG: Node storage,
// forward/reverse adjacency, topological ordering and the three derivation
// kinds (haplotype filter, REF, MAXAF). It is grounded in the teacher's
// small-cooperating-types-in-one-package layout (e.g. encoding/bam keeps
// Shard and its iterator together) rather than splitting Node, Graph and
// TopologicalIter into separate packages.
package graph

import (
	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/popset"
	"github.com/vargraph/vgraph/vgerr"
)

// nodeStore is the single owning container for a Graph's nodes. Parent and
// derived graphs share it by pointer, never by copy (spec §9 "Shared node
// storage"); Go's garbage collector releases it once the last holder drops,
// matching the spec's reference-counted-container discipline without needing
// an explicit refcount.
type nodeStore struct {
	nodes map[int64]*Node
}

// Graph is a DAG of Nodes with forward and reverse adjacency, a designated
// root, and a cached topological order.
type Graph struct {
	store   *nodeStore
	hasRoot bool
	root    int64

	next map[int64][]int64
	prev map[int64][]int64

	order []int64 // insertion order
	topo  []int64 // cached topological order; nil/empty means not finalized

	finalizedOnce bool
	needsDFS      bool
	generation    int

	popSize     int
	description string
}

// New returns an empty Graph with a fresh node-storage map.
func New() *Graph {
	return &Graph{
		store: &nodeStore{nodes: make(map[int64]*Node)},
		next:  make(map[int64][]int64),
		prev:  make(map[int64][]int64),
	}
}

// AddNode inserts n unless its id already exists in the node map, in which
// case it returns the sentinel 0 without mutating the graph. The first node
// ever inserted becomes the root unless SetRoot is called later.
func (g *Graph) AddNode(n *Node) int64 {
	if _, exists := g.store.nodes[n.id]; exists {
		return 0
	}
	if !g.hasRoot {
		g.root = n.id
		g.hasRoot = true
	}
	g.store.nodes[n.id] = n
	g.order = append(g.order, n.id)
	return n.id
}

// AddEdge appends an edge u->v to both adjacency maps. It returns false
// without mutation if either endpoint is absent from the node map. Any call
// to AddEdge after a prior Finalize invalidates the cached topological
// order and forces the next Finalize to run the DFS-based sort (spec §9).
func (g *Graph) AddEdge(u, v int64) bool {
	if _, ok := g.store.nodes[u]; !ok {
		return false
	}
	if _, ok := g.store.nodes[v]; !ok {
		return false
	}
	g.next[u] = append(g.next[u], v)
	g.prev[v] = append(g.prev[v], u)
	g.topo = nil
	if g.finalizedOnce {
		g.needsDFS = true
	}
	return true
}

// SetRoot overrides the graph's root. It is an error to set a root that is
// not present in the node map.
func (g *Graph) SetRoot(id int64) error {
	if _, ok := g.store.nodes[id]; !ok {
		return errors.Errorf("vgraph: root id %d not in node map", id)
	}
	g.root = id
	g.hasRoot = true
	return nil
}

// Root returns the graph's root node id.
func (g *Graph) Root() int64 { return g.root }

// PopSize returns the sample count the graph's reference-node bitsets were
// sized for.
func (g *Graph) PopSize() int { return g.popSize }

// SetPopSize records the sample count of the variant stream the graph was
// built from.
func (g *Graph) SetPopSize(n int) { g.popSize = n }

// Description returns the human-readable construction provenance attached
// to the graph (spec SPEC_FULL §10, restored from the original's
// Graph::_desc).
func (g *Graph) Description() string { return g.description }

// SetDescription replaces the graph's description.
func (g *Graph) SetDescription(s string) { g.description = s }

// appendDescription appends a line to the graph's description, used when
// deriving a subgraph so provenance accumulates rather than being lost.
func (g *Graph) appendDescription(line string) {
	if g.description == "" {
		g.description = line
		return
	}
	g.description = g.description + "\n" + line
}

// Node returns the node with the given id.
func (g *Graph) Node(id int64) (*Node, bool) {
	n, ok := g.store.nodes[id]
	return n, ok
}

// Nodes returns a read-only view of the node map. Derived graphs share this
// exact map with their parent.
func (g *Graph) Nodes() map[int64]*Node { return g.store.nodes }

// Next returns the read-only list of successor ids for id.
func (g *Graph) Next(id int64) []int64 { return g.next[id] }

// Prev returns the read-only list of predecessor ids for id.
func (g *Graph) Prev(id int64) []int64 { return g.prev[id] }

// NextMap returns a read-only view of the forward adjacency map.
func (g *Graph) NextMap() map[int64][]int64 { return g.next }

// PrevMap returns a read-only view of the reverse adjacency map.
func (g *Graph) PrevMap() map[int64][]int64 { return g.prev }

// Finalize publishes a topological order over the graph's nodes. If no edge
// has been added since the last successful Finalize (or this is the first
// call), insertion order is adopted directly, since GraphBuilder guarantees
// nodes are inserted in topological order. Otherwise a three-colour DFS
// runs from the root (plus any other unreached node, in insertion order),
// failing with ErrCycleDetected if a cycle is found.
func (g *Graph) Finalize() error {
	if !g.needsDFS {
		g.topo = append([]int64(nil), g.order...)
		g.finalizedOnce = true
		g.generation++
		return nil
	}

	color := make(map[int64]int, len(g.store.nodes))
	var postorder []int64
	starts := g.order
	if g.hasRoot {
		starts = append([]int64{g.root}, g.order...)
	}
	for _, id := range starts {
		if _, ok := g.store.nodes[id]; !ok {
			continue
		}
		if color[id] != 0 {
			continue
		}
		if err := g.visit(id, color, &postorder); err != nil {
			return err
		}
	}
	for i, j := 0, len(postorder)-1; i < j; i, j = i+1, j-1 {
		postorder[i], postorder[j] = postorder[j], postorder[i]
	}
	g.topo = postorder
	g.finalizedOnce = true
	g.needsDFS = false
	g.generation++
	return nil
}

const (
	colorUnmarked = 0
	colorTemp     = 1
	colorPerm     = 2
)

func (g *Graph) visit(n int64, color map[int64]int, postorder *[]int64) error {
	switch color[n] {
	case colorTemp:
		return errors.Wrapf(vgerr.ErrCycleDetected, "node %d revisited while in progress", n)
	case colorPerm:
		return nil
	}
	color[n] = colorTemp
	for _, m := range g.next[n] {
		if err := g.visit(m, color, postorder); err != nil {
			return err
		}
	}
	color[n] = colorPerm
	*postorder = append(*postorder, n)
	return nil
}

// buildDerived constructs a child graph containing exactly the nodes in
// included, rebuilding edges over that subset (spec §4.1 "Edge-rebuild
// algorithm for derived graphs"). It shares the parent's node storage.
func (g *Graph) buildDerived(included map[int64]bool, descLine string) (*Graph, error) {
	if !included[g.root] {
		return nil, errors.Wrapf(vgerr.ErrInvalidDerivation, "root %d not in derived node set", g.root)
	}
	child := &Graph{
		store:       g.store,
		hasRoot:     true,
		root:        g.root,
		next:        make(map[int64][]int64),
		prev:        make(map[int64][]int64),
		popSize:     g.popSize,
		description: g.description,
	}
	for _, id := range g.order {
		if !included[id] {
			continue
		}
		child.order = append(child.order, id)
		for _, s := range g.next[id] {
			if included[s] {
				child.next[id] = append(child.next[id], s)
				child.prev[s] = append(child.prev[s], id)
			}
		}
	}
	child.appendDescription(descLine)
	if err := child.Finalize(); err != nil {
		return nil, err
	}
	return child, nil
}

// DeriveByFilter returns the subgraph containing every reference node plus
// every non-reference node whose haplotype bitset intersects filter.
func (g *Graph) DeriveByFilter(filter *popset.Population) (*Graph, error) {
	included := make(map[int64]bool, len(g.store.nodes))
	for id, n := range g.store.nodes {
		if n.isRef || n.pop.Intersects(filter) {
			included[id] = true
		}
	}
	return g.buildDerived(included, "filter: "+filter.String())
}

// DeriveREF returns the subgraph containing exactly the reference nodes.
func (g *Graph) DeriveREF() (*Graph, error) {
	included := make(map[int64]bool, len(g.store.nodes))
	for id, n := range g.store.nodes {
		if n.isRef {
			included[id] = true
		}
	}
	return g.buildDerived(included, "filter: REF")
}

// DeriveMAXAF returns the linear subgraph obtained by, at each branch,
// following the successor with the greatest allele frequency. Ties are
// broken by first-in-adjacency (construction-time deterministic) order.
func (g *Graph) DeriveMAXAF() (*Graph, error) {
	included := make(map[int64]bool)
	curr := g.root
	for {
		included[curr] = true
		succs := g.next[curr]
		if len(succs) == 0 {
			break
		}
		maxID := succs[0]
		maxAF := g.store.nodes[maxID].af
		for _, s := range succs[1:] {
			if af := g.store.nodes[s].af; af > maxAF {
				maxID, maxAF = s, af
			}
		}
		curr = maxID
	}
	return g.buildDerived(included, "filter: MAXAF")
}
