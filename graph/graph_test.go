package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vargraph/vgraph/graph"
	"github.com/vargraph/vgraph/popset"
)

// buildDiamond builds the four-node diamond from the teacher's "Graph
// class" test case:
//
//	  GGG
//	 /   \
//	AAA     TTT
//	 \   /
//	  CCC(ref)
func buildDiamond(t *testing.T) (g *graph.Graph, ids [4]int64) {
	t.Helper()
	g = graph.New()

	popA, _ := popset.FromBitString("011")
	popC, _ := popset.FromBitString("001")
	popG, _ := popset.FromBitString("010")
	popT, _ := popset.FromBitString("011")

	ids[0] = g.AddNode(graph.NewNode("AAA", 3, true, 1.0, popA))
	ids[1] = g.AddNode(graph.NewNode("CCC", 6, true, 0.4, popC))
	ids[2] = g.AddNode(graph.NewNode("GGG", 6, false, 0.6, popG))
	ids[3] = g.AddNode(graph.NewNode("TTT", 9, true, 1.0, popT))

	require.True(t, g.AddEdge(ids[0], ids[1]))
	require.True(t, g.AddEdge(ids[0], ids[2]))
	require.True(t, g.AddEdge(ids[1], ids[3]))
	require.True(t, g.AddEdge(ids[2], ids[3]))
	return g, ids
}

func collectSeqs(t *testing.T, g *graph.Graph) []string {
	t.Helper()
	it, err := g.Begin()
	require.NoError(t, err)
	var seqs []string
	end := g.End()
	for !it.Equal(end) {
		seqs = append(seqs, it.Node().SeqString())
		it.Inc()
	}
	return seqs
}

func TestBeginBeforeFinalizeErrors(t *testing.T) {
	g, _ := buildDiamond(t)
	_, err := g.Begin()
	assert.Error(t, err)
}

func TestFinalizeThenStructure(t *testing.T) {
	g, ids := buildDiamond(t)
	require.NoError(t, g.Finalize())

	assert.Len(t, g.Nodes(), 4)
	assert.Len(t, g.Next(ids[0]), 2)
	assert.Len(t, g.Next(ids[1]), 1)
	assert.Len(t, g.Next(ids[2]), 1)
	assert.Empty(t, g.Next(ids[3]))

	assert.Empty(t, g.Prev(ids[0]))
	assert.Len(t, g.Prev(ids[1]), 1)
	assert.Len(t, g.Prev(ids[2]), 1)
	assert.Len(t, g.Prev(ids[3]), 2)
}

func TestIteratorTraversal(t *testing.T) {
	g, _ := buildDiamond(t)
	require.NoError(t, g.Finalize())

	it, err := g.Begin()
	require.NoError(t, err)
	assert.Equal(t, "AAA", it.Node().SeqString())

	it.Inc()
	mid := it.Node().SeqString()
	assert.Contains(t, []string{"CCC", "GGG"}, mid)
	it.Inc()
	mid2 := it.Node().SeqString()
	assert.Contains(t, []string{"CCC", "GGG"}, mid2)
	assert.NotEqual(t, mid, mid2)

	it.Inc()
	assert.Equal(t, "TTT", it.Node().SeqString())

	end := g.End()
	it.Inc()
	assert.True(t, it.Equal(end))
	it.Inc() // saturates
	assert.True(t, it.Equal(end))
}

func TestEveryEdgeRespectsTopologicalOrder(t *testing.T) {
	g, _ := buildDiamond(t)
	require.NoError(t, g.Finalize())

	indexOf := make(map[int64]int)
	it, err := g.Begin()
	require.NoError(t, err)
	end := g.End()
	for i := 0; !it.Equal(end); i, _ = i+1, it.Inc() {
		indexOf[it.Node().ID()] = i
	}

	for from, tos := range g.NextMap() {
		for _, to := range tos {
			assert.Less(t, indexOf[from], indexOf[to])
		}
	}
}

func TestAddEdgeAfterFinalizeInvalidatesOrder(t *testing.T) {
	g, ids := buildDiamond(t)
	require.NoError(t, g.Finalize())

	g.AddEdge(ids[1], ids[2])
	_, err := g.Begin()
	assert.Error(t, err)

	require.NoError(t, g.Finalize())
	_, err = g.Begin()
	assert.NoError(t, err)
}

func TestAddNodeDuplicateIDIsSentinel(t *testing.T) {
	g := graph.New()
	n := graph.NewNode("A", 0, true, 1.0, popset.AllOnes(2))
	id := g.AddNode(n)
	require.NotEqual(t, int64(0), id)
	again := g.AddNode(n)
	assert.Equal(t, int64(0), again)
	assert.Len(t, g.Nodes(), 1)
}

func TestAddEdgeMissingEndpointFails(t *testing.T) {
	g := graph.New()
	n := graph.NewNode("A", 0, true, 1.0, popset.AllOnes(2))
	id := g.AddNode(n)
	assert.False(t, g.AddEdge(id, id+99999))
	assert.False(t, g.AddEdge(id+99999, id))
}

func TestDeriveByHaplotypeFilterKeepsRefAndIntersectingAlt(t *testing.T) {
	g, ids := buildDiamond(t)
	require.NoError(t, g.Finalize())

	filter, _ := popset.FromBitString("010") // only the second haplotype, which GGG's pop "010" carries
	sub, err := g.DeriveByFilter(filter)
	require.NoError(t, err)

	assert.Len(t, collectSeqs(t, sub), 4)
	assert.Len(t, sub.Next(ids[0]), 2)
	assert.Len(t, sub.Next(ids[1]), 1)
	assert.Len(t, sub.Next(ids[2]), 1)
}

func TestDeriveByHaplotypeFilterExcludesNonIntersectingAlt(t *testing.T) {
	g, ids := buildDiamond(t)
	require.NoError(t, g.Finalize())

	// GGG's population is "010" (second haplotype only); a filter naming
	// only the first haplotype excludes it but keeps every ref node.
	filter, _ := popset.FromBitString("100")
	sub, err := g.DeriveByFilter(filter)
	require.NoError(t, err)

	assert.NotContains(t, sub.Next(ids[0]), ids[2])
	assert.Len(t, collectSeqs(t, sub), 3)
	assert.Equal(t, []string{"AAA", "CCC", "TTT"}, collectSeqs(t, sub))
}

func TestDeriveREFIsLinearChain(t *testing.T) {
	g, _ := buildDiamond(t)
	require.NoError(t, g.Finalize())

	ref, err := g.DeriveREF()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "CCC", "TTT"}, collectSeqs(t, ref))
}

func TestDeriveMAXAFPicksHigherFrequencySibling(t *testing.T) {
	g, _ := buildDiamond(t)
	require.NoError(t, g.Finalize())

	maxaf, err := g.DeriveMAXAF()
	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "GGG", "TTT"}, collectSeqs(t, maxaf))
}

func TestDerivedGraphSharesNodeStorage(t *testing.T) {
	g, ids := buildDiamond(t)
	require.NoError(t, g.Finalize())
	filter, _ := popset.FromBitString("111")
	sub, err := g.DeriveByFilter(filter)
	require.NoError(t, err)

	gn, _ := g.Node(ids[0])
	sn, _ := sub.Node(ids[0])
	assert.Same(t, gn, sn, "derived graph must point into the same Node instances")
}

func TestDeriveAppendsToParentDescription(t *testing.T) {
	g, _ := buildDiamond(t)
	g.SetDescription("ref=x;region=x:0-9;nodelen=3;ingroup=100% (all samples)")
	require.NoError(t, g.Finalize())

	filter, _ := popset.FromBitString("111")
	sub, err := g.DeriveByFilter(filter)
	require.NoError(t, err)

	assert.Contains(t, sub.Description(), "ref=x;region=x:0-9;nodelen=3;ingroup=100% (all samples)")
	assert.Contains(t, sub.Description(), "filter")
	assert.NotEqual(t, g.Description(), sub.Description())
}

func TestCycleDetectedOnManualBackEdge(t *testing.T) {
	g := graph.New()
	a := g.AddNode(graph.NewNode("A", 0, true, 1.0, popset.AllOnes(2)))
	b := g.AddNode(graph.NewNode("B", 1, true, 1.0, popset.AllOnes(2)))
	c := g.AddNode(graph.NewNode("C", 2, true, 1.0, popset.AllOnes(2)))
	require.NoError(t, g.Finalize()) // first finalize: no edges yet, insertion order adopted

	require.True(t, g.AddEdge(a, b))
	require.True(t, g.AddEdge(b, c))
	require.True(t, g.AddEdge(c, a))

	err := g.Finalize()
	assert.Error(t, err)
}

func TestBelongsAlwaysForReferenceNodes(t *testing.T) {
	n := graph.NewNode("A", 0, true, 1.0, popset.New(4))
	for i := uint(0); i < 4; i++ {
		assert.Equal(t, graph.AlwaysMember, n.Belongs(i))
	}
}

func TestBelongsReflectsBitsetForNonRef(t *testing.T) {
	pop, _ := popset.FromBitString("0101")
	n := graph.NewNode("A", 0, false, 0.5, pop)
	assert.Equal(t, graph.NotMember, n.Belongs(0))
	assert.Equal(t, graph.Member, n.Belongs(1))
	assert.Equal(t, graph.NotMember, n.Belongs(2))
	assert.Equal(t, graph.Member, n.Belongs(3))
}
