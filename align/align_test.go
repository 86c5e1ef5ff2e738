package align_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vargraph/vgraph/align"
	"github.com/vargraph/vgraph/graph"
	"github.com/vargraph/vgraph/popset"
)

func buildLinear(t *testing.T) (*graph.Graph, int64) {
	t.Helper()
	g := graph.New()
	n0 := graph.NewNode("AAA", 2, true, 1.0, popset.New(0))
	n1 := graph.NewNode("CCC", 5, true, 1.0, popset.New(0))
	g.AddNode(n0)
	g.AddNode(n1)
	g.AddEdge(n0.ID(), n1.ID())
	require.NoError(t, g.Finalize())
	return g, n0.ID()
}

func TestCheckOverflowDetectsExcess(t *testing.T) {
	p := align.ScoreParams{Match: 1, AccumulatorBits: 8}
	assert.NoError(t, p.CheckOverflow(100))
	assert.Error(t, p.CheckOverflow(1000))
}

func TestCheckOverflowRejectsNonPositiveWidth(t *testing.T) {
	p := align.ScoreParams{Match: 1, AccumulatorBits: 0}
	assert.Error(t, p.CheckOverflow(1))
}

func TestScoreEndToEndPerfectMatch(t *testing.T) {
	g, root := buildLinear(t)
	p := align.DefaultScoreParams()

	res, err := align.Score(g, root, "AAACCC", p, align.EndToEnd)
	require.NoError(t, err)
	assert.True(t, res.EndToEnd)
	assert.Equal(t, 6*p.Match, res.Score)
}

func TestScoreEndToEndFlagsShortfall(t *testing.T) {
	g, root := buildLinear(t)
	p := align.DefaultScoreParams()

	res, err := align.Score(g, root, "AAACCCAAA", p, align.EndToEnd)
	require.NoError(t, err)
	assert.False(t, res.EndToEnd)
}

func TestScoreLocalToleratesMismatch(t *testing.T) {
	g, root := buildLinear(t)
	p := align.DefaultScoreParams()

	res, err := align.Score(g, root, "AAATCC", p, align.Local)
	require.NoError(t, err)
	assert.Less(t, res.Score, 6*p.Match)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "end-to-end", align.EndToEnd.String())
	assert.Equal(t, "local", align.Local.String())
}

func TestRunChunkedEmitsAllResults(t *testing.T) {
	g, root := buildLinear(t)
	p := align.DefaultScoreParams()

	reads := []string{"AAACCC", "AAA", "CCC", "AAACCC"}
	starts := []int64{root, root, root, root}

	var mu sync.Mutex
	var results []*align.Result
	err := align.RunChunked(g, 2, 3, reads, starts, p, align.Local, func(r *align.Result) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, r)
	})
	require.NoError(t, err)
	assert.Len(t, results, len(reads))
}

func TestRunChunkedSurfacesOverflow(t *testing.T) {
	g, root := buildLinear(t)
	p := align.ScoreParams{Match: 1, AccumulatorBits: 4}

	err := align.RunChunked(g, 1, 1, []string{"AAACCCAAACCCAAACCCAAACCC"}, []int64{root}, p, align.Local, func(*align.Result) {})
	assert.Error(t, err)
}
