package gdef_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vargraph/vgraph/gdef"
	"github.com/vargraph/vgraph/refsource"
	"github.com/vargraph/vgraph/variant"
)

func openTestManager(t *testing.T) *gdef.Manager {
	t.Helper()
	doc := "@gdef\nref=;vcf=;region=x:0-5;nodelen=3\nB=11\nB/hapA=10\nB/~hapA=01\n"

	ref := refsource.NewMemory(map[string]string{"x": "AAATTT"}, []string{"x"})
	vcf := variant.NewMemory("x", []variant.Record{
		{Pos: 3, Ref: "A", Alts: []string{"C"}, Freqs: []float64{0.6, 0.4}, Genotypes: [][2]int{{0, 1}}},
	}, []string{"s1"})

	m, err := gdef.Open(strings.NewReader(doc), ref, vcf, true)
	require.NoError(t, err)
	return m
}

func TestManagerBaseHasAllNodes(t *testing.T) {
	m := openTestManager(t)
	base, err := m.Base()
	require.NoError(t, err)
	assert.Len(t, base.Nodes(), 4)
}

func TestManagerMakeSubgraphAndCache(t *testing.T) {
	m := openTestManager(t)

	sub, err := m.MakeSubgraph("hapA")
	require.NoError(t, err)
	count := 0
	for it, _ := sub.Begin(); !it.Equal(sub.End()); it.Inc() {
		count++
	}
	assert.Equal(t, 3, count) // AAA, A(ref), T: the alt C (hap 1 only) is excluded

	again, err := m.MakeSubgraph("hapA")
	require.NoError(t, err)
	assert.Same(t, sub, again)
}

func TestManagerSubgraphBeforeMakeIsUnknown(t *testing.T) {
	m := openTestManager(t)
	_, err := m.Subgraph("hapA")
	assert.Error(t, err)

	_, err = m.MakeSubgraph("hapA")
	require.NoError(t, err)

	sub, err := m.Subgraph("hapA")
	require.NoError(t, err)
	assert.NotNil(t, sub)
}

func TestManagerUnknownLabelErrors(t *testing.T) {
	m := openTestManager(t)
	_, err := m.MakeSubgraph("nope")
	assert.Error(t, err)
}

func TestManagerBaseLabelReturnsBase(t *testing.T) {
	m := openTestManager(t)
	base, err := m.Base()
	require.NoError(t, err)
	sub, err := m.MakeSubgraph("B")
	require.NoError(t, err)
	assert.Same(t, base, sub)
}

func TestManagerWriteDOT(t *testing.T) {
	m := openTestManager(t)
	var buf strings.Builder
	require.NoError(t, m.WriteDOT(&buf, "filters"))
	out := buf.String()
	assert.Contains(t, out, "digraph filters")
	assert.Contains(t, out, "~hapA")
	assert.Contains(t, out, "style=dotted")
}
