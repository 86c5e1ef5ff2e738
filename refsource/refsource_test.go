package refsource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vargraph/vgraph/refsource"
)

func TestMemorySubseq(t *testing.T) {
	m := refsource.NewMemory(map[string]string{"x": "AAATTTCCC"}, []string{"x"})
	require.NoError(t, m.Open(""))

	s, err := m.Subseq("x", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, "AAA", s)

	s, err = m.Subseq("x", 3, 5)
	require.NoError(t, err)
	assert.Equal(t, "TTT", s)

	n, err := m.SeqLen("x")
	require.NoError(t, err)
	assert.Equal(t, 9, n)
}

func TestMemorySubseqOutOfRange(t *testing.T) {
	m := refsource.NewMemory(map[string]string{"x": "AAA"}, []string{"x"})
	_, err := m.Subseq("x", 0, 10)
	assert.Error(t, err)
	_, err = m.Subseq("missing", 0, 0)
	assert.Error(t, err)
}

func TestMemorySequencesPreservesOrder(t *testing.T) {
	m := refsource.NewMemory(map[string]string{"a": "A", "b": "C"}, []string{"b", "a"})
	assert.Equal(t, []string{"b", "a"}, m.Sequences())
}
