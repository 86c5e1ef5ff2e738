package variant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vargraph/vgraph/variant"
)

func oneSNVMemory() *variant.Memory {
	records := []variant.Record{
		{
			Pos:       3,
			Ref:       "A",
			Alts:      []string{"C"},
			Freqs:     []float64{0.6, 0.4},
			Genotypes: [][2]int{{0, 1}},
		},
	}
	return variant.NewMemory("x", records, []string{"s1"})
}

func TestMemoryIteratesInRegion(t *testing.T) {
	m := oneSNVMemory()
	require.NoError(t, m.SetRegion("x", 0, 0))
	require.True(t, m.Next())
	assert.Equal(t, 3, m.Pos())
	assert.Equal(t, "A", m.Ref())
	assert.Equal(t, []string{"A", "C"}, m.Alleles())
	assert.Equal(t, []float64{0.6, 0.4}, m.Frequencies())
	assert.False(t, m.Next())
}

func TestMemoryAllelePopReflectsGenotype(t *testing.T) {
	m := oneSNVMemory()
	require.NoError(t, m.SetRegion("x", 0, 0))
	require.True(t, m.Next())

	refPop := m.AllelePop("A")
	assert.True(t, refPop.Test(0)) // sample 1, phase 0, genotype 0|1
	assert.False(t, refPop.Test(1))

	altPop := m.AllelePop("C")
	assert.False(t, altPop.Test(0))
	assert.True(t, altPop.Test(1))
}

func TestMemoryWrongContigIsEmpty(t *testing.T) {
	m := oneSNVMemory()
	require.NoError(t, m.SetRegion("y", 0, 100))
	assert.False(t, m.Next())
}

func TestMemorySamplesAndNumSamples(t *testing.T) {
	m := oneSNVMemory()
	assert.Equal(t, []string{"s1"}, m.Samples())
	assert.Equal(t, 1, m.NumSamples())
}

func TestCreateIngroupOutOfRangeIsNoop(t *testing.T) {
	m := oneSNVMemory()
	before := m.IngroupStr()
	m.CreateIngroup(150)
	assert.Equal(t, before, m.IngroupStr())
}

// TestCreateIngroupFullPercentKeepsEverySample guards against an in-range
// percent (including 100, the collaborator's own default) installing an
// ingroup that excludes every sample: AllelePop must still see genotypes
// from a sample drawn into a full-size ingroup.
func TestCreateIngroupFullPercentKeepsEverySample(t *testing.T) {
	m := oneSNVMemory()
	m.CreateIngroup(100)
	require.NoError(t, m.SetRegion("x", 0, 0))
	require.True(t, m.Next())

	altPop := m.AllelePop("C")
	assert.Equal(t, uint(1), altPop.Count())
	assert.True(t, altPop.Test(1))
}

// TestCreateIngroupPartialPercentRestrictsSamples exercises the in-range,
// non-default branch: a 0% ingroup must exclude every sample from AllelePop.
func TestCreateIngroupPartialPercentRestrictsSamples(t *testing.T) {
	m := oneSNVMemory()
	m.CreateIngroup(0)
	require.NoError(t, m.SetRegion("x", 0, 0))
	require.True(t, m.Next())

	altPop := m.AllelePop("C")
	assert.Equal(t, uint(0), altPop.Count())
}
