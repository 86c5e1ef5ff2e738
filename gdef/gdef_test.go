package gdef_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vargraph/vgraph/gdef"
)

func TestParseRejectsBadMagic(t *testing.T) {
	_, err := gdef.Parse(strings.NewReader("not-gdef\nref=a;vcf=b\n"))
	assert.Error(t, err)
}

func TestParseRejectsDuplicateLabel(t *testing.T) {
	doc := "@gdef\nref=a;vcf=b;region=x:0-10;nodelen=3\nB=1010\nB=1100\n"
	_, err := gdef.Parse(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestPopulationsRejectsWrongWidth(t *testing.T) {
	doc, err := gdef.Parse(strings.NewReader("@gdef\nref=a;vcf=b;region=x:0-10;nodelen=3\nB=101\n"))
	require.NoError(t, err)
	_, err = doc.Populations(4)
	assert.Error(t, err)
}

func TestRoundTripWriteThenParse(t *testing.T) {
	doc, err := gdef.Parse(strings.NewReader("@gdef\nref=a;vcf=b;region=x:0-10;nodelen=3\nB=111111\n"))
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, doc.WriteTo(&buf))

	reparsed, err := gdef.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, doc.Labels, reparsed.Labels)
	assert.Equal(t, doc.Pops, reparsed.Pops)
}

// TestGDEFRoundTrip is spec scenario 5: num_samples=3 (population width 6),
// definitions "sub1=2;sub1/leaf=50%".
func TestGDEFRoundTrip(t *testing.T) {
	meta := gdef.Meta{Ref: "ref.fa", VCF: "calls.vcf", Region: "chr1:0-100", NodeLen: 5}
	rng := rand.New(rand.NewSource(42))

	var buf strings.Builder
	doc, err := gdef.WriteDoc(&buf, meta, "sub1=2;sub1/leaf=50%", 6, rng)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"B", "B/sub1", "B/~sub1", "B/sub1/leaf", "B/sub1/~leaf"}, doc.Labels)

	pops, err := doc.Populations(6)
	require.NoError(t, err)

	assert.Equal(t, uint(6), pops["B"].Count())
	assert.Equal(t, uint(2), pops["B/sub1"].Count())
	assert.Equal(t, uint(4), pops["B/~sub1"].Count())
	assert.Equal(t, uint(1), pops["B/sub1/leaf"].Count())
	assert.Equal(t, uint(1), pops["B/sub1/~leaf"].Count())

	leafUnion := pops["B/sub1/leaf"].Union(pops["B/sub1/~leaf"])
	assert.True(t, leafUnion.Equal(pops["B/sub1"]))

	sub1Union := pops["B/sub1"].Union(pops["B/~sub1"])
	assert.True(t, sub1Union.Equal(pops["B"]))

	reparsed, err := gdef.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.ElementsMatch(t, doc.Labels, reparsed.Labels)
}

func TestBuildDocRejectsReservedName(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := gdef.BuildDoc(gdef.Meta{}, "~sub1=2", 6, rng)
	assert.Error(t, err)
}

func TestBuildDocRejectsInsufficientPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := gdef.BuildDoc(gdef.Meta{}, "sub1=10", 6, rng)
	assert.Error(t, err)
}

func TestBuildDocRejectsUndefinedParent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := gdef.BuildDoc(gdef.Meta{}, "missing/leaf=1", 6, rng)
	assert.Error(t, err)
}
