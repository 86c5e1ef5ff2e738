// Package graphbuild streams a reference contig and a phased variant
// stream into a graph.Graph, implementing the construction algorithm:
// linear reference spans chained and chunked to a maximum node length,
// interleaved with REF/ALT variant nodes connected by bipartite edge sets.
package graphbuild

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/graph"
	"github.com/vargraph/vgraph/popset"
	"github.com/vargraph/vgraph/refsource"
	"github.com/vargraph/vgraph/variant"
	"github.com/vargraph/vgraph/vgerr"

	"github.com/grailbio/base/log"
)

// Region restricts construction to one contig's coordinate span. Upper<=0
// means "to the end of the contig".
type Region struct {
	Contig string
	Lower  int
	Upper  int
}

// DefaultIngroupPercent is the in-group fraction used when Opts.IngroupPercent
// is left at its zero value, matching the collaborator's own default of
// drawing the population from every sample rather than none of them.
const DefaultIngroupPercent = 100

// Opts configures a Builder, mirroring the teacher's flag-populated Opts
// struct plus Run function pattern.
type Opts struct {
	Region         Region
	IngroupPercent int // [0,100]; 0 means DefaultIngroupPercent, out-of-range values are ignored by the variant source
	MaxNodeLen     int // >= 1
}

// Builder streams a refsource.Source and variant.Source into a graph.Graph.
// It depends only on those two interfaces, never on a concrete file format.
type Builder struct {
	ref Source
	vcf VSource
	opt Opts
}

// Source is the subset of refsource.Source the builder needs.
type Source = refsource.Source

// VSource is the subset of variant.Source the builder needs.
type VSource = variant.Source

// New returns a Builder over ref and vcf with the given options.
func New(ref Source, vcf VSource, opt Opts) *Builder {
	return &Builder{ref: ref, vcf: vcf, opt: opt}
}

// Build runs the construction algorithm to completion and returns the
// finalized base Graph.
func (b *Builder) Build() (*graph.Graph, error) {
	if b.opt.MaxNodeLen < 1 {
		return nil, errors.Wrap(vgerr.ErrInvalidSource, "graphbuild: max_node_len must be >= 1")
	}
	if b.opt.Region.Contig == "" {
		return nil, errors.Wrap(vgerr.ErrInvalidSource, "graphbuild: region.contig is required")
	}

	contigLen, err := b.ref.SeqLen(b.opt.Region.Contig)
	if err != nil {
		return nil, errors.Wrapf(vgerr.ErrInvalidSource, "graphbuild: %v", err)
	}
	excl := b.opt.Region.Upper
	if excl <= 0 || excl > contigLen {
		excl = contigLen
	}
	upper := excl - 1
	lower := b.opt.Region.Lower

	if err := b.vcf.SetRegion(b.opt.Region.Contig, lower, upper); err != nil {
		return nil, errors.Wrapf(vgerr.ErrInvalidSource, "graphbuild: %v", err)
	}
	ingroupPercent := b.opt.IngroupPercent
	if ingroupPercent == 0 {
		ingroupPercent = DefaultIngroupPercent
	}
	b.vcf.CreateIngroup(ingroupPercent)

	g := graph.New()
	numSamples := b.vcf.NumSamples()
	g.SetPopSize(numSamples)
	popWidth := uint(2 * numSamples)

	cur := lower
	var prevUnconnected []int64

	for b.vcf.Next() {
		p := b.vcf.Pos()

		prevUnconnected = b.emitLinearSpan(g, prevUnconnected, cur, p-1, popWidth)

		alleles := b.vcf.Alleles()
		freqs := b.vcf.Frequencies()
		ref := b.vcf.Ref()

		var currUnconnected []int64

		refNode := graph.NewNode(ref, p+len(ref)-1, true, freqAt(freqs, 0), popset.AllOnes(popWidth))
		currUnconnected = append(currUnconnected, g.AddNode(refNode))

		for i := 1; i < len(alleles); i++ {
			pop := b.vcf.AllelePop(alleles[i])
			altNode := graph.NewNode(alleles[i], p+len(ref)-1, false, freqAt(freqs, i), pop)
			currUnconnected = append(currUnconnected, g.AddNode(altNode))
		}

		connectBipartite(g, prevUnconnected, currUnconnected)
		prevUnconnected = currUnconnected
		cur = p + len(ref)
	}

	b.emitLinearSpan(g, prevUnconnected, cur, upper, popWidth)

	g.SetDescription(fmt.Sprintf("ref=%s;region=%s:%d-%d;nodelen=%d;ingroup=%s",
		b.opt.Region.Contig, b.opt.Region.Contig, lower, upper, b.opt.MaxNodeLen, b.vcf.IngroupStr()))

	if err := g.Finalize(); err != nil {
		return nil, err
	}
	log.Debug.Printf("graphbuild: built graph with %d nodes over %s:%d-%d", len(g.Nodes()), b.opt.Region.Contig, lower, upper)
	return g, nil
}

// emitLinearSpan covers [lo,hi] (inclusive) of the contig with a chain of
// reference nodes of length <= MaxNodeLen, the first fanning in from every
// id in prevUnconnected, each later sub-node fanning in only from its
// immediate predecessor. It returns the new prevUnconnected (the chain's
// last node), or the original prevUnconnected unchanged if the span is empty.
func (b *Builder) emitLinearSpan(g *graph.Graph, prevUnconnected []int64, lo, hi int, popWidth uint) []int64 {
	if hi < lo {
		return prevUnconnected
	}
	pos := lo
	chainTail := prevUnconnected
	for pos <= hi {
		end := pos + b.opt.MaxNodeLen - 1
		if end > hi {
			end = hi
		}
		seq, err := b.ref.Subseq(b.opt.Region.Contig, pos, end)
		if err != nil {
			log.Error.Printf("graphbuild: subseq(%d,%d) failed: %v", pos, end, err)
			return chainTail
		}
		n := graph.NewNode(seq, end, true, 1.0, popset.AllOnes(popWidth))
		id := g.AddNode(n)
		connectBipartite(g, chainTail, []int64{id})
		chainTail = []int64{id}
		pos = end + 1
	}
	return chainTail
}

func connectBipartite(g *graph.Graph, from, to []int64) {
	for _, u := range from {
		for _, v := range to {
			g.AddEdge(u, v)
		}
	}
}

func freqAt(freqs []float64, i int) float64 {
	if i < len(freqs) {
		return freqs[i]
	}
	return 0
}
