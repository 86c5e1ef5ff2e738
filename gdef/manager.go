package gdef

import (
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/graph"
	"github.com/vargraph/vgraph/graphbuild"
	"github.com/vargraph/vgraph/popset"
	"github.com/vargraph/vgraph/refsource"
	"github.com/vargraph/vgraph/variant"
	"github.com/vargraph/vgraph/vgerr"
)

// Manager is the GDEF-backed subgraph manager: it reconstructs a base graph
// from a document's header, keeps the document's per-label population
// filters, and lazily materializes named subgraphs on demand, caching them
// under a mutex that guards only the cache map itself.
type Manager struct {
	doc  *Doc
	base *graph.Graph
	pops map[string]*popset.Population

	mu    sync.Mutex
	cache map[string]*graph.Graph
}

// Open parses r as a GDEF document and, unless buildBase is false, builds
// the base graph by running graphbuild over ref and vcf, opening each at
// the path recorded in the document's meta line.
func Open(r io.Reader, ref refsource.Source, vcf variant.Source, buildBase bool) (*Manager, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}

	m := &Manager{doc: doc, cache: make(map[string]*graph.Graph)}

	if buildBase {
		if err := ref.Open(doc.Meta.Ref); err != nil {
			return nil, errors.Wrapf(vgerr.ErrInvalidSource, "gdef: opening reference %q: %v", doc.Meta.Ref, err)
		}
		if err := vcf.Open(doc.Meta.VCF); err != nil {
			return nil, errors.Wrapf(vgerr.ErrInvalidSource, "gdef: opening variants %q: %v", doc.Meta.VCF, err)
		}
		region, err := parseRegion(doc.Meta.Region)
		if err != nil {
			return nil, err
		}
		b := graphbuild.New(ref, vcf, graphbuild.Opts{
			Region: region, MaxNodeLen: doc.Meta.NodeLen, IngroupPercent: graphbuild.DefaultIngroupPercent,
		})
		g, err := b.Build()
		if err != nil {
			return nil, err
		}
		m.base = g
	}

	var width uint
	if buildBase {
		width = uint(2 * vcf.NumSamples())
	}
	if width == 0 && len(doc.Labels) > 0 {
		width = uint(len(doc.Pops[doc.Labels[0]]))
	}
	pops, err := doc.Populations(width)
	if err != nil {
		return nil, err
	}
	m.pops = pops
	return m, nil
}

// parseRegion decodes a "chr:lo-hi" string into a graphbuild.Region.
func parseRegion(s string) (graphbuild.Region, error) {
	contig, span, ok := cutOnce(s, ":")
	if !ok {
		return graphbuild.Region{Contig: s}, nil
	}
	lo, hi, ok := cutOnce(span, "-")
	if !ok {
		return graphbuild.Region{Contig: contig}, nil
	}
	var region graphbuild.Region
	region.Contig = contig
	fmt.Sscanf(lo, "%d", &region.Lower)
	fmt.Sscanf(hi, "%d", &region.Upper)
	return region, nil
}

// WriteDoc builds a Doc from meta/defsBlob/width using rng for sampling,
// stamps a generation id into the meta line, and serializes it to out.
func WriteDoc(out io.Writer, meta Meta, defsBlob string, width uint, rng *rand.Rand) (*Doc, error) {
	doc, err := BuildDoc(meta, defsBlob, width, rng)
	if err != nil {
		return nil, err
	}
	if doc.Meta.Extra == nil {
		doc.Meta.Extra = make(map[string]string)
	}
	doc.Meta.Extra["generated-by"] = uuid.New().String()
	if err := doc.WriteTo(out); err != nil {
		return nil, err
	}
	return doc, nil
}

// OpenFromDoc builds a Manager from an already-resolved Doc by serializing
// it and passing the text to Open. Used when Write has just produced doc in
// the same process.
func OpenFromDoc(doc *Doc, ref refsource.Source, vcf variant.Source, buildBase bool) (*Manager, error) {
	var buf strings.Builder
	if err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return Open(strings.NewReader(buf.String()), ref, vcf, buildBase)
}

// Base returns the base graph. It is an error to call this if Open was
// called with buildBase=false.
func (m *Manager) Base() (*graph.Graph, error) {
	if m.base == nil {
		return nil, errors.New("gdef: no base graph built")
	}
	return m.base, nil
}

// MakeSubgraph derives and caches the subgraph named by label (scoped
// relative to "B", e.g. "sub1" for "B/sub1"), or returns the cached graph
// if already materialized. The special label "B" returns the base graph.
// Derivation runs unsynchronized against the shared, read-only base graph;
// only insertion into the cache map is guarded.
func (m *Manager) MakeSubgraph(label string) (*graph.Graph, error) {
	if label == baseLabel {
		return m.Base()
	}
	fullLabel := baseLabel + scopeSep + label

	m.mu.Lock()
	if g, ok := m.cache[fullLabel]; ok {
		m.mu.Unlock()
		return g, nil
	}
	m.mu.Unlock()

	filter, ok := m.pops[fullLabel]
	if !ok {
		return nil, errors.Wrapf(vgerr.ErrUnknownSubgraph, "%q", label)
	}
	base, err := m.Base()
	if err != nil {
		return nil, err
	}

	log.Debug.Printf("gdef: materializing subgraph %q", fullLabel)
	sub, err := base.DeriveByFilter(filter)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if existing, ok := m.cache[fullLabel]; ok {
		sub = existing
	} else {
		m.cache[fullLabel] = sub
	}
	m.mu.Unlock()
	return sub, nil
}

// Subgraph returns a previously materialized view without building one.
// The special label "B" returns the base graph.
func (m *Manager) Subgraph(label string) (*graph.Graph, error) {
	if label == baseLabel {
		return m.Base()
	}
	fullLabel := baseLabel + scopeSep + label
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.cache[fullLabel]
	if !ok {
		return nil, errors.Wrapf(vgerr.ErrUnknownSubgraph, "%q", label)
	}
	return g, nil
}

// Filter returns the stored population filter for label without deriving a
// graph.
func (m *Manager) Filter(label string) (*popset.Population, error) {
	fullLabel := baseLabel
	if label != baseLabel {
		fullLabel = baseLabel + scopeSep + label
	}
	pop, ok := m.pops[fullLabel]
	if !ok {
		return nil, errors.Wrapf(vgerr.ErrUnknownSubgraph, "%q", label)
	}
	return pop, nil
}

// Labels returns every label in the document, in file order.
func (m *Manager) Labels() []string { return m.doc.Labels }

// WriteDOT renders the filter tree: one node per label with its popcount,
// edges from parent to child scope, and dotted outlines on "~"-negated
// labels.
func (m *Manager) WriteDOT(w io.Writer, name string) error {
	ids := make(map[string]int, len(m.pops))
	next := 1
	fmt.Fprintf(w, "digraph %s {\n", name)
	for _, label := range sortedLabelKeys(m.pops) {
		leaf := leafOf(label)
		ids[label] = next
		fmt.Fprintf(w, "%d [ label=\"%s : %d\" ", next, leaf, m.pops[label].Count())
		if strings.HasPrefix(leaf, negatePfx) {
			fmt.Fprint(w, "style=dotted ")
		}
		fmt.Fprint(w, "];\n")
		next++
	}
	for _, label := range sortedLabelKeys(m.pops) {
		parent := parentOf(label)
		if parent == "" {
			continue
		}
		fmt.Fprintf(w, "%d -> %d;\n", ids[parent], ids[label])
	}
	fmt.Fprint(w, "labelloc=\"t\";\nlabel=\"Subgraph Name : Population Size\";\n}\n")
	return nil
}

func sortedLabelKeys(m map[string]*popset.Population) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
