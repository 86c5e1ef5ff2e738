package variant

import (
	"math/rand"
	"strings"

	"github.com/vargraph/vgraph/popset"
)

// Record is one phased variant call-set entry used by Memory.
type Record struct {
	Pos     int
	Ref     string
	Alts    []string
	Freqs   []float64 // parallel to Ref+Alts, REF frequency first
	Genotypes [][2]int // per sample, allele index per phase (0 == REF)
}

// Memory is an in-memory Source over a fixed, pre-sorted record list, used
// by GraphBuilder's tests.
type Memory struct {
	contig  string
	records []Record
	samples []string

	lo, hi  int
	idx     int
	started bool

	ingroupSamples map[int]bool
	ingroupStr     string
}

// NewMemory builds a Memory source for one contig's records, in ascending
// position order, and the sample names in column order.
func NewMemory(contig string, records []Record, samples []string) *Memory {
	return &Memory{contig: contig, records: records, samples: samples, ingroupStr: "100% (all samples)"}
}

// Open is a no-op for Memory.
func (m *Memory) Open(path string) error { return nil }

// SetRegion implements Source.
func (m *Memory) SetRegion(contig string, lo, hi int) error {
	m.lo, m.hi = lo, hi
	m.idx = -1
	m.started = false
	if contig != m.contig {
		// no records for a contig this Memory wasn't built for
		m.idx = len(m.records)
		m.started = true
	}
	return nil
}

// Next implements Source.
func (m *Memory) Next() bool {
	if !m.started {
		m.started = true
		m.idx = -1
	}
	for {
		m.idx++
		if m.idx >= len(m.records) {
			return false
		}
		p := m.records[m.idx].Pos
		if p < m.lo {
			continue
		}
		if m.hi > 0 && p > m.hi {
			return false
		}
		return true
	}
}

func (m *Memory) cur() *Record { return &m.records[m.idx] }

// Pos implements Source.
func (m *Memory) Pos() int { return m.cur().Pos }

// Ref implements Source.
func (m *Memory) Ref() string { return m.cur().Ref }

// Alleles implements Source, REF first.
func (m *Memory) Alleles() []string {
	return append([]string{m.cur().Ref}, m.cur().Alts...)
}

// Frequencies implements Source, parallel to Alleles.
func (m *Memory) Frequencies() []float64 { return m.cur().Freqs }

// AllelePop implements Source: the haplotype bitset of samples whose
// genotype at the current record names allele.
func (m *Memory) AllelePop(allele string) *popset.Population {
	alleleIdx := -1
	for i, a := range m.Alleles() {
		if a == allele {
			alleleIdx = i
			break
		}
	}
	pop := popset.New(uint(2 * len(m.samples)))
	if alleleIdx < 0 {
		return pop
	}
	rec := m.cur()
	for sampleIdx, gt := range rec.Genotypes {
		if m.ingroupSamples != nil && !m.ingroupSamples[sampleIdx] {
			continue
		}
		for phase, allele := range gt {
			if allele == alleleIdx {
				pop.Set(uint(2*sampleIdx + phase))
			}
		}
	}
	return pop
}

// Samples implements Source.
func (m *Memory) Samples() []string { return m.samples }

// NumSamples implements Source.
func (m *Memory) NumSamples() int { return len(m.samples) }

// CreateIngroup implements Source, sampling percent% of samples without
// replacement. An out-of-range percent is silently ignored, leaving the
// current in-group unchanged.
func (m *Memory) CreateIngroup(percent int) {
	if percent < 0 || percent > 100 {
		return
	}
	n := percent * len(m.samples) / 100
	all := popset.AllOnes(uint(len(m.samples)))
	chosen, err := popset.SampleWithoutReplacement(all, n, rand.New(rand.NewSource(rand.Int63())))
	if err != nil {
		return
	}
	set := make(map[int]bool, n)
	names := make([]string, 0, n)
	for _, idx := range chosen.SetIndexes() {
		set[int(idx)] = true
		names = append(names, m.samples[idx])
	}
	m.ingroupSamples = set
	m.ingroupStr = strings.Join(names, ",")
}

// IngroupStr implements Source.
func (m *Memory) IngroupStr() string { return m.ingroupStr }
