package refsource

import "github.com/pkg/errors"

// Memory is an in-memory Source over a fixed set of contigs, used by
// GraphBuilder's tests and the simulator contract tests.
type Memory struct {
	seqs     map[string]string
	seqNames []string
}

// NewMemory builds a Memory source from contig name to full sequence.
// Insertion order of names follows the order they first appear in names.
func NewMemory(seqs map[string]string, names []string) *Memory {
	m := &Memory{seqs: make(map[string]string, len(seqs)), seqNames: append([]string(nil), names...)}
	for _, name := range names {
		m.seqs[name] = seqs[name]
	}
	return m
}

// Open is a no-op for Memory; the sequences are already resident.
func (m *Memory) Open(path string) error { return nil }

// Sequences implements Source.
func (m *Memory) Sequences() []string { return m.seqNames }

// SeqLen implements Source.
func (m *Memory) SeqLen(contig string) (int, error) {
	s, ok := m.seqs[contig]
	if !ok {
		return 0, errors.Wrapf(errNoSuchContig, "%q", contig)
	}
	return len(s), nil
}

// Subseq implements Source.
func (m *Memory) Subseq(contig string, lo, hi int) (string, error) {
	s, ok := m.seqs[contig]
	if !ok {
		return "", errors.Wrapf(errNoSuchContig, "%q", contig)
	}
	if lo < 0 || hi < lo || hi >= len(s) {
		return "", errors.Errorf("refsource: invalid range [%d,%d] for contig %q of length %d", lo, hi, contig, len(s))
	}
	return s[lo : hi+1], nil
}
