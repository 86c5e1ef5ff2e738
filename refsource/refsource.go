// Package refsource defines the random-access reference-sequence
// collaborator that GraphBuilder consumes, plus two implementations: an
// in-memory fake for tests and a FASTA-backed adapter for real files.
package refsource

import "github.com/pkg/errors"

// Source is the reference-sequence collaborator: random-access subsequence
// lookup by contig name and a 0-based inclusive range, and per-contig length.
type Source interface {
	// Open prepares the source for reading, e.g. opening a file and its
	// index. Memory sources treat Open as a no-op.
	Open(path string) error

	// Sequences returns the names of all contigs, in file order.
	Sequences() []string

	// SeqLen returns the length of the named contig.
	SeqLen(contig string) (int, error)

	// Subseq returns the bases in [lo, hi] (0-based, inclusive) of contig.
	Subseq(contig string, lo, hi int) (string, error)
}

var errNoSuchContig = errors.New("refsource: no such contig")
