// Package variant defines the phased-variant-stream collaborator that
// GraphBuilder consumes, plus an in-memory fake and a thin line-oriented
// file reader.
package variant

import "github.com/vargraph/vgraph/popset"

// Source is the variant-stream collaborator: forward iteration over
// records in ascending position order, with per-record allele, frequency
// and haplotype-membership accessors.
type Source interface {
	// Open prepares the source for reading.
	Open(path string) error

	// SetRegion restricts iteration to the inclusive range [lo,hi] of contig.
	// A hi of 0 or less leaves the range open at the upper end.
	SetRegion(contig string, lo, hi int) error

	// Next advances to the next record in the region, returning false once
	// exhausted.
	Next() bool

	// Pos returns the current record's 0-based position.
	Pos() int

	// Ref returns the current record's REF allele.
	Ref() string

	// Alleles returns the current record's alleles, REF first at index 0.
	Alleles() []string

	// Frequencies returns the current record's allele frequencies, parallel
	// to Alleles.
	Frequencies() []float64

	// AllelePop returns the haplotype bitset of samples carrying allele, of
	// width 2*NumSamples.
	AllelePop(allele string) *popset.Population

	// Samples returns the sample names, in column order.
	Samples() []string

	// NumSamples returns the number of samples.
	NumSamples() int

	// CreateIngroup restricts subsequent population queries to a sample of
	// percent% of the samples, chosen without replacement. Values outside
	// [0,100] are ignored, matching the collaborator's original early
	// return.
	CreateIngroup(percent int)

	// IngroupStr describes the current in-group, for provenance logging.
	IngroupStr() string
}
