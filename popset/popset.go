// Package popset implements the fixed-width population bitset used to mark,
// per phased-diploid haplotype index, whether a Node's allele is carried.
// It is a thin domain layer over github.com/bits-and-blooms/bitset (the same
// family of dependency the sibling example's variant tooling uses, named
// github.com/willf/bitset there): Population adds the width tracking,
// bit-string (de)serialization, and set-operation helpers the GDEF file
// format and the haplotype-filter derivation need.
package popset

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/vgerr"
)

// Population is a bitset of fixed width (normally 2*num_samples, i.e. one
// bit per phased-diploid haplotype).
type Population struct {
	bits  *bitset.BitSet
	width uint
}

// New returns a zeroed Population of the given width.
func New(width uint) *Population {
	return &Population{bits: bitset.New(width), width: width}
}

// AllOnes returns a Population of the given width with every bit set.
func AllOnes(width uint) *Population {
	p := New(width)
	for i := uint(0); i < width; i++ {
		p.bits.Set(i)
	}
	return p
}

// FromBitString parses a "0"/"1" bit-string (as stored in a GDEF file) into
// a Population whose width equals len(s).
func FromBitString(s string) (*Population, error) {
	p := New(uint(len(s)))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			p.bits.Set(uint(i))
		case '0':
			// zero bit, nothing to do
		default:
			return nil, errors.Wrapf(vgerr.ErrPopulationMismatch, "bit-string has non-binary character %q at %d", s[i], i)
		}
	}
	return p, nil
}

// Width returns the Population's fixed bit width.
func (p *Population) Width() uint { return p.width }

// Set marks haplotype i as carrying the allele.
func (p *Population) Set(i uint) { p.bits.Set(i) }

// Clear unmarks haplotype i.
func (p *Population) Clear(i uint) { p.bits.Clear(i) }

// Test reports whether haplotype i carries the allele.
func (p *Population) Test(i uint) bool { return p.bits.Test(i) }

// Count returns the number of set bits.
func (p *Population) Count() uint { return p.bits.Count() }

// Intersects reports whether p and other share any set bit.
func (p *Population) Intersects(other *Population) bool {
	return p.bits.IntersectionCardinality(other.bits) > 0
}

// Union returns a new Population that is the bitwise OR of p and other. The
// two populations must have equal width.
func (p *Population) Union(other *Population) *Population {
	return &Population{bits: p.bits.Union(other.bits), width: p.width}
}

// Negate returns the complement of p within parent: parent AND NOT p. Used
// to build the automatic "~"-prefixed sibling for every GDEF definition.
func (p *Population) Negate(parent *Population) *Population {
	complement := bitset.New(p.width)
	for i := uint(0); i < p.width; i++ {
		if !p.bits.Test(i) {
			complement.Set(i)
		}
	}
	return &Population{bits: complement.Intersection(parent.bits), width: p.width}
}

// Clone returns an independent copy of p.
func (p *Population) Clone() *Population {
	return &Population{bits: p.bits.Clone(), width: p.width}
}

// SetIndexes returns the sorted indexes of every set bit.
func (p *Population) SetIndexes() []uint {
	out := make([]uint, 0, p.bits.Count())
	for i, e := p.bits.NextSet(0); e; i, e = p.bits.NextSet(i + 1) {
		out = append(out, i)
	}
	return out
}

// String renders p as a "0"/"1" bit-string of length Width(), the format
// stored in a GDEF file.
func (p *Population) String() string {
	var b strings.Builder
	b.Grow(int(p.width))
	for i := uint(0); i < p.width; i++ {
		if p.bits.Test(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Equal reports whether p and other have the same width and bit content.
func (p *Population) Equal(other *Population) bool {
	return p.width == other.width && p.bits.Equal(other.bits)
}
