// Package seqcode is a bijective map between the nucleotide alphabet
// {A,C,G,T,N} and a compact 3-bit numeral alphabet {0,1,2,3,4}, used to keep
// Node sequences small. Conversions are total (every byte maps to something)
// and allocation-bounded: the output is always pre-sized to len(input).
package seqcode

// Base enumerates the numeral alphabet a node sequence is stored in.
type Base = byte

// The numeral values a byte can encode to. Anything outside {A,C,G,T} in
// either case decodes to N.
const (
	A Base = 0
	C Base = 1
	G Base = 2
	T Base = 3
	N Base = 4
)

var encodeTable = [256]Base{}

func init() {
	for i := range encodeTable {
		encodeTable[i] = N
	}
	encodeTable['A'], encodeTable['a'] = A, A
	encodeTable['C'], encodeTable['c'] = C, C
	encodeTable['G'], encodeTable['g'] = G, G
	encodeTable['T'], encodeTable['t'] = T, T
}

var decodeTable = [5]byte{'A', 'C', 'G', 'T', 'N'}

// Encode converts a nucleotide string into its numeral representation.
func Encode(seq string) []Base {
	out := make([]Base, len(seq))
	for i := 0; i < len(seq); i++ {
		out[i] = encodeTable[seq[i]]
	}
	return out
}

// Decode converts a numeral sequence back to an uppercase nucleotide string.
// Any value outside {0,1,2,3} decodes to 'N'.
func Decode(num []Base) string {
	out := make([]byte, len(num))
	for i, n := range num {
		if n > N {
			n = N
		}
		out[i] = decodeTable[n]
	}
	return string(out)
}

// EncodeByte converts a single character to its numeral form.
func EncodeByte(c byte) Base {
	return encodeTable[c]
}

// DecodeByte converts a single numeral value to its character form.
func DecodeByte(n Base) byte {
	if n > N {
		n = N
	}
	return decodeTable[n]
}
