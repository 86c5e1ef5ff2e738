package graph

import (
	"sync/atomic"

	"github.com/vargraph/vgraph/popset"
	"github.com/vargraph/vgraph/seqcode"
)

// nextID is the process-wide monotonic node id counter (spec §9 "Global id
// counter"). It is atomic so multiple GraphBuilders in the same process can
// allocate ids concurrently; graph construction itself is still expected to
// be single-threaded per Graph (spec §5).
var nextID atomic.Int64

func allocateID() int64 {
	return nextID.Add(1)
}

// bumpNextID advances the counter so that the next allocation exceeds v-1,
// i.e. the next call to allocateID returns something >= v. It is a no-op if
// the counter is already at or past v.
func bumpNextID(v int64) {
	for {
		cur := nextID.Load()
		if cur >= v {
			return
		}
		if nextID.CompareAndSwap(cur, v) {
			return
		}
	}
}

// Membership is the answer to a haplotype-membership query. Reference nodes
// answer Always regardless of their stored bitset content, encoding
// "present for every haplotype" without needing to scan the bitset.
type Membership int

const (
	// NotMember means the queried haplotype does not carry this allele.
	NotMember Membership = iota
	// Member means the queried haplotype carries this allele.
	Member
	// AlwaysMember is the distinguished answer reference nodes always give.
	AlwaysMember
)

// Node is the atomic unit of the graph: a bounded-length sequence fragment
// plus its provenance (reference end position, allele frequency, reference
// flag, haplotype membership, and a process-unique id).
type Node struct {
	id     int64
	seq    []seqcode.Base
	endPos int
	isRef  bool
	af     float64
	pop    *popset.Population
}

// NewNode is the single canonical node constructor (spec §3, §9 Open
// Questions: the source's two node-construction helpers are collapsed into
// this one contract). The node is allocated the next process-wide id; use
// SetID to assign a specific one instead.
func NewNode(seq string, endPos int, isRef bool, af float64, pop *popset.Population) *Node {
	return &Node{
		id:     allocateID(),
		seq:    seqcode.Encode(seq),
		endPos: endPos,
		isRef:  isRef,
		af:     af,
		pop:    pop,
	}
}

// ID returns the node's process-unique id.
func (n *Node) ID() int64 { return n.id }

// SetID overrides the node's id. Per spec §3/§9, this bumps the global
// counter so the next automatic allocation exceeds id, preserving
// monotonicity even when ids are assigned externally.
func (n *Node) SetID(id int64) {
	n.id = id
	bumpNextID(id + 1)
}

// Len returns the length of the node's sequence.
func (n *Node) Len() int { return len(n.seq) }

// Seq returns the node's sequence in numeral form.
func (n *Node) Seq() []seqcode.Base { return n.seq }

// SeqString returns the node's sequence as an uppercase nucleotide string.
func (n *Node) SeqString() string { return seqcode.Decode(n.seq) }

// EndPos returns the 0-based inclusive reference position of the node's
// last base (for alt nodes, the end of the REF allele it replaces).
func (n *Node) EndPos() int { return n.endPos }

// IsRef reports whether the node participates in the reference path.
func (n *Node) IsRef() bool { return n.isRef }

// AF returns the node's allele frequency.
func (n *Node) AF() float64 { return n.af }

// Population returns the node's haplotype bitset. For reference nodes this
// is all-ones, but Belongs should be used for membership queries since it
// special-cases the "always" answer without depending on bitset content.
func (n *Node) Population() *popset.Population { return n.pop }

// Belongs answers whether haplotype i carries this node's allele. Reference
// nodes always answer AlwaysMember.
func (n *Node) Belongs(i uint) Membership {
	if n.isRef {
		return AlwaysMember
	}
	if n.pop != nil && n.pop.Test(i) {
		return Member
	}
	return NotMember
}
