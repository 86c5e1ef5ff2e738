// Package align supplies the alignment collaborator's contract: scoring
// parameters, the end-to-end vs. local dispatch, and the score-overflow
// condition a vectorized aligner would detect. It does not implement a
// SIMD scoring kernel; that inner loop is out of scope here (spec §1).
package align

import (
	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/graph"
	"github.com/vargraph/vgraph/vgerr"
)

// Mode selects the alignment semantics applied to a scoring routine. The
// choice is dispatched once per Score call rather than through separate
// implementing types, matching the enum-dispatch the collaborator contract
// calls for rather than a dynamic strategy interface.
type Mode int

const (
	// EndToEnd scores the read from its first base; Result.EndToEnd reports
	// whether every base of the read was consumed.
	EndToEnd Mode = iota
	// Local is recorded on the Result but scores with the same walk as
	// EndToEnd: the alignment is not trimmed to a sub-range of the read.
	Local
)

func (m Mode) String() string {
	switch m {
	case EndToEnd:
		return "end-to-end"
	case Local:
		return "local"
	default:
		return "unknown"
	}
}

// ScoreParams holds the per-base reward/penalty weights a scoring routine
// applies, plus the bit width of the accumulator it scores into.
type ScoreParams struct {
	Match           int
	MismatchPenalty int
	GapOpen         int
	GapExtend       int
	// AccumulatorBits bounds the signed integer width the scoring routine
	// accumulates into; CheckOverflow compares against this bound rather
	// than a hardcoded width so callers can model 8/16/32-bit kernels.
	AccumulatorBits int
}

// DefaultScoreParams mirrors the conventional Smith-Waterman/Needleman-Wunsch
// defaults used by short-read aligners: match +1, mismatch -4, affine gap
// open -6 extend -1, scored into a signed 16-bit accumulator.
func DefaultScoreParams() ScoreParams {
	return ScoreParams{
		Match:           1,
		MismatchPenalty: -4,
		GapOpen:         -6,
		GapExtend:       -1,
		AccumulatorBits: 16,
	}
}

// CheckOverflow reports whether scoring a read of readLen bases under p
// could exceed the accumulator's width, i.e. match*readLen overflows a
// signed integer of AccumulatorBits bits (spec §7's ScoreOverflow
// condition, "match×read_len exceeds the aligner's accumulator width").
func (p ScoreParams) CheckOverflow(readLen int) error {
	if p.AccumulatorBits <= 0 {
		return errors.Wrap(vgerr.ErrScoreOverflow, "non-positive accumulator width")
	}
	max := int64(1)<<uint(p.AccumulatorBits-1) - 1
	best := int64(p.Match) * int64(readLen)
	if best > max {
		return errors.Wrapf(vgerr.ErrScoreOverflow, "match*read_len=%d exceeds %d-bit accumulator (max %d)",
			best, p.AccumulatorBits, max)
	}
	return nil
}

// Result is a single read's alignment outcome against a subgraph: the
// traversed node path, the achieved score, and the mode it was scored
// under.
type Result struct {
	ReadName  string
	NodePath  []int64
	Score     int
	Mode      Mode
	EndToEnd  bool
}

// Score dispatches to the end-to-end or local scoring routine for read
// against g starting at startNode, per p. Both variants share one routine
// (spec §9 "Dynamic dispatch: none is needed in the core"). Both modes run
// the same greedy walk and differ only in the Mode stored on the Result;
// the walk does not stop early in Local mode. In either mode
// Result.EndToEnd reports whether every base of read was consumed.
func Score(g *graph.Graph, startNode int64, read string, p ScoreParams, mode Mode) (*Result, error) {
	if err := p.CheckOverflow(len(read)); err != nil {
		return nil, err
	}
	path, score, consumed := walkBestPath(g, startNode, read, p)
	if mode == EndToEnd && consumed < len(read) {
		return &Result{NodePath: path, Score: score, Mode: mode, EndToEnd: false}, nil
	}
	return &Result{NodePath: path, Score: score, Mode: mode, EndToEnd: consumed == len(read)}, nil
}

// walkBestPath performs a single greedy forward walk from startNode,
// scoring read base-for-base against each traversed node's sequence and
// following the highest-allele-frequency successor at each branch (the
// same deterministic tie-break DeriveMAXAF uses), stopping once read is
// exhausted or the graph has no further successors.
func walkBestPath(g *graph.Graph, startNode int64, read string, p ScoreParams) (path []int64, score, consumed int) {
	cur := startNode
	for consumed < len(read) {
		n, ok := g.Node(cur)
		if !ok {
			break
		}
		path = append(path, cur)
		seq := n.SeqString()
		for i := 0; i < len(seq) && consumed < len(read); i++ {
			if seq[i] == read[consumed] {
				score += p.Match
			} else {
				score += p.MismatchPenalty
			}
			consumed++
		}
		succs := g.Next(cur)
		if len(succs) == 0 {
			break
		}
		next := succs[0]
		bestAF := -1.0
		if bn, ok := g.Node(next); ok {
			bestAF = bn.AF()
		}
		for _, s := range succs[1:] {
			if sn, ok := g.Node(s); ok && sn.AF() > bestAF {
				next, bestAF = s, sn.AF()
			}
		}
		cur = next
	}
	return path, score, consumed
}
