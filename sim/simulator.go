package sim

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/graph"
)

// maxAttempts bounds the number of forward walks tried before giving up on
// satisfying a Profile's var_nodes/var_bases constraint.
const maxAttempts = 1000

// Read is a simulated read plus its provenance, mirroring the
// collaborator's Read struct. Indiv is always -1: a read is not attributed
// to a single sample.
type Read struct {
	ReadOrig string
	Read     string
	EndPos   int
	Indiv    int
	SubErr   int
	IndelErr int
	VarNodes int
	VarBases int
}

// Simulator draws reads from a Graph following a Profile: it samples a
// start node weighted by sequence length, walks forward along successors
// until the nominal length is reached, then injects substitution and indel
// errors.
type Simulator struct {
	g    *graph.Graph
	prof Profile
	rng  *rand.Rand

	nodeIDs []int64
	cumLen  []int // cumLen[i] is the total sequence length of nodeIDs[0:i+1]
}

// New returns a Simulator over g using prof, validated via Profile.Validate.
func New(g *graph.Graph, prof Profile, rng *rand.Rand) (*Simulator, error) {
	if err := prof.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{g: g, prof: prof, rng: rng}
	it, err := g.Begin()
	if err != nil {
		return nil, err
	}
	total := 0
	for end := g.End(); !it.Equal(end); it.Inc() {
		n := it.Node()
		total += n.Len()
		s.nodeIDs = append(s.nodeIDs, n.ID())
		s.cumLen = append(s.cumLen, total)
	}
	return s, nil
}

// sampleStartNode picks a node weighted by its sequence length, the same
// cumulative-length binary-search idiom as the collaborator's node
// sampler, and an offset within it.
func (s *Simulator) sampleStartNode() (nodeIdx int, offset int) {
	total := 0
	if len(s.cumLen) > 0 {
		total = s.cumLen[len(s.cumLen)-1]
	}
	if total == 0 {
		return 0, 0
	}
	target := s.rng.Intn(total)
	lo, hi := 0, len(s.cumLen)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if s.cumLen[mid] <= target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	prevCum := 0
	if lo > 0 {
		prevCum = s.cumLen[lo-1]
	}
	return lo, target - prevCum
}

// UpdateRead draws one read satisfying the Profile, retrying the forward
// walk up to maxAttempts times if var_nodes/var_bases do not match.
func (s *Simulator) UpdateRead() (*Read, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		read := s.walkOnce()
		if s.matchesProfile(read) {
			s.injectErrors(read)
			return read, nil
		}
	}
	return nil, errors.Errorf("sim: no read satisfying profile %s found in %d attempts", s.prof.String(), maxAttempts)
}

func (s *Simulator) walkOnce() *Read {
	startIdx, offset := s.sampleStartNode()
	curID := s.nodeIDs[startIdx]

	var b strings.Builder
	varNodes, varBases, endPos := 0, 0, 0
	first := true
	for b.Len() < s.prof.Len {
		n, ok := s.g.Node(curID)
		if !ok {
			break
		}
		seq := n.SeqString()
		start := 0
		if first {
			start = offset
			first = false
		}
		if start >= len(seq) {
			break
		}
		remain := s.prof.Len - b.Len()
		end := start + remain
		if end > len(seq) {
			end = len(seq)
		}
		b.WriteString(seq[start:end])
		if !n.IsRef() {
			varNodes++
			varBases += end - start
		}
		endPos = n.EndPos() - (len(seq) - end)

		succs := s.g.Next(curID)
		if len(succs) == 0 || b.Len() >= s.prof.Len {
			break
		}
		curID = succs[s.rng.Intn(len(succs))]
	}

	return &Read{
		ReadOrig: b.String(),
		Read:     b.String(),
		EndPos:   endPos,
		Indiv:    -1,
		SubErr:   -1,
		IndelErr: -1,
		VarNodes: varNodes,
		VarBases: varBases,
	}
}

func (s *Simulator) matchesProfile(r *Read) bool {
	if s.prof.VarNodes >= 0 && r.VarNodes != s.prof.VarNodes {
		return false
	}
	if s.prof.VarBases >= 0 && r.VarBases != s.prof.VarBases {
		return false
	}
	return true
}

// injectErrors mutates r.Read in place with substitutions, recording the
// count introduced. Indel injection is limited to deletions (shortening the
// read), matching the "number of insertions/deletions" accounting without
// requiring a second graph walk to re-extend the read.
func (s *Simulator) injectErrors(r *Read) {
	subCount := s.resolveCount(s.prof.Mut, len(r.Read))
	indelCount := s.resolveCount(s.prof.Indel, len(r.Read))

	bases := []byte(r.Read)
	for i := 0; i < subCount && len(bases) > 0; i++ {
		pos := s.rng.Intn(len(bases))
		bases[pos] = randomOtherBase(bases[pos], s.rng)
	}
	for i := 0; i < indelCount && len(bases) > 1; i++ {
		pos := s.rng.Intn(len(bases))
		bases = append(bases[:pos], bases[pos+1:]...)
	}
	r.Read = string(bases)
	r.SubErr = subCount
	r.IndelErr = indelCount
}

func (s *Simulator) resolveCount(v float64, readLen int) int {
	if !s.prof.Rand {
		return int(v)
	}
	count := 0
	for i := 0; i < readLen; i++ {
		if s.rng.Float64() < v {
			count++
		}
	}
	return count
}

var baseAlphabet = [4]byte{'A', 'C', 'G', 'T'}

func randomOtherBase(b byte, rng *rand.Rand) byte {
	for {
		cand := baseAlphabet[rng.Intn(4)]
		if cand != b {
			return cand
		}
	}
}
