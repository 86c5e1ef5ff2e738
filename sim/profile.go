// Package sim implements the read-simulation contract against a
// graph.Graph: length-weighted node sampling, a forward walk with
// substitution/indel error injection, and SAM record emission stamping the
// simulator's auxiliary tags. It intentionally does not implement a full
// mutation engine beyond what the contract with Graph requires.
package sim

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/vgerr"
)

// Profile controls the reads a Simulator produces. A negative VarNodes or
// VarBases means "no preference".
type Profile struct {
	Len       int     // nominal read length
	Rand      bool    // Mut/Indel are rates rather than discrete counts when true
	Mut       float64 // substitution count or rate
	Indel     float64 // indel count or rate
	VarNodes  int     // required number of variant nodes traversed, -1 for any
	VarBases  int     // required number of variant bases traversed, -1 for any
}

// Validate rejects profiles that can never be satisfied, grounded in the
// collaborator's set_prof check: a read cannot traverse zero variant nodes
// while also containing a positive number of variant bases.
func (p Profile) Validate() error {
	if p.VarNodes == 0 && p.VarBases > 0 {
		return errors.Wrapf(vgerr.ErrProfileConflict, "var_nodes=0 but var_bases=%d", p.VarBases)
	}
	return nil
}

// String renders the profile as "len=X;mut=X;indel=X;vnode=X;vbase=X;rand=X".
func (p Profile) String() string {
	return fmt.Sprintf("len=%d;mut=%g;indel=%g;vnode=%d;vbase=%d;rand=%t",
		p.Len, p.Mut, p.Indel, p.VarNodes, p.VarBases, p.Rand)
}
