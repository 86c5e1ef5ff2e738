package sim

import (
	"github.com/biogo/hts/sam"
	"github.com/pkg/errors"
)

// Tags are the auxiliary fields a simulated read's SAM record carries.
const (
	TagReadOrig = "ro" // original unmutated read
	TagIndiv    = "nd" // sample index the read was drawn from, -1 if common to all
	TagSubErr   = "se" // number of substitution errors
	TagVarNodes = "vd" // number of variant nodes traversed
	TagVarBases = "vb" // number of variant bases traversed
	TagIndelErr = "ni" // number of indel errors
	TagEndPos   = "ep" // position of the last base in the sequence
	TagSrc      = "gd" // origin subgraph label
	TagUseRate  = "rt" // errors were generated with rates rather than discrete counts
	TagPop      = "po" // which samples were included in the subgraph
	TagGraph    = "ph" // graph file the read was drawn from
)

// ToSAMRecord renders r as a *sam.Record named name, stamping every
// auxiliary tag from the SAM CIGAR/aux contract. graphFile and srcLabel
// record provenance (the GDEF file and subgraph label the read came from);
// population is the subgraph's population bit-string.
func (r *Read) ToSAMRecord(name, graphFile, srcLabel, population string, useRate bool) (*sam.Record, error) {
	rec := &sam.Record{
		Name: name,
		Seq:  sam.NewSeq([]byte(r.Read)),
		Qual: make([]byte, len(r.Read)),
	}
	for i := range rec.Qual {
		rec.Qual[i] = 0xff // unavailable, per SAM spec convention
	}

	aux := func(tag string, v interface{}) error {
		a, err := sam.NewAux(sam.NewTag(tag), v)
		if err != nil {
			return errors.Wrapf(err, "sim: stamping tag %q", tag)
		}
		rec.AuxFields = append(rec.AuxFields, a)
		return nil
	}

	// sam.NewAux has no encoding for bool, so the rate flag is stamped as 0/1.
	useRateVal := 0
	if useRate {
		useRateVal = 1
	}

	fields := []struct {
		tag string
		val interface{}
	}{
		{TagReadOrig, r.ReadOrig},
		{TagIndiv, r.Indiv},
		{TagSubErr, r.SubErr},
		{TagVarNodes, r.VarNodes},
		{TagVarBases, r.VarBases},
		{TagIndelErr, r.IndelErr},
		{TagEndPos, r.EndPos},
		{TagSrc, srcLabel},
		{TagUseRate, useRateVal},
		{TagPop, population},
		{TagGraph, graphFile},
	}
	for _, f := range fields {
		if err := aux(f.tag, f.val); err != nil {
			return nil, err
		}
	}
	return rec, nil
}
