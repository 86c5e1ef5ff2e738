// Package simcmd implements the vgraph-sim command body.
package simcmd

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/gdef"
	"github.com/vargraph/vgraph/refsource"
	"github.com/vargraph/vgraph/sim"
	"github.com/vargraph/vgraph/variant"
)

// Opts holds vgraph-sim's command-line configuration.
type Opts struct {
	GDEF     string
	Label    string
	NumReads int
	Len      int
	Mut      float64
	Indel    float64
	Rand     bool
	VarNodes int
	VarBases int
	Seed     int64
	Out      string
}

// DefaultOpts mirrors the "no preference" -1 sentinel from sim.Profile.
var DefaultOpts = Opts{
	Label:    "B",
	NumReads: 1,
	Len:      100,
	VarNodes: -1,
	VarBases: -1,
	Seed:     1,
}

// Run opens the GDEF document at opts.GDEF, materializes opts.Label's
// subgraph, draws opts.NumReads reads from it and writes each as one
// tab-separated line (read name, sequence, then every auxiliary tag in
// "TAG:VAL" SAM-ish form) to opts.Out.
func Run(opts Opts) error {
	f, err := os.Open(opts.GDEF)
	if err != nil {
		return errors.Wrapf(err, "vgraph-sim: opening %q", opts.GDEF)
	}
	defer f.Close()

	ref := refsource.NewFASTA()
	vcf := variant.NewReader()
	mgr, err := gdef.Open(f, ref, vcf, true)
	if err != nil {
		return errors.Wrapf(err, "vgraph-sim: loading %q", opts.GDEF)
	}

	g, err := mgr.MakeSubgraph(opts.Label)
	if err != nil {
		return errors.Wrapf(err, "vgraph-sim: materializing %q", opts.Label)
	}

	prof := sim.Profile{
		Len: opts.Len, Mut: opts.Mut, Indel: opts.Indel, Rand: opts.Rand,
		VarNodes: opts.VarNodes, VarBases: opts.VarBases,
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	s, err := sim.New(g, prof, rng)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if opts.Out != "" {
		of, err := os.Create(opts.Out)
		if err != nil {
			return errors.Wrapf(err, "vgraph-sim: creating %q", opts.Out)
		}
		defer of.Close()
		out = of
	}

	for i := 0; i < opts.NumReads; i++ {
		r, err := s.UpdateRead()
		if err != nil {
			return errors.Wrapf(err, "vgraph-sim: drawing read %d", i)
		}
		name := fmt.Sprintf("sim_%d", i)
		rec, err := r.ToSAMRecord(name, opts.GDEF, opts.Label, "", opts.Rand)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\t%s", rec.Name, r.Read)
		for _, a := range rec.AuxFields {
			fmt.Fprintf(out, "\t%v", a)
		}
		fmt.Fprintln(out)
	}
	log.Debug.Printf("vgraph-sim: wrote %d reads from %q", opts.NumReads, opts.Label)
	return nil
}
