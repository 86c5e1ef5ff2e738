// Package define implements the vgraph-define command body, split out of
// main so it is unit-testable without exec.Command, the same shape as
// pileup/snp.Pileup relative to cmd/bio-pileup/main.go.
package define

import (
	"io"
	"math/rand"
	"os"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/gdef"
	"github.com/vargraph/vgraph/variant"
)

// Opts holds vgraph-define's command-line configuration.
type Opts struct {
	Ref      string
	VCF      string
	Region   string
	NodeLen  int
	Defs     string
	Out      string
	Seed     int64
}

// DefaultOpts mirrors the teacher's DefaultOpts-as-zero-value-plus-sentinels
// pattern (pileup/snp.DefaultOpts).
var DefaultOpts = Opts{
	NodeLen: 1000,
	Seed:    1,
}

// Run opens opts.VCF only to learn its sample count (population width is
// 2*num_samples), builds a GDEF document from opts.Defs, and writes it to
// opts.Out (or stdout if empty).
func Run(opts Opts) error {
	vcf := variant.NewReader()
	if err := vcf.Open(opts.VCF); err != nil {
		return errors.Wrapf(err, "vgraph-define: opening %q", opts.VCF)
	}
	width := uint(2 * vcf.NumSamples())
	log.Debug.Printf("vgraph-define: %d samples, population width %d", vcf.NumSamples(), width)

	meta := gdef.Meta{
		Ref:     opts.Ref,
		VCF:     opts.VCF,
		Region:  opts.Region,
		NodeLen: opts.NodeLen,
	}
	rng := rand.New(rand.NewSource(opts.Seed))

	var out io.Writer = os.Stdout
	if opts.Out != "" {
		f, err := os.Create(opts.Out)
		if err != nil {
			return errors.Wrapf(err, "vgraph-define: creating %q", opts.Out)
		}
		defer f.Close()
		out = f
	}

	doc, err := gdef.WriteDoc(out, meta, opts.Defs, width, rng)
	if err != nil {
		return err
	}
	log.Debug.Printf("vgraph-define: wrote %d labels", len(doc.Labels))
	return nil
}
