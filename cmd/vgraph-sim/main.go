package main

// See doc.go for documentation.
import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/vargraph/vgraph/cmd/vgraph-sim/simcmd"
)

var (
	gdefPath = flag.String("gdef", "", "Input GDEF path")
	label    = flag.String("label", simcmd.DefaultOpts.Label, "Subgraph label to draw reads from")
	numReads = flag.Int("n", simcmd.DefaultOpts.NumReads, "Number of reads to draw")
	length   = flag.Int("len", simcmd.DefaultOpts.Len, "Nominal read length")
	mut      = flag.Float64("mut", 0, "Substitution count, or rate if -rand-rate")
	indel    = flag.Float64("indel", 0, "Indel count, or rate if -rand-rate")
	randRate = flag.Bool("rand-rate", false, "Treat -mut/-indel as per-base rates instead of counts")
	varNodes = flag.Int("var-nodes", simcmd.DefaultOpts.VarNodes, "Required variant-node count, -1 for any")
	varBases = flag.Int("var-bases", simcmd.DefaultOpts.VarBases, "Required variant-base count, -1 for any")
	seed     = flag.Int64("seed", simcmd.DefaultOpts.Seed, "Random seed")
	out      = flag.String("out", "", "Output path; defaults to stdout")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -gdef calls.gdef -label eur -n 1000 -len 150\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if *gdefPath == "" {
		log.Fatalf("vgraph-sim: -gdef is required")
	}

	opts := simcmd.Opts{
		GDEF: *gdefPath, Label: *label, NumReads: *numReads, Len: *length,
		Mut: *mut, Indel: *indel, Rand: *randRate,
		VarNodes: *varNodes, VarBases: *varBases, Seed: *seed, Out: *out,
	}
	if err := simcmd.Run(opts); err != nil {
		log.Fatalf("vgraph-sim: %v", err)
	}
}
