package main

// See doc.go for documentation.
import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/vargraph/vgraph/cmd/vgraph-define/define"
)

var (
	ref     = flag.String("ref", "", "Reference FASTA path")
	vcf     = flag.String("vcf", "", "Variant call-set path")
	region  = flag.String("region", "", "Region as contig:lo-hi")
	nodeLen = flag.Int("node-len", define.DefaultOpts.NodeLen, "Maximum reference-span node length")
	defs    = flag.String("defs", "", "Subgraph definitions, e.g. \"eur=100;eur/female=50%\"")
	out     = flag.String("out", "", "Output GDEF path; defaults to stdout")
	seed    = flag.Int64("seed", define.DefaultOpts.Seed, "Random seed for without-replacement sampling")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -ref ref.fa -vcf calls.vcf -region chr1:0-1000 -defs ... -out calls.gdef\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if *ref == "" || *vcf == "" {
		log.Fatalf("vgraph-define: -ref and -vcf are required")
	}

	opts := define.Opts{
		Ref:     *ref,
		VCF:     *vcf,
		Region:  *region,
		NodeLen: *nodeLen,
		Defs:    *defs,
		Out:     *out,
		Seed:    *seed,
	}
	if err := define.Run(opts); err != nil {
		log.Fatalf("vgraph-define: %v", err)
	}
}
