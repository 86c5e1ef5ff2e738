package main

// See doc.go for documentation.
import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/vargraph/vgraph/cmd/vgraph-align/aligncmd"
)

var (
	gdefPath  = flag.String("gdef", "", "Input GDEF path")
	label     = flag.String("label", aligncmd.DefaultOpts.Label, "Subgraph label to align against")
	reads     = flag.String("reads", "", "Path to a file of reads, one per line")
	chunkSize = flag.Int("chunk-size", aligncmd.DefaultOpts.ChunkSize, "Reads per dispatched chunk")
	workers   = flag.Int("workers", aligncmd.DefaultOpts.Workers, "Number of concurrent alignment workers")
	local     = flag.Bool("local", false, "Use local alignment instead of end-to-end")
	out       = flag.String("out", "", "Output path; defaults to stdout")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -gdef calls.gdef -label eur -reads reads.txt\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if *gdefPath == "" || *reads == "" {
		log.Fatalf("vgraph-align: -gdef and -reads are required")
	}

	opts := aligncmd.Opts{
		GDEF: *gdefPath, Label: *label, Reads: *reads,
		ChunkSize: *chunkSize, Workers: *workers, Local: *local, Out: *out,
	}
	if err := aligncmd.Run(opts); err != nil {
		log.Fatalf("vgraph-align: %v", err)
	}
}
