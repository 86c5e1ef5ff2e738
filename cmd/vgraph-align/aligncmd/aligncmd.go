// Package aligncmd implements the vgraph-align command body.
package aligncmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/align"
	"github.com/vargraph/vgraph/gdef"
	"github.com/vargraph/vgraph/refsource"
	"github.com/vargraph/vgraph/variant"
)

// Opts holds vgraph-align's command-line configuration.
type Opts struct {
	GDEF      string
	Label     string
	Reads     string
	ChunkSize int
	Workers   int
	Local     bool
	Out       string
}

// DefaultOpts mirrors the chunk/worker defaults from the chunk-dispatch
// contract (spec §5).
var DefaultOpts = Opts{
	Label:     "B",
	ChunkSize: 64,
	Workers:   4,
}

// Run loads opts.GDEF, materializes opts.Label's subgraph, reads one read
// per line from opts.Reads, aligns every read against the subgraph's root
// via align.RunChunked, and writes one tab-separated result line per read
// (a running number in the order results complete, score, end-to-end flag,
// node path) to opts.Out. With more than one worker, that number and the
// line order need not follow the order of reads in opts.Reads.
func Run(opts Opts) error {
	gf, err := os.Open(opts.GDEF)
	if err != nil {
		return errors.Wrapf(err, "vgraph-align: opening %q", opts.GDEF)
	}
	defer gf.Close()

	ref := refsource.NewFASTA()
	vcf := variant.NewReader()
	mgr, err := gdef.Open(gf, ref, vcf, true)
	if err != nil {
		return errors.Wrapf(err, "vgraph-align: loading %q", opts.GDEF)
	}

	g, err := mgr.MakeSubgraph(opts.Label)
	if err != nil {
		return errors.Wrapf(err, "vgraph-align: materializing %q", opts.Label)
	}

	reads, err := readLines(opts.Reads)
	if err != nil {
		return err
	}
	startNodes := make([]int64, len(reads))
	for i := range startNodes {
		startNodes[i] = g.Root()
	}

	mode := align.EndToEnd
	if opts.Local {
		mode = align.Local
	}
	p := align.DefaultScoreParams()

	var out io.Writer = os.Stdout
	if opts.Out != "" {
		of, err := os.Create(opts.Out)
		if err != nil {
			return errors.Wrapf(err, "vgraph-align: creating %q", opts.Out)
		}
		defer of.Close()
		out = of
	}

	var mu sync.Mutex
	idx := 0
	err = align.RunChunked(g, opts.ChunkSize, opts.Workers, reads, startNodes, p, mode, func(r *align.Result) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(out, "read_%d\t%d\t%t\t%v\n", idx, r.Score, r.EndToEnd, r.NodePath)
		idx++
	})
	if err != nil {
		return errors.Wrap(err, "vgraph-align: aligning")
	}
	log.Debug.Printf("vgraph-align: aligned %d reads against %q", len(reads), opts.Label)
	return nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "vgraph-align: opening %q", path)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
