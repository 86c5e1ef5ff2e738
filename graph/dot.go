package graph

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDOT renders the graph in DOT format for human inspection: each node
// is labeled with its sequence string, EndPos and AF; each edge is
// rendered; name becomes the digraph's name. Grounded in the teacher's
// to_DOT idiom of writing DOT text directly rather than through a template.
func (g *Graph) WriteDOT(w io.Writer, name string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "// Each node has the sequence, followed by end_pos,allele_freq\n")
	fmt.Fprintf(bw, "digraph %s {\n", name)
	for _, id := range g.order {
		n := g.store.nodes[id]
		fmt.Fprintf(bw, "%d [label=\"%s\\n%d,%g\"];\n", id, n.SeqString(), n.EndPos(), n.AF())
	}
	for from, tos := range g.next {
		for _, to := range tos {
			fmt.Fprintf(bw, "%d -> %d;\n", from, to)
		}
	}
	fmt.Fprintf(bw, "}\n")
	return bw.Flush()
}
