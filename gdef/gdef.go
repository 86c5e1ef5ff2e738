// Package gdef implements the graph definition file format and the
// GraphManager-equivalent Manager: a persistent, declarative description of
// a base graph plus a hierarchical family of named population filters,
// with lazy materialization and thread-safe caching.
package gdef

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/popset"
	"github.com/vargraph/vgraph/vgerr"
)

const (
	magic      = "@gdef"
	scopeSep   = "/"
	negatePfx  = "~"
	baseLabel  = "B"
	delim      = ";"
	assignChar = "="
)

// Meta holds the tag=value header line of a GDEF file.
type Meta struct {
	Ref      string
	VCF      string
	Region   string
	NodeLen  int
	Extra    map[string]string // unrecognized tags, preserved on round-trip
}

// Doc is the parsed contents of a GDEF file: the header plus every
// label=bitstring line, in file order.
type Doc struct {
	Meta   Meta
	Labels []string          // in file order
	Pops   map[string]string // label -> bitstring, exactly as read
}

// Parse reads a GDEF document from r.
func Parse(r io.Reader) (*Doc, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1024*1024*16)

	if !scanner.Scan() {
		return nil, errors.Wrap(vgerr.ErrBadMagic, "gdef: empty file")
	}
	if scanner.Text() != magic {
		return nil, errors.Wrapf(vgerr.ErrBadMagic, "gdef: got %q", scanner.Text())
	}
	if !scanner.Scan() {
		return nil, errors.Wrap(vgerr.ErrBadMagic, "gdef: missing meta line")
	}

	doc := &Doc{Pops: make(map[string]string), Meta: Meta{Extra: make(map[string]string)}}
	for _, tv := range strings.Split(scanner.Text(), delim) {
		if tv == "" {
			continue
		}
		tag, val, ok := cutOnce(tv, assignChar)
		if !ok {
			return nil, errors.Errorf("gdef: invalid meta token %q", tv)
		}
		switch tag {
		case "ref":
			doc.Meta.Ref = val
		case "vcf":
			doc.Meta.VCF = val
		case "region":
			doc.Meta.Region = val
		case "nodelen":
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, errors.Wrapf(err, "gdef: invalid nodelen %q", val)
			}
			doc.Meta.NodeLen = n
		default:
			doc.Meta.Extra[tag] = val
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		label, bits, ok := cutOnce(line, assignChar)
		if !ok {
			return nil, errors.Errorf("gdef: invalid definition line %q", line)
		}
		if _, dup := doc.Pops[label]; dup {
			return nil, errors.Wrapf(vgerr.ErrDuplicateLabel, "%q", label)
		}
		doc.Labels = append(doc.Labels, label)
		doc.Pops[label] = bits
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "gdef: reading document")
	}
	return doc, nil
}

// Populations validates and decodes every bitstring in doc against width,
// returning ErrPopulationMismatch for any line of the wrong length.
func (doc *Doc) Populations(width uint) (map[string]*popset.Population, error) {
	out := make(map[string]*popset.Population, len(doc.Labels))
	for _, label := range doc.Labels {
		bits := doc.Pops[label]
		if uint(len(bits)) != width {
			return nil, errors.Wrapf(vgerr.ErrPopulationMismatch,
				"label %q has %d bits, want %d", label, len(bits), width)
		}
		pop, err := popset.FromBitString(bits)
		if err != nil {
			return nil, errors.Wrapf(err, "label %q", label)
		}
		out[label] = pop
	}
	return out, nil
}

// WriteTo serializes doc in file order.
func (doc *Doc) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, magic)

	meta := fmt.Sprintf("ref=%s;vcf=%s;region=%s;nodelen=%d", doc.Meta.Ref, doc.Meta.VCF, doc.Meta.Region, doc.Meta.NodeLen)
	for tag, val := range doc.Meta.Extra {
		meta += ";" + tag + "=" + val
	}
	fmt.Fprintln(bw, meta)

	for _, label := range doc.Labels {
		fmt.Fprintf(bw, "%s=%s\n", label, doc.Pops[label])
	}
	return bw.Flush()
}

func cutOnce(s, sep string) (before, after string, found bool) {
	i := strings.Index(s, sep)
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

// parentOf returns the scope-path parent of label ("B/sub1/leaf" -> "B/sub1"),
// or "" if label has no parent (i.e. label == "B").
func parentOf(label string) string {
	i := strings.LastIndex(label, scopeSep)
	if i < 0 {
		return ""
	}
	return label[:i]
}

// leafOf returns the final path component of label.
func leafOf(label string) string {
	i := strings.LastIndex(label, scopeSep)
	if i < 0 {
		return label
	}
	return label[i+len(scopeSep):]
}
