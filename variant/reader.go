package variant

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/vargraph/vgraph/popset"
	"github.com/vargraph/vgraph/vgerr"
)

// Reader is a thin, line-oriented VCF-flavored Source. It is deliberately
// not a full VCF parser: it accepts exactly the tab-separated shape
//
//	#CHROM	POS	REF	ALT	AF	sample1	sample2	...
//	chr1	100	A	C,G	0.6,0.3,0.1	0|1	1|1
//
// where POS is 1-based (converted to 0-based on read), ALT and AF are
// comma-separated (AF includes the REF frequency first), and each sample
// column is a "a|b" phased genotype naming an allele index (0 == REF).
// Decoding fidelity beyond this shape is out of scope for the collaborator.
type Reader struct {
	samples []string
	records []Record
	mem     *Memory
}

// NewReader returns an unopened Reader.
func NewReader() *Reader { return &Reader{} }

// Open reads and parses the file at path (transparently gunzipping
// .gz-suffixed paths), grounded in the teacher's bufio.Scanner-over-a-
// large-buffer idiom for scanning flat genomic text formats.
func (r *Reader) Open(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(vgerr.ErrInvalidSource, "variant: opening %q: %v", path, err)
	}
	defer f.Close()

	var scanner *bufio.Scanner
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return errors.Wrapf(vgerr.ErrInvalidSource, "variant: gunzip %q: %v", path, err)
		}
		defer gz.Close()
		scanner = bufio.NewScanner(gz)
	} else {
		scanner = bufio.NewScanner(f)
	}
	scanner.Buffer(nil, 1024*1024*64)

	var contig string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line[0] == '#' {
			fields := strings.Split(line, "\t")
			if len(fields) > 5 {
				r.samples = fields[5:]
			}
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 5 {
			return errors.Wrapf(vgerr.ErrInvalidSource, "variant: malformed record line: %q", line)
		}
		contig = fields[0]
		pos1based, err := strconv.Atoi(fields[1])
		if err != nil {
			return errors.Wrapf(vgerr.ErrInvalidSource, "variant: bad position in %q", line)
		}
		ref := fields[2]
		alts := strings.Split(fields[3], ",")
		afStrs := strings.Split(fields[4], ",")
		freqs := make([]float64, len(afStrs))
		for i, s := range afStrs {
			freqs[i], err = strconv.ParseFloat(s, 64)
			if err != nil {
				return errors.Wrapf(vgerr.ErrInvalidSource, "variant: bad AF in %q", line)
			}
		}
		genotypes := make([][2]int, len(fields)-5)
		for i, gtStr := range fields[5:] {
			parts := strings.SplitN(gtStr, "|", 2)
			if len(parts) != 2 {
				return errors.Wrapf(vgerr.ErrInvalidSource, "variant: unphased or malformed genotype %q", gtStr)
			}
			a, err1 := strconv.Atoi(parts[0])
			b, err2 := strconv.Atoi(parts[1])
			if err1 != nil || err2 != nil {
				return errors.Wrapf(vgerr.ErrInvalidSource, "variant: bad genotype %q", gtStr)
			}
			genotypes[i] = [2]int{a, b}
		}
		r.records = append(r.records, Record{
			Pos: pos1based - 1, Ref: ref, Alts: alts, Freqs: freqs, Genotypes: genotypes,
		})
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(vgerr.ErrInvalidSource, "variant: reading %q: %v", path, err)
	}
	r.mem = NewMemory(contig, r.records, r.samples)
	return nil
}

// SetRegion delegates to the in-memory materialized record set.
func (r *Reader) SetRegion(contig string, lo, hi int) error {
	if r.mem == nil {
		return errors.Wrap(vgerr.ErrInvalidSource, "variant: SetRegion before Open")
	}
	return r.mem.SetRegion(contig, lo, hi)
}

// Next delegates to the in-memory materialized record set.
func (r *Reader) Next() bool { return r.mem.Next() }

// Pos delegates to the in-memory materialized record set.
func (r *Reader) Pos() int { return r.mem.Pos() }

// Ref delegates to the in-memory materialized record set.
func (r *Reader) Ref() string { return r.mem.Ref() }

// Alleles delegates to the in-memory materialized record set.
func (r *Reader) Alleles() []string { return r.mem.Alleles() }

// Frequencies delegates to the in-memory materialized record set.
func (r *Reader) Frequencies() []float64 { return r.mem.Frequencies() }

// AllelePop delegates to the in-memory materialized record set.
func (r *Reader) AllelePop(allele string) *popset.Population { return r.mem.AllelePop(allele) }

// Samples delegates to the in-memory materialized record set.
func (r *Reader) Samples() []string { return r.mem.Samples() }

// NumSamples delegates to the in-memory materialized record set.
func (r *Reader) NumSamples() int { return r.mem.NumSamples() }

// CreateIngroup delegates to the in-memory materialized record set.
func (r *Reader) CreateIngroup(percent int) { r.mem.CreateIngroup(percent) }

// IngroupStr delegates to the in-memory materialized record set.
func (r *Reader) IngroupStr() string { return r.mem.IngroupStr() }
