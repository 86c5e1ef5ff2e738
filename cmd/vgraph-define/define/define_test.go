package define_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vargraph/vgraph/cmd/vgraph-define/define"
	"github.com/vargraph/vgraph/gdef"
)

func writeVCF(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "calls.vcf")
	content := "#CHROM\tPOS\tREF\tALT\tAF\ts1\ts2\ts3\n" +
		"x\t4\tA\tC\t0.6,0.4\t0|1\t0|0\t1|1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunWritesGDEFToFile(t *testing.T) {
	dir := t.TempDir()
	vcfPath := writeVCF(t, dir)
	outPath := filepath.Join(dir, "out.gdef")

	opts := define.DefaultOpts
	opts.Ref = "ref.fa"
	opts.VCF = vcfPath
	opts.Region = "x:0-10"
	opts.Defs = "sub1=2"
	opts.Out = outPath

	require.NoError(t, define.Run(opts))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "@gdef\n"))

	doc, err := gdef.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Contains(t, doc.Labels, "B/sub1")
}

func TestRunFailsOnMissingVCF(t *testing.T) {
	opts := define.DefaultOpts
	opts.Ref = "ref.fa"
	opts.VCF = "/nonexistent/calls.vcf"
	opts.Out = filepath.Join(t.TempDir(), "out.gdef")

	assert.Error(t, define.Run(opts))
}
