// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fqscan/internal/app"
	"fqscan/pkg/api"
)

const fq = "@r1 lane=1\nACGT\n+\nIIII\n@r2\nAC\n+\n++\n"

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code = app.Run(args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestCount_EndToEnd(t *testing.T) {
	a := write(t, "a.fq", fq)
	b := write(t, "b.fa", ">x\nAC\nGT\n>y\nG\n")

	code, out, errOut := run(t, "count", "--threads", "2", a, b)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "file\tformat\trecords\n"+a+"\tFASTQ\t2\n"+b+"\tFASTA\t2\n", out)
}

func TestCount_Gzip(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, _ = zw.Write([]byte(fq))
	require.NoError(t, zw.Close())
	fn := write(t, "a.fq.gz", buf.String())

	code, out, errOut := run(t, "count", "--no-header", fn)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, fn+"\tFASTQ\t2\n", out)
}

func TestStats_JSONL(t *testing.T) {
	a := write(t, "a.fq", fq)
	code, out, errOut := run(t, "stats", "-o", "jsonl", a)
	require.Equal(t, 0, code, errOut)

	var v api.FileStatsV1
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &v))
	assert.Equal(t, 2, v.Records)
	assert.EqualValues(t, 6, v.Bases)
	assert.Equal(t, 2, v.MinLen)
	assert.Equal(t, 4, v.MaxLen)
	require.NotNil(t, v.MeanQual)
	assert.InDelta(t, 30.0, *v.MeanQual, 1e-9)
}

func TestStats_InvalidFileExit1(t *testing.T) {
	good := write(t, "good.fq", fq)
	bad := write(t, "bad.fq", "@r1\nACGT\n+\nII\n")

	code, out, errOut := run(t, "stats", good, bad)
	assert.Equal(t, 1, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "Sequence and quality lengths differed")
	assert.Contains(t, errOut, "parse failed")
}

func TestValidate(t *testing.T) {
	good := write(t, "good.fq", fq)
	tail := write(t, "tail.fq", fq+"@r3\nAC")
	junk := write(t, "junk.fq", fq+"junk\n")

	code, out, _ := run(t, "validate", good)
	assert.Equal(t, 0, code)
	assert.Equal(t, good+": ok\n", out)

	code, out, _ = run(t, "validate", good, tail)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, good+": ok\n")
	assert.Contains(t, out, "File had extra data past end of records")
	assert.Contains(t, out, "after 2 records")

	code, out, _ = run(t, "validate", junk)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "FASTQ record must start with '@'")
}

func TestValidate_MissingFileExit3(t *testing.T) {
	code, out, _ := run(t, "validate", filepath.Join(t.TempDir(), "nope.fq"))
	assert.Equal(t, 3, code)
	assert.Contains(t, out, "no such file")
}

func TestConvert_FASTQToFASTA(t *testing.T) {
	a := write(t, "a.fq", strings.ReplaceAll(fq, "\n", "\r\n"))
	code, out, errOut := run(t, "convert", "--to", "fasta", a)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, ">r1 lane=1\nACGT\n>r2\nAC\n", out)
}

func TestConvert_JSONLKeepsSourceFile(t *testing.T) {
	a := write(t, "a.fq", fq)
	code, out, errOut := run(t, "convert", "--to", "jsonl", a)
	require.Equal(t, 0, code, errOut)
	var v api.RecordV1
	require.NoError(t, json.Unmarshal([]byte(strings.Split(out, "\n")[0]), &v))
	assert.Equal(t, api.RecordV1{ID: "r1 lane=1", Name: "r1", Seq: "ACGT", Qual: "IIII", SourceFile: a}, v)
}

func TestConvert_FASTAToFASTQIsUsageError(t *testing.T) {
	b := write(t, "b.fa", ">x\nAC\n")
	code, _, errOut := run(t, "convert", "--to", "fastq", b)
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "no quality")
}

func TestUsageErrors(t *testing.T) {
	a := write(t, "a.fq", fq)
	for name, args := range map[string][]string{
		"no files":      {"count"},
		"unknown flag":  {"count", "--bogus", a},
		"bad format":    {"stats", "-o", "xml", a},
		"bad threads":   {"count", "--threads", "-1", a},
		"unknown cmd":   {"frobnicate"},
		"empty glob":    {"count", filepath.Join(t.TempDir(), "*.fq")},
		"verbose+quiet": {"count", "--verbose", "--quiet", a},
	} {
		code, _, _ := run(t, args...)
		assert.Equal(t, 2, code, name)
	}
}

func TestConfigFile(t *testing.T) {
	a := write(t, "a.fq", fq)
	cfg := write(t, "fqscan.yaml", "format: jsonl\nthreads: 1\n")

	code, out, errOut := run(t, "stats", "--config", cfg, a)
	require.Equal(t, 0, code, errOut)
	assert.True(t, strings.HasPrefix(out, "{"), "config format should apply: %q", out)

	code, out, errOut = run(t, "stats", "--config", cfg, "-o", "tsv", a)
	require.Equal(t, 0, code, errOut)
	assert.True(t, strings.HasPrefix(out, "file\t"), "flag should override config: %q", out)

	bad := write(t, "bad.yaml", "chunk_size: 3\n")
	code, _, _ = run(t, "count", "--config", bad, a)
	assert.Equal(t, 2, code)
}

func TestVersion(t *testing.T) {
	code, out, _ := run(t, "--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "fqscan version")
}
