package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"fqscan-core/seq"
	"fqscan-core/seqio"
	"fqscan/internal/pipeline"
	"fqscan/internal/stats"
)

func TestHeaders_Stable(t *testing.T) {
	const want = "file\tformat\trecords\tbases\tmin_len\tmax_len\tmean_len\tmean_qual\terror"
	if StatsTSVHeader != want {
		t.Fatalf("StatsTSVHeader changed:\n got:  %q\n want: %q", StatsTSVHeader, want)
	}
	if CountTSVHeader != "file\tformat\trecords" {
		t.Fatalf("CountTSVHeader changed: %q", CountTSVHeader)
	}
}

func TestFormats_Stable(t *testing.T) {
	if FormatTSV != "tsv" || FormatJSON != "json" || FormatJSONL != "jsonl" || FormatFASTA != "fasta" || FormatFASTQ != "fastq" {
		t.Fatalf("output format constants changed")
	}
}

func TestWriteFASTQ(t *testing.T) {
	var buf bytes.Buffer
	r := seq.Record{ID: []byte("r1 x"), Seq: []byte("ACGT"), Qual: []byte("IIII")}
	if err := WriteFASTQ(&buf, r); err != nil {
		t.Fatalf("fastq: %v", err)
	}
	if got := buf.String(); got != "@r1 x\nACGT\n+\nIIII\n" {
		t.Fatalf("unexpected FASTQ output: %q", got)
	}
}

func TestWriteFASTQ_NoQuality(t *testing.T) {
	err := WriteFASTQ(&bytes.Buffer{}, seq.Record{ID: []byte("x"), Seq: []byte("A")})
	if !errors.Is(err, ErrNoQuality) {
		t.Fatalf("want ErrNoQuality, got %v", err)
	}
}

func TestWriteFASTA(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFASTA(&buf, seq.Record{ID: []byte("s"), Seq: []byte("GG"), Qual: []byte("!!")}); err != nil {
		t.Fatalf("fasta: %v", err)
	}
	if buf.String() != ">s\nGG\n" {
		t.Fatalf("unexpected FASTA output: %q", buf.String())
	}
}

func TestToAPIRecord(t *testing.T) {
	v := ToAPIRecord(Record{
		Record:     seq.Record{ID: []byte("r1 desc"), Seq: []byte("AC"), Qual: []byte("II")},
		SourceFile: "a.fq",
	})
	if v.ID != "r1 desc" || v.Name != "r1" || v.Seq != "AC" || v.Qual != "II" || v.SourceFile != "a.fq" {
		t.Fatalf("unexpected record: %+v", v)
	}
}

func TestFormatStatsRowTSV(t *testing.T) {
	var st stats.Stats
	_ = st.Visit(seq.Record{ID: []byte("a"), Seq: []byte("ACGT"), Qual: []byte("IIII")})
	row := FormatStatsRowTSV(ToAPIStats(pipeline.Summary[stats.Stats]{
		File: "a.fq", Format: seqio.FASTQ, Records: 1, Value: st,
	}))
	if row != "a.fq\tFASTQ\t1\t4\t4\t4\t4.00\t40.00\t" {
		t.Fatalf("unexpected row: %q", row)
	}

	row = FormatStatsRowTSV(ToAPIStats(pipeline.Summary[stats.Stats]{
		File: "b.fa", Err: errors.New("boom"),
	}))
	if !strings.HasSuffix(row, "\t\tboom") {
		t.Fatalf("unexpected error row: %q", row)
	}
}

func TestWriteStatsJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStatsJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("want [], got %q", buf.String())
	}
}
