// internal/output/record.go
package output

import (
	"errors"
	"fmt"
	"io"

	"fqscan-core/seq"
	"fqscan/pkg/api"
)

// ErrNoQuality is returned when a record without qualities is written as FASTQ.
var ErrNoQuality = errors.New("record has no quality scores")

// Record is a parsed record tagged with the file it came from.
type Record struct {
	seq.Record
	SourceFile string
}

// WriteFASTQ writes r as one four-line FASTQ record.
func WriteFASTQ(w io.Writer, r seq.Record) error {
	if !r.HasQual() {
		return fmt.Errorf("%w: %q", ErrNoQuality, r.ID)
	}
	_, err := fmt.Fprintf(w, "@%s\n%s\n+\n%s\n", r.ID, r.Seq, r.Qual)
	return err
}

// WriteFASTA writes r as a header line and a single sequence line.
func WriteFASTA(w io.Writer, r seq.Record) error {
	_, err := fmt.Fprintf(w, ">%s\n%s\n", r.ID, r.Seq)
	return err
}

// ToAPIRecord converts a record to the stable wire schema (v1).
func ToAPIRecord(r Record) api.RecordV1 {
	return api.RecordV1{
		ID:         string(r.ID),
		Name:       string(r.Name()),
		Seq:        string(r.Seq),
		Qual:       string(r.Qual),
		SourceFile: r.SourceFile,
	}
}
