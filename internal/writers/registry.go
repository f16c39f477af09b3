// internal/writers/registry.go
package writers

import (
	"bufio"
	"fmt"
	"io"

	"fqscan-core/seq"
	"fqscan/internal/output"
)

// RecordWriters maps a format name to a streaming record writer. The writer
// drains in and returns the first write error.
var RecordWriters = map[string]func(w io.Writer, in <-chan output.Record) error{}

// RegisterRecord adds a record format (idempotent last-wins).
func RegisterRecord(format string, fn func(io.Writer, <-chan output.Record) error) {
	RecordWriters[format] = fn
}

func init() {
	RegisterRecord(output.FormatFASTQ, streamText(output.WriteFASTQ))
	RegisterRecord(output.FormatFASTA, streamText(output.WriteFASTA))
}

// StartRecordWriter spins up a writer goroutine for records in format.
// An unknown format is reported on the error channel once in is closed.
func StartRecordWriter(out io.Writer, format string, bufSize int) (chan<- output.Record, <-chan error) {
	if format == output.FormatJSONL {
		return StartRecordJSONLWriter(out, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan output.Record, bufSize)
	errCh := make(chan error, 1)

	go func() {
		fn, ok := RecordWriters[format]
		if !ok {
			for range in {
			}
			errCh <- fmt.Errorf("unknown record format %q (no writer registered)", format)
			return
		}
		errCh <- fn(out, in)
	}()
	return in, errCh
}

// streamText adapts a per-record formatter into a buffered stream writer.
// After the first error the rest of in is drained so senders never block.
func streamText(write func(io.Writer, seq.Record) error) func(io.Writer, <-chan output.Record) error {
	return func(w io.Writer, in <-chan output.Record) error {
		bw := bufio.NewWriterSize(w, 64<<10)
		var err error
		for r := range in {
			if err != nil {
				continue
			}
			err = write(bw, r.Record)
		}
		if err != nil {
			return quiet(err)
		}
		return quiet(bw.Flush())
	}
}
