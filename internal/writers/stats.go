// internal/writers/stats.go
package writers

import (
	"bufio"
	"fmt"
	"io"

	"fqscan/internal/output"
	"fqscan/internal/pipeline"
	"fqscan/internal/stats"
	"fqscan/pkg/api"
)

// StartStatsWriter spins up a writer goroutine for per-file summaries.
// "json" buffers everything and writes one array at the end.
func StartStatsWriter(out io.Writer, format string, header bool, bufSize int) (chan<- pipeline.Summary[stats.Stats], <-chan error) {
	if format == output.FormatJSONL {
		return StartStatsJSONLWriter(out, bufSize)
	}
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan pipeline.Summary[stats.Stats], bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		switch format {
		case output.FormatTSV:
			err = writeRows[pipeline.Summary[stats.Stats]](out, in, header, output.StatsTSVHeader, func(s pipeline.Summary[stats.Stats]) string {
				return output.FormatStatsRowTSV(output.ToAPIStats(s))
			})
		case output.FormatJSON:
			var list []api.FileStatsV1
			for s := range in {
				list = append(list, output.ToAPIStats(s))
			}
			err = output.WriteStatsJSON(out, list)
		default:
			for range in {
			}
			err = fmt.Errorf("unknown stats format %q (no writer registered)", format)
		}
		errCh <- quiet(err)
	}()
	return in, errCh
}

// StartCountWriter writes one CountTSVHeader row per summary.
func StartCountWriter[T any](out io.Writer, header bool, bufSize int) (chan<- pipeline.Summary[T], <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan pipeline.Summary[T], bufSize)
	errCh := make(chan error, 1)
	go func() {
		errCh <- quiet(writeRows[pipeline.Summary[T]](out, in, header, output.CountTSVHeader, output.FormatCountRowTSV[T]))
	}()
	return in, errCh
}

func writeRows[T any](w io.Writer, in <-chan T, header bool, head string, row func(T) string) error {
	bw := bufio.NewWriter(w)
	var err error
	if header {
		_, err = fmt.Fprintln(bw, head)
	}
	for v := range in {
		if err != nil {
			continue
		}
		_, err = fmt.Fprintln(bw, row(v))
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}
