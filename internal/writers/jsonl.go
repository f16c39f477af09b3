// internal/writers/jsonl.go
package writers

import (
	"encoding/json"
	"io"

	"fqscan/internal/jsonlutil"
	"fqscan/internal/output"
	"fqscan/internal/pipeline"
	"fqscan/internal/stats"
)

// StartRecordJSONLWriter streams each record as one JSON line (v1).
func StartRecordJSONLWriter(out io.Writer, bufSize int) (chan<- output.Record, <-chan error) {
	return jsonlutil.Start[output.Record](out, bufSize,
		func(enc *json.Encoder, r output.Record) error {
			return enc.Encode(output.ToAPIRecord(r))
		},
		IsBrokenPipe,
	)
}

// StartStatsJSONLWriter streams each per-file summary as one JSON line (v1).
func StartStatsJSONLWriter(out io.Writer, bufSize int) (chan<- pipeline.Summary[stats.Stats], <-chan error) {
	return jsonlutil.Start[pipeline.Summary[stats.Stats]](out, bufSize,
		func(enc *json.Encoder, s pipeline.Summary[stats.Stats]) error {
			return enc.Encode(output.ToAPIStats(s))
		},
		IsBrokenPipe,
	)
}
