// internal/output/stats.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"fqscan/internal/pipeline"
	"fqscan/internal/stats"
	"fqscan/pkg/api"
)

// ToAPIStats converts a per-file summary to the stable wire schema (v1).
func ToAPIStats(s pipeline.Summary[stats.Stats]) api.FileStatsV1 {
	v := api.FileStatsV1{
		File:    s.File,
		Format:  string(s.Format),
		Records: s.Value.Records,
		Bases:   s.Value.Bases,
		MinLen:  s.Value.MinLen,
		MaxLen:  s.Value.MaxLen,
		MeanLen: s.Value.MeanLen(),
	}
	if q, ok := s.Value.MeanQual(); ok {
		v.MeanQual = &q
	}
	if s.Err != nil {
		v.Error = s.Err.Error()
	}
	return v
}

// FormatStatsRowTSV returns one StatsTSVHeader row (no trailing newline).
func FormatStatsRowTSV(v api.FileStatsV1) string {
	q := ""
	if v.MeanQual != nil {
		q = strconv.FormatFloat(*v.MeanQual, 'f', 2, 64)
	}
	return fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\t%.2f\t%s\t%s",
		v.File, v.Format, v.Records, v.Bases, v.MinLen, v.MaxLen, v.MeanLen, q, v.Error)
}

// FormatCountRowTSV returns one CountTSVHeader row (no trailing newline).
func FormatCountRowTSV[T any](s pipeline.Summary[T]) string {
	return fmt.Sprintf("%s\t%s\t%d", s.File, s.Format, s.Records)
}

// WriteStatsJSON writes a single JSON array of v1 summaries (pretty-indented).
func WriteStatsJSON(w io.Writer, list []api.FileStatsV1) error {
	if list == nil {
		list = []api.FileStatsV1{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}
