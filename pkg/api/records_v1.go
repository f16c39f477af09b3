// pkg/api/records_v1.go
package api

// RecordV1 is the stable JSON/JSONL schema for one sequence record.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RecordV1 struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Seq        string `json:"seq"`
	Qual       string `json:"qual,omitempty"`
	SourceFile string `json:"source_file,omitempty"`
}

// FileStatsV1 is the stable schema for one per-file summary.
type FileStatsV1 struct {
	File     string   `json:"file"`
	Format   string   `json:"format,omitempty"` // "FASTA" | "FASTQ"
	Records  int      `json:"records"`
	Bases    int64    `json:"bases"`
	MinLen   int      `json:"min_len"`
	MaxLen   int      `json:"max_len"`
	MeanLen  float64  `json:"mean_len"`
	MeanQual *float64 `json:"mean_qual,omitempty"`
	Error    string   `json:"error,omitempty"`
}
