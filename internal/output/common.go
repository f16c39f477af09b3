package output

// Output format names accepted by --output and --to.
const (
	FormatTSV   = "tsv"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatFASTA = "fasta"
	FormatFASTQ = "fastq"
)

// StatsTSVHeader is the canonical header row for `stats` TSV output.
// Keep this as the single source of truth; all writers should use it.
const StatsTSVHeader = "file\tformat\trecords\tbases\tmin_len\tmax_len\tmean_len\tmean_qual\terror"

// CountTSVHeader is the header row for `count`.
const CountTSVHeader = "file\tformat\trecords"
