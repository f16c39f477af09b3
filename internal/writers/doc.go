// Package writers turns parsed records and per-file summaries into
// serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (FASTQ/FASTA/JSONL/TSV).
//   • seqio stays parse-only; pipeline stays orchestration-only.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
