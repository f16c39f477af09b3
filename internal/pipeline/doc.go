// Package pipeline scans many sequence files concurrently, runs a Visitor
// over every record of each file, and hands per-file summaries back in
// input order.
//
// The only contract to implement is Visitor (Visit/Result).
// This keeps the pipeline swappable and testable.
package pipeline
