// internal/pipeline/visitor.go
package pipeline

import "fqscan-core/seq"

// Visitor is the minimal capability the pipeline needs per file. Records
// passed to Visit alias the parse buffer and must be cloned to be kept.
type Visitor[T any] interface {
	Visit(seq.Record) error
	Result() T
}

// Nop visits nothing; Summary.Records is all a caller gets.
type Nop struct{}

func (Nop) Visit(seq.Record) error { return nil }
func (Nop) Result() struct{}       { return struct{}{} }

// NewNop is a visitor factory for ForEachFile.
func NewNop(string) Visitor[struct{}] { return Nop{} }
