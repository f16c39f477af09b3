// core/seq/record.go
package seq

import "bytes"

// Record is the format-independent view of one sequence handed to callers.
// Fields may alias the chunk they were parsed from; they are only valid until
// the next refill unless copied with Clone.
type Record struct {
	ID   []byte
	Seq  []byte
	Qual []byte // nil for FASTA
}

// New builds a Record, normalising Seq by dropping embedded line breaks.
// The input is returned untouched when it holds none.
func New(id, seq, qual []byte) Record {
	return Record{ID: id, Seq: StripReturns(seq), Qual: qual}
}

// HasQual reports whether the record came from a format carrying qualities.
func (r Record) HasQual() bool { return r.Qual != nil }

// Clone deep-copies every field so the record can outlive its chunk.
func (r Record) Clone() Record {
	return Record{
		ID:   bytes.Clone(r.ID),
		Seq:  bytes.Clone(r.Seq),
		Qual: bytes.Clone(r.Qual),
	}
}

// StripReturns removes every '\r' and '\n' from b. It allocates only when
// there is something to remove.
func StripReturns(b []byte) []byte {
	if bytes.IndexByte(b, '\n') < 0 && bytes.IndexByte(b, '\r') < 0 {
		return b
	}
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c != '\n' && c != '\r' {
			out = append(out, c)
		}
	}
	return out
}

// Name is the first whitespace-delimited token of the header.
func (r Record) Name() []byte {
	id := bytes.TrimSpace(r.ID)
	if i := bytes.IndexAny(id, " \t"); i >= 0 {
		return id[:i]
	}
	return id
}
