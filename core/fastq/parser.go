// core/fastq/parser.go
package fastq

import (
	"bytes"
	"errors"

	"fqscan-core/fasta"
	"fqscan-core/seq"
	"fqscan-core/seqerr"
)

const (
	msgHeader   = "FASTQ record must start with '@'"
	msgDiffered = "Sequence and quality lengths differed"
	msgShort    = "Quality length was shorter than expected"
)

// Record is a zero-copy FASTQ entry. Every field aliases the chunk passed to
// New/FromBuffer and must not be used after that chunk is refilled.
type Record struct {
	ID   []byte
	Seq  []byte
	ID2  []byte
	Qual []byte
}

// Sequence converts r into the format-independent record. No copy is made.
func (r Record) Sequence() seq.Record {
	return seq.Record{ID: r.ID, Seq: r.Seq, Qual: r.Qual}
}

// Parser walks one chunk of FASTQ data. It never reads, allocates or blocks;
// the owner of the chunk refills it and builds a new Parser over the result.
// A Parser is not safe for concurrent use.
type Parser struct {
	buf   []byte
	last  bool
	pos   int
	count int
}

// New checks that buf starts a FASTQ record and returns a Parser over it.
// On the final chunk a leading '\r' or '\n' is tolerated (blank lines at
// end of file).
func New(buf []byte, last bool) (*Parser, error) {
	if len(buf) > 0 && buf[0] != '@' {
		if !(last && (buf[0] == '\r' || buf[0] == '\n')) {
			return nil, seqerr.New(seqerr.InvalidHeader, msgHeader).
				WithContext(buf[:min(64, len(buf))])
		}
	}
	return FromBuffer(buf, last), nil
}

// FromBuffer returns a Parser without checking the first byte. The driving
// loop uses it for every refill after the first, where the header has
// already been validated.
func FromBuffer(buf []byte, last bool) *Parser {
	return &Parser{buf: buf, last: last}
}

// Next extracts the record at the cursor.
//
// ok is false with a nil error when no complete record is available: the
// chunk is exhausted, holds only blank lines, or (when not final) ends
// mid-record. Errors are fatal for the stream; the cursor stays at the start
// of the offending record.
func (p *Parser) Next() (rec Record, ok bool, err error) {
	buf := p.buf[p.pos:]
	if len(buf) == 0 || buf[0] == '\n' || buf[0] == '\r' {
		return Record{}, false, nil
	}
	if buf[0] != '@' {
		return Record{}, false, seqerr.New(seqerr.InvalidHeader, msgHeader).
			WithContext(buf[:min(64, len(buf))])
	}

	i := bytes.IndexByte(buf, '\n')
	if i < 0 {
		return Record{}, false, nil
	}
	idEnd := i + 1
	id := trimCR(buf[1 : idEnd-1])

	// One pass finds whichever of '\n' or '+' comes first.
	i = bytes.IndexAny(buf[idEnd:], "\n+")
	if i < 0 {
		return Record{}, false, nil
	}
	seqEnd := idEnd + i + 1
	sq := buf[idEnd : seqEnd-1]

	i = bytes.IndexByte(buf[seqEnd:], '\n')
	if i < 0 {
		return Record{}, false, nil
	}
	id2End := seqEnd + i + 1
	id2 := buf[seqEnd : id2End-1]

	// Quality has exactly len(sq) bytes (sq still holds any '\r'), so its
	// end is computed rather than scanned for.
	windows := len(sq) > 0 && sq[len(sq)-1] == '\r'
	qualEnd := id2End + len(sq) + 1
	var qual []byte
	used := qualEnd
	if qualEnd > len(buf) {
		if !p.last {
			return Record{}, false, nil
		}
		// Final record without a trailing "\n" or "\r\n".
		short := qualEnd - len(buf)
		if short != 1 && !(short == 2 && windows) {
			return Record{}, false, invalidRecord(msgDiffered, id)
		}
		qual = buf[id2End:]
		used = len(buf)
	} else {
		if (qualEnd+1 < len(buf) && !isRecordBoundary(buf[qualEnd])) || buf[qualEnd-1] != '\n' {
			return Record{}, false, invalidRecord(msgDiffered, id)
		}
		qual = buf[id2End : qualEnd-1]
	}

	sq = trimCR(sq)
	qual = trimCR(qual)
	if len(qual) > 0 && qual[len(qual)-1] == '\n' {
		// One byte short, but the terminator still sits at the computed end.
		return Record{}, false, invalidRecord(msgShort, id)
	}
	if len(qual) != len(sq) {
		return Record{}, false, invalidRecord(msgDiffered, id)
	}
	id2 = trimCR(bytes.TrimPrefix(id2, []byte{'+'}))

	p.pos += used
	p.count++
	return Record{ID: id, Seq: sq, ID2: id2, Qual: qual}, true, nil
}

// Used is the number of bytes of the chunk fully consumed so far.
func (p *Parser) Used() int { return p.pos }

// Count is the number of records this Parser has produced.
func (p *Parser) Count() int { return p.count }

// EOF validates the unconsumed tail. It is a no-op unless the chunk is final.
func (p *Parser) EOF() error {
	err := fasta.CheckEnd(p.buf[p.pos:], p.last)
	var pe *seqerr.ParseError
	if errors.As(err, &pe) {
		pe.Records = p.count
	}
	return err
}

func invalidRecord(msg string, id []byte) *seqerr.ParseError {
	return seqerr.New(seqerr.InvalidRecord, msg).WithContext(id)
}

func isRecordBoundary(c byte) bool {
	return c == '@' || c == '\r' || c == '\n'
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}
