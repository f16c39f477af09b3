// core/fasta/parser.go
package fasta

import (
	"bytes"
	"errors"

	"fqscan-core/seq"
	"fqscan-core/seqerr"
)

// Record is a zero-copy FASTA entry. Seq keeps interior line breaks of
// multi-line records; Sequence removes them.
type Record struct {
	ID  []byte
	Seq []byte
}

// Sequence converts r into the format-independent record.
func (r Record) Sequence() seq.Record {
	return seq.New(r.ID, r.Seq, nil)
}

// Parser walks one chunk of FASTA data. Same contract as the FASTQ parser:
// no I/O, no copies, cursor only moves forward.
type Parser struct {
	buf   []byte
	last  bool
	pos   int
	count int
}

// New checks that buf starts a FASTA record and returns a Parser over it.
func New(buf []byte, last bool) (*Parser, error) {
	if len(buf) > 0 && buf[0] != '>' {
		if !(last && (buf[0] == '\r' || buf[0] == '\n')) {
			return nil, headerError(buf)
		}
	}
	return FromBuffer(buf, last), nil
}

// FromBuffer returns a Parser without checking the first byte.
func FromBuffer(buf []byte, last bool) *Parser {
	return &Parser{buf: buf, last: last}
}

// Next extracts the record at the cursor. A record ends at the next '>'; on
// a non-final chunk a record with no following '>' is left for the refill.
func (p *Parser) Next() (rec Record, ok bool, err error) {
	buf := p.buf[p.pos:]
	if len(buf) == 0 || buf[0] == '\r' || buf[0] == '\n' {
		return Record{}, false, nil
	}
	if buf[0] != '>' {
		return Record{}, false, headerError(buf)
	}

	i := bytes.IndexByte(buf, '\n')
	if i < 0 {
		return Record{}, false, nil
	}
	idEnd := i + 1
	id := trimCR(buf[1 : idEnd-1])

	var seqEnd int
	if j := bytes.IndexByte(buf[idEnd:], '>'); j >= 0 {
		seqEnd = idEnd + j
	} else if p.last {
		seqEnd = len(buf)
	} else {
		return Record{}, false, nil
	}
	sq := buf[idEnd:seqEnd]
	if len(sq) > 0 && sq[len(sq)-1] == '\n' {
		sq = sq[:len(sq)-1]
	}
	sq = trimCR(sq)

	p.pos += seqEnd
	p.count++
	return Record{ID: id, Seq: sq}, true, nil
}

// Used is the number of bytes of the chunk fully consumed so far.
func (p *Parser) Used() int { return p.pos }

// Count is the number of records this Parser has produced.
func (p *Parser) Count() int { return p.count }

// EOF validates the unconsumed tail. It is a no-op unless the chunk is final.
func (p *Parser) EOF() error {
	err := CheckEnd(p.buf[p.pos:], p.last)
	var pe *seqerr.ParseError
	if errors.As(err, &pe) {
		pe.Records = p.count
	}
	return err
}

// CheckEnd reports whether tail, the unconsumed end of the final chunk, is
// only blank lines. On a non-final chunk an unconsumed tail is expected and
// nil is returned.
func CheckEnd(tail []byte, last bool) error {
	if !last {
		return nil
	}
	for _, c := range tail {
		if c != '\r' && c != '\n' {
			return seqerr.New(seqerr.Invalid, "File had extra data past end of records").
				WithContext(tail[:min(64, len(tail))])
		}
	}
	return nil
}

func headerError(buf []byte) error {
	return seqerr.New(seqerr.InvalidHeader, "FASTA record must start with '>'").
		WithContext(buf[:min(64, len(buf))])
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}
