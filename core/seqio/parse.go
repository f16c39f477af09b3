// core/seqio/parse.go
package seqio

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"context"
	"errors"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"fqscan-core/buffer"
	"fqscan-core/fasta"
	"fqscan-core/fastq"
	"fqscan-core/seq"
	"fqscan-core/seqerr"
)

// Format is the record format detected for a stream.
type Format string

const (
	FASTA Format = "FASTA"
	FASTQ Format = "FASTQ"
)

// RecParser is what the driving loop needs from a format-specific parser
// built over one chunk.
type RecParser[T any] interface {
	Next() (T, bool, error)
	Used() int
	EOF() error
}

// Options tunes the driving loop.
type Options struct {
	BufferSize int // initial chunk capacity; 0 means buffer.DefaultSize
}

// maxNesting bounds recursive decompression (e.g. gzip inside zstd).
const maxNesting = 4

var (
	magicGzip  = []byte{0x1f, 0x8b}
	magicZstd  = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicBzip2 = []byte{'B', 'Z', 'h'}
)

// ParseReader reads r to the end, calling onType once with the detected
// format and onRecord for every record. Record fields alias an internal
// buffer and are only valid during the callback; use seq.Record.Clone to keep
// one. Processing stops at the first error from parsing or from onRecord.
func ParseReader(r io.Reader, onType func(Format), onRecord func(seq.Record) error) error {
	return ParseReaderCtx(context.Background(), r, Options{}, onType, onRecord)
}

// ParseBytes is ParseReader over an in-memory input.
func ParseBytes(data []byte, onType func(Format), onRecord func(seq.Record) error) error {
	return ParseReader(bytes.NewReader(data), onType, onRecord)
}

// ParseReaderCtx is ParseReader with cancellation, checked between chunks.
func ParseReaderCtx(ctx context.Context, r io.Reader, opts Options, onType func(Format), onRecord func(seq.Record) error) error {
	return parse(ctx, r, opts, onType, onRecord, 0)
}

func parse(ctx context.Context, r io.Reader, opts Options, onType func(Format), onRecord func(seq.Record) error, depth int) error {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(magicZstd))
	if len(head) == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return seqerr.Wrap(err)
		}
		return seqerr.New(seqerr.UnknownFormat, "Could not detect file type").WithContext([]byte("empty input"))
	}

	if depth < maxNesting {
		switch {
		case bytes.HasPrefix(head, magicGzip):
			zr, err := gzip.NewReader(br)
			if err != nil {
				return seqerr.Wrap(err)
			}
			defer zr.Close()
			return parse(ctx, zr, opts, onType, onRecord, depth+1)
		case bytes.HasPrefix(head, magicZstd):
			zr, err := zstd.NewReader(br)
			if err != nil {
				return seqerr.Wrap(err)
			}
			defer zr.Close()
			return parse(ctx, zr, opts, onType, onRecord, depth+1)
		case bytes.HasPrefix(head, magicBzip2):
			return parse(ctx, bzip2.NewReader(br), opts, onType, onRecord, depth+1)
		}
	}

	var format Format
	switch head[0] {
	case '>':
		format = FASTA
	case '@':
		format = FASTQ
	default:
		return seqerr.New(seqerr.UnknownFormat, "Could not detect file type").WithContext(head[:1])
	}
	if onType != nil {
		onType(format)
	}

	buf, err := buffer.New(br, nil, opts.BufferSize)
	if err != nil {
		return seqerr.Wrap(err)
	}
	if format == FASTA {
		return drive(ctx, buf, newFASTA, fasta.FromBuffer, fasta.Record.Sequence, onRecord)
	}
	return drive(ctx, buf, newFASTQ, fastq.FromBuffer, fastq.Record.Sequence, onRecord)
}

func newFASTA(b []byte, last bool) (*fasta.Parser, error) { return fasta.New(b, last) }
func newFASTQ(b []byte, last bool) (*fastq.Parser, error) { return fastq.New(b, last) }

// drive runs the chunk loop: parse what the chunk holds, refill by the bytes
// consumed, repeat until the final chunk, then validate its tail.
func drive[T any, P RecParser[T]](
	ctx context.Context,
	buf *buffer.Buffer,
	first func([]byte, bool) (P, error),
	next func([]byte, bool) P,
	conv func(T) seq.Record,
	onRecord func(seq.Record) error,
) error {
	count := 0
	p, err := first(buf.Bytes(), buf.Last())
	if err != nil {
		return withRecords(err, count)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		for {
			rec, ok, err := p.Next()
			if err != nil {
				return withRecords(err, count)
			}
			if !ok {
				break
			}
			count++
			if err := onRecord(conv(rec)); err != nil {
				return err
			}
		}
		if buf.Last() {
			return withRecords(p.EOF(), count)
		}
		if err := buf.Refill(p.Used()); err != nil {
			return seqerr.Wrap(err).WithRecords(count)
		}
		p = next(buf.Bytes(), buf.Last())
	}
}

func withRecords(err error, n int) error {
	var pe *seqerr.ParseError
	if errors.As(err, &pe) {
		pe.Records = n
	}
	return err
}
