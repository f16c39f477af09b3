// core/buffer/buffer.go
package buffer

import (
	"errors"
	"io"
)

// DefaultSize is the initial chunk capacity.
const DefaultSize = 64 * 1024

// Buffer owns the chunk handed to the record parsers. Bytes returned by
// Bytes stay valid and unchanged until the next Refill.
type Buffer struct {
	r    io.Reader
	buf  []byte
	last bool
}

// New fills a buffer of the given capacity from r, starting with prefix
// (bytes already read from r, e.g. while sniffing the format).
func New(r io.Reader, prefix []byte, size int) (*Buffer, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if size < len(prefix) {
		size = len(prefix)
	}
	b := &Buffer{r: r, buf: make([]byte, len(prefix), size)}
	copy(b.buf, prefix)
	if err := b.fill(); err != nil {
		return nil, err
	}
	return b, nil
}

// Bytes is the current chunk.
func (b *Buffer) Bytes() []byte { return b.buf }

// Last reports whether the reader is exhausted, i.e. Bytes is the final chunk.
func (b *Buffer) Last() bool { return b.last }

// Refill drops the first used bytes, moves the remainder to the front and
// reads until the buffer is full or the reader is exhausted. When nothing
// was used and the buffer is full, a record is larger than the buffer and
// the capacity is doubled.
func (b *Buffer) Refill(used int) error {
	if used < 0 || used > len(b.buf) {
		return errors.New("buffer: used out of range")
	}
	if b.last {
		b.buf = b.buf[used:]
		return nil
	}
	if used == 0 && len(b.buf) == cap(b.buf) {
		grown := make([]byte, len(b.buf), 2*cap(b.buf))
		copy(grown, b.buf)
		b.buf = grown
	} else {
		n := copy(b.buf[:cap(b.buf)], b.buf[used:])
		b.buf = b.buf[:n]
	}
	return b.fill()
}

// maxEmptyReads bounds consecutive (0, nil) reads, as bufio does.
const maxEmptyReads = 100

func (b *Buffer) fill() error {
	empty := 0
	for len(b.buf) < cap(b.buf) {
		n, err := b.r.Read(b.buf[len(b.buf):cap(b.buf)])
		b.buf = b.buf[:len(b.buf)+n]
		if errors.Is(err, io.EOF) {
			b.last = true
			return nil
		}
		if err != nil {
			return err
		}
		if n == 0 {
			if empty++; empty >= maxEmptyReads {
				return io.ErrNoProgress
			}
			continue
		}
		empty = 0
	}
	return nil
}
