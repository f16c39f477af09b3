// core/seqio/path.go
package seqio

import (
	"context"
	"fmt"
	"io"
	"os"

	"fqscan-core/seq"
)

// OpenPath opens path for reading; "-" is stdin. Compression is detected
// from the content by the parse functions, not from the file name.
func OpenPath(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// ParsePathCtx opens path and runs ParseReaderCtx over it. Errors are
// prefixed with the path.
func ParsePathCtx(ctx context.Context, path string, opts Options, onType func(Format), onRecord func(seq.Record) error) error {
	rc, err := OpenPath(path)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := ParseReaderCtx(ctx, rc, opts, onType, onRecord); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// StreamPathCtx is the channel form of ParsePathCtx. Records are cloned
// since they outlive the chunk they were parsed from. The open error for a
// non-stdin path is returned immediately; later errors, including ctx
// cancellation, arrive on the error channel, which receives exactly one
// value (nil on success) after the record channel is closed.
func StreamPathCtx(ctx context.Context, path string, opts Options) (<-chan seq.Record, <-chan error, error) {
	if path != "-" {
		rc, err := OpenPath(path)
		if err != nil {
			return nil, nil, err
		}
		_ = rc.Close()
	}

	out := make(chan seq.Record, 64)
	errc := make(chan error, 1)
	go func() {
		err := ParsePathCtx(ctx, path, opts, nil, func(r seq.Record) error {
			select {
			case out <- r.Clone():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		close(out)
		errc <- err
	}()
	return out, errc, nil
}
