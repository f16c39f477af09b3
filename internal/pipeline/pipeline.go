// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fqscan-core/seq"
	"fqscan-core/seqio"
)

// Config controls the scanning pipeline.
type Config struct {
	Threads    int         // concurrent files; 0 means all CPUs
	BufferSize int         // initial parse buffer per file; 0 means the default
	Logger     *zap.Logger // nil disables logging
}

// Summary is the outcome of scanning one file. Err holds the parse or open
// error, if any; Records counts records handed to the visitor before it.
type Summary[T any] struct {
	File    string
	Format  seqio.Format
	Records int
	Value   T
	Err     error
}

// ForEachFile scans files with at most cfg.Threads in flight and calls emit
// once per file, in the order of files. Per-file errors are reported through
// Summary.Err and do not stop the other files. It returns the first error
// from emit, or the context error if ctx is canceled.
func ForEachFile[T any](
	ctx context.Context,
	cfg Config,
	files []string,
	newVisitor func(file string) Visitor[T],
	emit func(Summary[T]) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = runtime.NumCPU()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// One slot per file; every slot receives exactly one summary.
	slots := make([]chan Summary[T], len(files))
	for i := range slots {
		slots[i] = make(chan Summary[T], 1)
	}

	done := make(chan error, 1)
	go func() {
		for _, slot := range slots {
			s := <-slot
			if isCanceled(s.Err) {
				done <- s.Err
				return
			}
			if err := emit(s); err != nil {
				cancel()
				done <- err
				return
			}
		}
		done <- nil
	}()

	var g errgroup.Group
	g.SetLimit(cfg.Threads)
	for i, file := range files {
		i, file := i, file
		if err := ctx.Err(); err != nil {
			slots[i] <- Summary[T]{File: file, Err: err}
			continue
		}
		g.Go(func() error {
			log.Debug("scanning", zap.String("file", file))
			s := scan(ctx, cfg, file, newVisitor(file))
			log.Debug("scanned",
				zap.String("file", file),
				zap.String("format", string(s.Format)),
				zap.Int("records", s.Records))
			slots[i] <- s
			return nil
		})
	}
	_ = g.Wait()

	if err := <-done; err != nil {
		return err
	}
	return ctx.Err()
}

func scan[T any](ctx context.Context, cfg Config, file string, v Visitor[T]) Summary[T] {
	s := Summary[T]{File: file}
	s.Err = seqio.ParsePathCtx(ctx, file, seqio.Options{BufferSize: cfg.BufferSize},
		func(f seqio.Format) { s.Format = f },
		func(r seq.Record) error {
			s.Records++
			return v.Visit(r)
		})
	s.Value = v.Result()
	return s
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
