// internal/cmdutil/run.go
package cmdutil

import (
	"context"

	"go.uber.org/zap"

	"fqscan/internal/pipeline"
)

// RunFiles runs the shared pipeline over files and streams each summary via
// send, in input order. Files that fail to parse are logged and counted, not
// fatal; it returns the number of failed files and the first error from
// send or cancellation.
func RunFiles[T any](
	ctx context.Context,
	cfg pipeline.Config,
	files []string,
	newVisitor func(file string) pipeline.Visitor[T],
	send func(pipeline.Summary[T]) error,
) (int, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	failed := 0
	err := pipeline.ForEachFile(ctx, cfg, files, newVisitor, func(s pipeline.Summary[T]) error {
		if s.Err != nil {
			failed++
			log.Warn("parse failed",
				zap.String("file", s.File),
				zap.Int("records", s.Records),
				zap.Error(s.Err))
		}
		return send(s)
	})
	return failed, err
}
