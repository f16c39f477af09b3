// internal/app/commands.go
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fqscan-core/seqio"
	"fqscan/internal/cmdutil"
	"fqscan/internal/output"
	"fqscan/internal/pipeline"
	"fqscan/internal/stats"
	"fqscan/internal/writers"
)

const writerBuf = 64

func newCountCmd(st *state) *cobra.Command {
	var noHeader bool
	cmd := &cobra.Command{
		Use:   "count FILE...",
		Short: "Count records per file",
		Example: `  fqscan count reads_1.fq.gz reads_2.fq.gz
  zcat reads.fq.gz | fqscan count -`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.prepare(cmd, args, "", ""); err != nil {
				return err
			}
			in, done := writers.StartCountWriter[struct{}](st.stdout, !noHeader, writerBuf)
			return runScan(cmd.Context(), st, pipeline.NewNop, in, done)
		},
	}
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "suppress header line")
	return cmd
}

func newStatsCmd(st *state) *cobra.Command {
	var (
		format   string
		noHeader bool
	)
	cmd := &cobra.Command{
		Use:     "stats FILE...",
		Short:   "Summarise records, bases, lengths and quality per file",
		Example: `  fqscan stats -o jsonl run1/*.fastq.zst`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.prepare(cmd, args, "output", format,
				output.FormatTSV, output.FormatJSON, output.FormatJSONL); err != nil {
				return err
			}
			in, done := writers.StartStatsWriter(st.stdout, st.opts.Format, !noHeader, writerBuf)
			newStats := func(string) pipeline.Visitor[stats.Stats] { return &stats.Stats{} }
			return runScan(cmd.Context(), st, newStats, in, done)
		},
	}
	cmd.Flags().StringVarP(&format, "output", "o", output.FormatTSV, "output format: tsv | json | jsonl")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "suppress header line in TSV")
	return cmd
}

// runScan feeds per-file summaries from the pipeline into a writer. Parse
// failures are logged by RunFiles and decide the exit code once every file
// has been written.
func runScan[T any](
	ctx context.Context,
	st *state,
	newVisitor func(string) pipeline.Visitor[T],
	in chan<- pipeline.Summary[T],
	done <-chan error,
) error {
	var firstErr error
	_, err := cmdutil.RunFiles(ctx, st.pipelineConfig(), st.opts.Files, newVisitor,
		func(s pipeline.Summary[T]) error {
			if s.Err != nil && firstErr == nil {
				firstErr = s.Err
			}
			in <- s
			return nil
		})
	close(in)
	werr := <-done

	switch {
	case err != nil:
		return err
	case werr != nil:
		return &exitError{code: ExitIO, err: werr}
	case firstErr != nil:
		return &exitError{code: inputExitCode(firstErr)}
	}
	return nil
}

func newValidateCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Parse files fully and report the first error in each",
		Long: `Parse files fully and report the first error in each.

Prints "FILE: ok" for a well-formed file and the classified error otherwise.
Exits 1 if any file is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.prepare(cmd, args, "", ""); err != nil {
				return err
			}
			bw := bufio.NewWriter(st.stdout)
			var firstErr error
			err := pipeline.ForEachFile(cmd.Context(), st.pipelineConfig(), st.opts.Files, pipeline.NewNop,
				func(s pipeline.Summary[struct{}]) error {
					if s.Err == nil {
						_, err := fmt.Fprintf(bw, "%s: ok\n", s.File)
						return err
					}
					if firstErr == nil {
						firstErr = s.Err
					}
					_, err := fmt.Fprintln(bw, s.Err)
					return err
				})
			if ferr := bw.Flush(); err == nil && ferr != nil && !writers.IsBrokenPipe(ferr) {
				err = &exitError{code: ExitIO, err: ferr}
			}
			if err != nil {
				if writers.IsBrokenPipe(err) {
					return nil
				}
				if errors.Is(err, context.Canceled) {
					return err
				}
				return &exitError{code: ExitIO, err: err}
			}
			if firstErr != nil {
				return &exitError{code: inputExitCode(firstErr)}
			}
			return nil
		},
	}
}

func newConvertCmd(st *state) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Re-emit records as FASTQ, FASTA or JSONL",
		Long: `Re-emit records as FASTQ, FASTA or JSONL.

Files are converted one after another, in the order given. FASTA input has
no qualities and cannot be written as FASTQ.`,
		Example: `  fqscan convert --to fasta reads.fq.gz > reads.fa`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := st.prepare(cmd, args, "to", format,
				output.FormatFASTQ, output.FormatFASTA, output.FormatJSONL); err != nil {
				return err
			}
			return runConvert(cmd.Context(), st)
		},
	}
	cmd.Flags().StringVar(&format, "to", output.FormatFASTQ, "output format: fastq | fasta | jsonl")
	return cmd
}

func runConvert(ctx context.Context, st *state) error {
	in, done := writers.StartRecordWriter(st.stdout, st.opts.Format, writerBuf)
	opts := seqio.Options{BufferSize: st.opts.BufferSize}

	var perr error
	for _, file := range st.opts.Files {
		recs, errc, err := seqio.StreamPathCtx(ctx, file, opts)
		if err != nil {
			perr = err
			break
		}
		n := 0
		for r := range recs {
			in <- output.Record{Record: r, SourceFile: file}
			n++
		}
		if err := <-errc; err != nil {
			perr = err
			break
		}
		st.log.Debug("converted", zap.String("file", file), zap.Int("records", n))
	}
	close(in)
	werr := <-done

	switch {
	case perr != nil:
		return perr
	case errors.Is(werr, output.ErrNoQuality):
		return usageError(werr)
	case werr != nil:
		return &exitError{code: ExitIO, err: werr}
	}
	return nil
}
