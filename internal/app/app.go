// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fqscan-core/seqerr"
	"fqscan/internal/cli"
	"fqscan/internal/cmdutil"
	"fqscan/internal/pipeline"
	"fqscan/internal/version"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitInvalid     = 1
	ExitUsage       = 2
	ExitIO          = 3
	ExitInterrupted = 130
)

// exitError carries a specific exit code. A nil err means the failure has
// already been reported.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error { return &exitError{code: ExitUsage, err: err} }

// state is shared by the command tree of one run.
type state struct {
	stdout, stderr io.Writer
	config         string
	opts           cli.Options
	log            *zap.Logger
}

func newRootCmd(st *state) *cobra.Command {
	root := &cobra.Command{
		Use:           "fqscan",
		Short:         "fqscan – streaming FASTQ/FASTA scanner",
		Long:          "fqscan – streaming FASTQ/FASTA scanner\n\nInputs may be plain, gzip, zstd or bzip2 compressed; '-' reads STDIN.",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&st.config, "config", "", "YAML config file (keys: buffer_size, threads, format, verbose, quiet)")
	pf.IntVarP(&st.opts.Threads, "threads", "t", 0, "files scanned concurrently (0 = all CPUs)")
	pf.IntVar(&st.opts.BufferSize, "buffer-size", 0, "initial parse buffer in bytes (0 = 64 KiB)")
	pf.BoolVar(&st.opts.Verbose, "verbose", false, "log per-file progress")
	pf.BoolVarP(&st.opts.Quiet, "quiet", "q", false, "suppress non-essential warnings")

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usageError(err) })
	root.AddCommand(
		newCountCmd(st),
		newStatsCmd(st),
		newConvertCmd(st),
		newValidateCmd(st),
	)
	return root
}

// prepare resolves positionals and the config file into st.opts, validates
// them and builds the logger. formatFlag names the subcommand's format flag
// ("" when it has none) and format is its value.
func (st *state) prepare(cmd *cobra.Command, args []string, formatFlag, format string, formats ...string) error {
	files, err := cli.ExpandPositionals(args)
	if err != nil {
		return usageError(err)
	}
	st.opts.Files = files
	st.opts.Format = format

	if st.config != "" {
		file := st.opts
		if err := cli.LoadConfig(st.config, &file); err != nil {
			return usageError(err)
		}
		flagFor := map[string]string{
			cli.KeyBufferSize: "buffer-size",
			cli.KeyThreads:    "threads",
			cli.KeyFormat:     formatFlag,
			cli.KeyVerbose:    "verbose",
			cli.KeyQuiet:      "quiet",
		}
		st.opts = cli.Merge(st.opts, file, func(key string) bool {
			name := flagFor[key]
			return name == "" || cmd.Flags().Changed(name)
		})
	}
	if err := st.opts.Validate(formats...); err != nil {
		return usageError(err)
	}
	st.log = cmdutil.NewLogger(st.stderr, st.opts.Verbose, st.opts.Quiet)
	return nil
}

func (st *state) pipelineConfig() pipeline.Config {
	return pipeline.Config{
		Threads:    st.opts.Threads,
		BufferSize: st.opts.BufferSize,
		Logger:     st.log,
	}
}

// exitCode maps an error from the command tree to the process exit status.
func exitCode(err error) int {
	var ee *exitError
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &ee):
		return ee.code
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ExitInterrupted
	}
	return inputExitCode(err)
}

// inputExitCode classifies a per-file failure. Anything that is neither a
// parse error nor a file error came from cobra's own argument handling.
func inputExitCode(err error) int {
	switch seqerr.KindOf(err) {
	case 0:
	case seqerr.IO:
		return ExitIO
	default:
		return ExitInvalid
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return ExitIO
	}
	return ExitUsage
}

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	st := &state{stdout: stdout, stderr: stderr, log: zap.NewNop()}
	root := newRootCmd(st)
	root.SetArgs(argv)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	_ = st.log.Sync()

	code := exitCode(err)
	if err != nil {
		var ee *exitError
		if !errors.As(err, &ee) || ee.err != nil {
			_, _ = fmt.Fprintf(stderr, "fqscan: %v\n", err)
		}
		if code == ExitUsage {
			_, _ = fmt.Fprintln(stderr, "Run 'fqscan --help' for usage.")
		}
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
