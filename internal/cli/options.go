// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Config keys; also the names Merge asks about.
const (
	KeyBufferSize = "buffer_size"
	KeyThreads    = "threads"
	KeyFormat     = "format"
	KeyVerbose    = "verbose"
	KeyQuiet      = "quiet"
)

// Options holds the settings shared by every subcommand.
type Options struct {
	// Performance
	BufferSize int `yaml:"buffer_size"` // initial parse buffer in bytes (0 = default)
	Threads    int `yaml:"threads"`     // files scanned at once (0 = all CPUs)

	// Output
	Format string `yaml:"format"` // per-subcommand output format

	// Logging
	Verbose bool `yaml:"verbose"`
	Quiet   bool `yaml:"quiet"`

	Files []string `yaml:"-"`
}

// LoadConfig decodes the YAML file at path on top of dst. Keys absent from
// the file leave dst untouched; unknown keys are an error.
func LoadConfig(path string, dst *Options) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil // empty file
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

// Merge returns flags with every setting the user did not set on the command
// line taken from file. changed reports, by config key, whether the matching
// flag was given explicitly.
func Merge(flags, file Options, changed func(key string) bool) Options {
	out := flags
	if !changed(KeyBufferSize) {
		out.BufferSize = file.BufferSize
	}
	if !changed(KeyThreads) {
		out.Threads = file.Threads
	}
	if !changed(KeyFormat) && file.Format != "" {
		out.Format = file.Format
	}
	if !changed(KeyVerbose) {
		out.Verbose = file.Verbose
	}
	if !changed(KeyQuiet) {
		out.Quiet = file.Quiet
	}
	return out
}

// Validate checks o. formats lists the output formats the subcommand accepts;
// an empty list skips the format check.
func (o Options) Validate(formats ...string) error {
	if len(o.Files) == 0 {
		return errors.New("at least one input file is required")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.BufferSize < 0 {
		return errors.New("--buffer-size must be ≥ 0")
	}
	if o.Verbose && o.Quiet {
		return errors.New("--verbose conflicts with --quiet")
	}
	if len(formats) > 0 && !slices.Contains(formats, o.Format) {
		return fmt.Errorf("invalid output format %q (want one of %v)", o.Format, formats)
	}
	return nil
}
