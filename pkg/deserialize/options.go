// pkg/deserialize/options.go
package deserialize

import (
	"fmt"
	"os"
)

// Options configures a deserialization run
type Options struct {
	// Serialized cache file (raw, or wrapped in zstd/xz)
	InputPath string

	// Deserialized output file; must not exist
	OutputPath string

	// Continuation cache files appended raw after the reconstructed stream
	// Default: none
	Append []string

	// TrimTail truncates the output at the end of the trusted prefix (the
	// contiguous run from offset 0), dropping parts written ahead of a gap
	// (e.g. a trailing MP4 moov atom). Nothing is kept when offset 0 is missing.
	// Continuation files are appended after trimming.
	// Default: false
	TrimTail bool

	// Checksum computes a BLAKE3-256 digest of the final output
	// Default: false
	Checksum bool

	// MaxSlices stops scanning after that many slices (0 = unlimited)
	// Default: 0
	MaxSlices int

	// TempDir receives the decompressed copy of zstd/xz inputs
	// Default: os.TempDir()
	TempDir string

	// DryRun scans and analyzes the input without creating any output
	DryRun bool

	// Verbose enables per-slice and per-part diagnostics
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		TempDir: os.TempDir(),
	}
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.InputPath == "" {
		return ErrInputRequired
	}
	if o.DryRun {
		if len(o.Append) > 0 || o.TrimTail || o.Checksum {
			return fmt.Errorf("%w: dry run cannot be combined with append, trim or checksum", ErrInvalidOptions)
		}
	} else if o.OutputPath == "" {
		return ErrOutputRequired
	}
	if o.MaxSlices < 0 {
		return fmt.Errorf("%w: max slices must be >= 0, got %d", ErrInvalidOptions, o.MaxSlices)
	}
	if o.TempDir == "" {
		o.TempDir = os.TempDir()
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
