package verify

import "os"

// Options configures the verify operation
type Options struct {
	// InputPath is the serialized cache file (required)
	InputPath string

	// OutputPath is the deserialized file to check against it (required)
	OutputPath string

	// AllowTrimmed accepts parts that end past the deserialized file,
	// as produced by a deserialization with tail trimming
	AllowTrimmed bool

	// MaxSlices stops parsing after that many slices (0 = unlimited)
	MaxSlices int

	// TempDir receives decompressed copies of zstd/xz inputs
	// Default: os.TempDir()
	TempDir string

	// Verbose enables per-part reporting
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.InputPath == "" {
		return ErrInputRequired
	}
	if o.OutputPath == "" {
		return ErrOutputRequired
	}
	if o.MaxSlices < 0 {
		o.MaxSlices = 0
	}
	if o.TempDir == "" {
		o.TempDir = os.TempDir()
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
