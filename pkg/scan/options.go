// pkg/scan/options.go
package scan

import (
	"errors"
	"os"
)

// IgnoreFileName is read from the scanned directory root when present.
// It uses .gitignore syntax.
const IgnoreFileName = ".tgmediaignore"

// ErrDirRequired is returned when no directory is given
var ErrDirRequired = errors.New("directory path is required")

// ErrNotDir is returned when the scan root is not a directory
var ErrNotDir = errors.New("not a directory")

// Options configures a cache directory scan
type Options struct {
	// Dir is the cache directory to walk (e.g. Telegram Desktop's media_cache)
	Dir string

	// Exclude holds extra .gitignore-style patterns, relative to Dir
	Exclude []string

	// MaxSlices bounds the scan of each file (0 = unlimited)
	MaxSlices int

	// TempDir receives decompressed copies of zstd/xz files
	// Default: os.TempDir()
	TempDir string

	// Verbose enables per-file diagnostics
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.Dir == "" {
		return ErrDirRequired
	}
	if o.TempDir == "" {
		o.TempDir = os.TempDir()
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
