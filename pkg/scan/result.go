// pkg/scan/result.go
package scan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/creativeyann17/tgmedia/pkg/tgmedia"
)

// FileInfo describes one scanned file
type FileInfo struct {
	Path string // Relative to the scanned directory
	Size uint64

	// Format is RAW, ZSTD or XZ
	Format string

	Slices int
	Parts  int

	// StreamSize is the deserialized length; Trusted its contiguous prefix
	StreamSize uint64
	Trusted    uint64
	Gaps       int

	// Stop tells why the structural scan ended
	Stop string

	Error error
}

// Serialized reports whether the file parsed as a serialized cache
func (f FileInfo) Serialized() bool {
	return f.Error == nil && f.Parts > 0
}

// Result contains the outcome of a directory scan
type Result struct {
	Dir          string
	FilesTotal   int
	FilesSkipped int
	Files        []FileInfo
	Errors       []error
}

// SerializedFiles returns the files that parsed as serialized caches
func (r *Result) SerializedFiles() []FileInfo {
	var out []FileInfo
	for _, f := range r.Files {
		if f.Serialized() {
			out = append(out, f)
		}
	}
	return out
}

// Success returns true if every file could be inspected
func (r *Result) Success() bool {
	return len(r.Errors) == 0
}

// Summary returns a human-readable table of serialized files, largest stream first
func (r *Result) Summary() string {
	var sb strings.Builder

	files := r.SerializedFiles()
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].StreamSize > files[j].StreamSize
	})

	if len(files) > 0 {
		fmt.Fprintf(&sb, "%-40s %6s %6s %12s %12s %5s\n", "FILE", "SLICES", "PARTS", "STREAM", "CONTIGUOUS", "GAPS")
		for _, f := range files {
			fmt.Fprintf(&sb, "%-40s %6d %6d %12s %12s %5d\n",
				tgmedia.TruncateLeft(f.Path, 40), f.Slices, f.Parts,
				tgmedia.FormatSize(f.StreamSize), tgmedia.FormatSize(f.Trusted), f.Gaps)
		}
		sb.WriteString("\n")
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(&sb, "Completed with %d errors:\n", len(r.Errors))
		for _, e := range r.Errors {
			fmt.Fprintf(&sb, "  - %v\n", e)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "  Directory:        %s\n", r.Dir)
	fmt.Fprintf(&sb, "  Files inspected:  %d\n", r.FilesTotal)
	fmt.Fprintf(&sb, "  Files excluded:   %d\n", r.FilesSkipped)
	fmt.Fprintf(&sb, "  Serialized files: %d\n", len(files))
	return sb.String()
}
