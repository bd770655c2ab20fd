// pkg/deserialize/result.go
package deserialize

import (
	"fmt"
	"strings"

	"github.com/creativeyann17/tgmedia/pkg/tgmedia"
)

// Result contains statistics about a deserialization run
type Result struct {
	InputPath  string
	OutputPath string

	// InputFormat is RAW, ZSTD or XZ
	InputFormat string

	// InputSize is the size of the serialized stream after decompression
	InputSize uint64

	// Scan holds the parts in discovery order and why scanning stopped
	Scan *Scan

	// Report is the contiguity summary of the ordered parts
	Report Report

	// Gaps lists destination ranges no part covers
	Gaps []Gap

	// Write statistics (zero for dry runs)
	PartsWritten  int
	BytesWritten  uint64
	TrimmedBytes  uint64
	Segments      int
	AppendedBytes uint64
	OutputSize    uint64

	// Checksum is the hex BLAKE3-256 digest of the output, when requested
	Checksum string

	DryRun bool
}

// PartsFound returns the number of parts the scan admitted
func (r *Result) PartsFound() int {
	if r.Scan == nil {
		return 0
	}
	return len(r.Scan.Parts)
}

// Success returns true if every admitted part was written
func (r *Result) Success() bool {
	return r.DryRun || r.PartsWritten == r.PartsFound()
}

// Summary returns a human-readable summary of the run
func (r *Result) Summary() string {
	var sb strings.Builder

	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "  Input:             %s [%s, %s]\n", r.InputPath, r.InputFormat, tgmedia.FormatSize(r.InputSize))
	if r.Scan != nil {
		fmt.Fprintf(&sb, "  Slices parsed:     %d\n", r.Scan.Slices)
		fmt.Fprintf(&sb, "  Parts found:       %d\n", len(r.Scan.Parts))
		fmt.Fprintf(&sb, "  Stopped on:        %s at %d (%d trailing bytes ignored)\n",
			r.Scan.Stop, r.Scan.StopOffset, r.Scan.Remaining)
	}
	if r.Report.Parts > 0 {
		fmt.Fprintf(&sb, "  Stream size:       %s\n", tgmedia.FormatSize(r.Report.TotalSize))
		fmt.Fprintf(&sb, "  Contiguous prefix: %s (%d bytes)\n",
			tgmedia.FormatSize(r.Report.Trusted()), r.Report.Trusted())
		if len(r.Gaps) > 0 {
			fmt.Fprintf(&sb, "  Gaps:              %d (first at %d, %d bytes)\n",
				len(r.Gaps), r.Gaps[0].Start, r.Gaps[0].Len())
		} else if r.Report.Contiguous() {
			sb.WriteString("  Gaps:              none\n")
		}
	}

	if r.DryRun {
		sb.WriteString("\nDry run complete - no data written.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "  Output:            %s\n", r.OutputPath)
	fmt.Fprintf(&sb, "  Parts written:     %d / %d\n", r.PartsWritten, r.PartsFound())
	fmt.Fprintf(&sb, "  Bytes written:     %s\n", tgmedia.FormatSize(r.BytesWritten))
	if r.TrimmedBytes > 0 {
		fmt.Fprintf(&sb, "  Trimmed tail:      %s\n", tgmedia.FormatSize(r.TrimmedBytes))
	}
	if r.Segments > 0 {
		fmt.Fprintf(&sb, "  Appended:          %d segments, %s\n", r.Segments, tgmedia.FormatSize(r.AppendedBytes))
	}
	fmt.Fprintf(&sb, "  Output size:       %s\n", tgmedia.FormatSize(r.OutputSize))
	if r.Checksum != "" {
		fmt.Fprintf(&sb, "  BLAKE3:            %s\n", r.Checksum)
	}
	return sb.String()
}
