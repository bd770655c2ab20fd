// pkg/verify/result.go
package verify

import (
	"fmt"
	"strings"

	"github.com/creativeyann17/tgmedia/internal/catalog"
	"github.com/creativeyann17/tgmedia/internal/format"
	"github.com/creativeyann17/tgmedia/pkg/tgmedia"
)

// Mismatch describes a part whose bytes differ in the deserialized file
type Mismatch struct {
	Part format.Part

	// Offset is the destination offset of the first differing byte
	Offset uint64
}

// Result contains verification results
type Result struct {
	InputPath   string
	OutputPath  string
	InputFormat string
	OutputSize  uint64

	Scan   *catalog.Scan
	Report catalog.Report

	// AllowTrimmed mirrors the option so IsValid can be judged on its own
	AllowTrimmed bool

	PartsChecked   int    // Parts whose bytes were compared
	PartsShadowed  int    // Parts entirely covered by the next part
	PartsBeyondEnd int    // Parts ending past the deserialized file
	BytesVerified  uint64 // Bytes found identical
	BytesShadowed  uint64 // Overlapping bytes not compared

	Mismatches []Mismatch
	Errors     []error
}

// IsValid returns true if every comparable part matched
func (r *Result) IsValid() bool {
	if r.PartsBeyondEnd > 0 && !r.AllowTrimmed {
		return false
	}
	return len(r.Mismatches) == 0 && len(r.Errors) == 0
}

// Success returns true if verification completed without critical errors
func (r *Result) Success() bool {
	return r.IsValid()
}

// Summary returns a human-readable summary of the verification result
func (r *Result) Summary() string {
	status := "VALID"
	if !r.IsValid() {
		status = "INVALID"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Deserialized: %s [%s]\n", r.OutputPath, status)
	fmt.Fprintf(&sb, "Serialized:   %s (%s)\n", r.InputPath, r.InputFormat)
	fmt.Fprintf(&sb, "Size:         %s\n", tgmedia.FormatSize(r.OutputSize))
	if r.Scan != nil {
		fmt.Fprintf(&sb, "Parts:        %d in %d slices\n", len(r.Scan.Parts), r.Scan.Slices)
	}

	sb.WriteString("\nData Integrity:\n")
	fmt.Fprintf(&sb, "  Parts Checked:  %d\n", r.PartsChecked)
	fmt.Fprintf(&sb, "  Bytes Verified: %s\n", tgmedia.FormatSize(r.BytesVerified))
	if r.PartsShadowed > 0 || r.BytesShadowed > 0 {
		fmt.Fprintf(&sb, "  Overlapping:    %d parts, %s skipped\n", r.PartsShadowed, tgmedia.FormatSize(r.BytesShadowed))
	}
	if r.PartsBeyondEnd > 0 {
		note := ""
		if r.AllowTrimmed {
			note = " (trimmed)"
		}
		fmt.Fprintf(&sb, "  Beyond End:     %d%s\n", r.PartsBeyondEnd, note)
	}
	if len(r.Mismatches) > 0 {
		fmt.Fprintf(&sb, "  Mismatches:     %d\n", len(r.Mismatches))
	}

	if len(r.Errors) > 0 {
		fmt.Fprintf(&sb, "\nErrors (%d):\n", len(r.Errors))
		for i, err := range r.Errors {
			if i >= 10 {
				fmt.Fprintf(&sb, "  ... and %d more errors\n", len(r.Errors)-10)
				break
			}
			fmt.Fprintf(&sb, "  - %v\n", err)
		}
	}

	return sb.String()
}
