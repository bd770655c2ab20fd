// pkg/tgmedia/helpers.go
package tgmedia

import (
	"fmt"
	"path/filepath"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressEvent is a generic progress event shared by the deserialize and scan packages
type ProgressEvent struct {
	Type         EventType
	Label        string
	Current      int64
	Total        int64
	CurrentBytes uint64
	TotalBytes   uint64
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventItemComplete
	EventComplete
	EventError
)

// ProgressBarCallback creates a progress callback that renders an item counter
// and a byte counter. Bars are written to stderr so stdout stays clean.
// Returns the callback function and the progress container (call Wait() after the operation)
func ProgressBarCallback() (func(ProgressEvent), *mpb.Progress) {
	progress := mpb.New(
		mpb.WithWidth(60),
		mpb.WithRefreshRate(100),
		mpb.WithOutput(stderr),
	)

	var itemBar, byteBar *mpb.Bar

	callback := func(event ProgressEvent) {
		switch event.Type {
		case EventStart:
			label := event.Label
			if label == "" {
				label = "Parts"
			}
			itemBar = progress.AddBar(event.Total,
				mpb.PrependDecorators(
					decor.Name(label, decor.WC{C: decor.DindentRight | decor.DextraSpace, W: 8}),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Percentage(decor.WC{W: 5}),
				),
			)
			byteBar = progress.AddBar(int64(event.TotalBytes),
				mpb.PrependDecorators(
					decor.Name("Bytes", decor.WC{C: decor.DindentRight | decor.DextraSpace, W: 8}),
					decor.CountersKibiByte("% .1f / % .1f", decor.WC{W: 18}),
				),
				mpb.AppendDecorators(
					decor.Percentage(decor.WC{W: 5}),
				),
				mpb.BarPriority(1000), // High priority = bottom
			)

		case EventItemComplete:
			if itemBar != nil {
				itemBar.SetCurrent(event.Current)
			}
			if byteBar != nil {
				byteBar.SetCurrent(int64(event.CurrentBytes))
			}

		case EventComplete:
			// Parts may cover less than announced when the run stops early
			if itemBar != nil {
				itemBar.SetTotal(event.Current, true)
			}
			if byteBar != nil {
				byteBar.SetTotal(int64(event.CurrentBytes), true)
			}

		case EventError:
			if itemBar != nil {
				itemBar.Abort(false)
			}
			if byteBar != nil {
				byteBar.Abort(false)
			}
		}
	}

	return callback, progress
}

// FormatSize formats bytes into human-readable string
func FormatSize(bytes uint64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
		TB = 1024 * GB
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TiB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GiB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MiB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KiB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// TruncateLeft truncates a path from the left to fit maxLen, preserving the filename
func TruncateLeft(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}

	// Try to preserve at least the filename
	filename := filepath.Base(path)
	if len(filename) >= maxLen-3 {
		return "..." + filename[len(filename)-(maxLen-3):]
	}

	// Truncate from left with ellipsis
	return "..." + path[len(path)-(maxLen-3):]
}
