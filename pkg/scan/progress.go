// pkg/scan/progress.go
package scan

import (
	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/tgmedia/pkg/tgmedia"
)

// ProgressBarCallback creates a progress callback that displays file and byte bars
// Returns the callback function and the progress container (call Wait() after the scan)
func ProgressBarCallback() (ProgressCallback, *mpb.Progress) {
	genericCb, progress := tgmedia.ProgressBarCallback()

	callback := func(event ProgressEvent) {
		var t tgmedia.EventType
		switch event.Type {
		case EventStart:
			t = tgmedia.EventStart
		case EventFileComplete, EventError:
			// a file that failed inspection still counts as visited
			t = tgmedia.EventItemComplete
		case EventComplete:
			t = tgmedia.EventComplete
		default:
			return
		}
		genericCb(tgmedia.ProgressEvent{
			Type:         t,
			Label:        "Files",
			Current:      event.Current,
			Total:        event.Total,
			CurrentBytes: event.CurrentBytes,
			TotalBytes:   event.TotalBytes,
		})
	}

	return callback, progress
}

// FormatSummary formats a scan result into a human-readable summary string
func FormatSummary(result *Result) string {
	return result.Summary()
}
