// pkg/deserialize/progress.go
package deserialize

import (
	"fmt"

	"github.com/vbauerster/mpb/v8"

	"github.com/creativeyann17/tgmedia/internal/catalog"
	"github.com/creativeyann17/tgmedia/internal/format"
	"github.com/creativeyann17/tgmedia/pkg/tgmedia"
)

// Part is a part descriptor recovered from the serialized file
type Part = format.Part

// Scan is the outcome of the structural scan
type Scan = catalog.Scan

// Report is the ordering and contiguity summary
type Report = catalog.Report

// Gap is a destination range no part covers
type Gap = catalog.Gap

// ProgressCallback is called for various progress events
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type EventType

	// Path of the file the event refers to
	Path string

	// Slice, PartCount and Offset describe scan events
	Slice     int
	PartCount uint32
	Offset    uint64

	// Part is set for EventPart and EventPartWritten
	Part Part

	// Scan is set for EventScanStop; Report for EventAnalyzed
	Scan   *Scan
	Report *Report

	Current      int64
	Total        int64
	CurrentBytes uint64
	TotalBytes   uint64
}

// EventType indicates the type of progress event
type EventType int

const (
	EventSlice EventType = iota
	EventPart
	EventScanStop
	EventAnalyzed
	EventStart
	EventPartWritten
	EventTrim
	EventAppendProgress
	EventAppend
	EventComplete
	EventError
)

// String renders the diagnostic line for scan and write events
func (e ProgressEvent) String() string {
	switch e.Type {
	case EventSlice:
		return fmt.Sprintf("Slice%d: in_offset=%d, parts=%d", e.Slice, e.Offset, e.PartCount)
	case EventPart:
		return fmt.Sprintf("Slice%d/Part%d: in_offset=%d, out_offset=%d, part_size=%d",
			e.Part.Slice, e.Part.Index, e.Part.SourceOffset, e.Part.DestOffset, e.Part.Size)
	case EventScanStop:
		if e.Scan == nil {
			return "stopped parsing"
		}
		s := e.Scan
		switch s.Stop {
		case catalog.StopBadPartCount:
			return fmt.Sprintf("Slice%d: in_offset=%d, parts=%d is zero or > max allowed(%d), stopped parsing with %d bytes remaining",
				s.Slices, s.StopOffset, s.Value, format.MaxPartsCount, s.Remaining)
		case catalog.StopBadPartSize:
			return fmt.Sprintf("Slice%d: in_offset=%d, part_size=%d is zero or > max allowed(%d), stopped parsing with %d bytes remaining",
				s.Slices, s.StopOffset, s.Value, format.MaxPartSize, s.Remaining)
		default:
			return fmt.Sprintf("%s at in_offset=%d, stopped parsing with %d bytes remaining", s.Stop, s.StopOffset, s.Remaining)
		}
	case EventAnalyzed:
		if e.Report == nil {
			return ""
		}
		return e.Report.String()
	case EventPartWritten:
		return fmt.Sprintf("writing %d bytes from %s@%d to @%d",
			e.Part.Size, e.Path, e.Part.SourceOffset, e.Part.DestOffset)
	case EventTrim:
		return fmt.Sprintf("trimmed %s at %d (%d bytes dropped)", e.Path, e.Offset, e.CurrentBytes)
	case EventAppend:
		return fmt.Sprintf("appended %s (%d bytes) at %d", e.Path, e.CurrentBytes, e.Offset)
	default:
		return ""
	}
}

// ProgressBarCallback creates a progress callback that displays part and byte bars
// Returns the callback function and the progress container (call Wait() after deserialization)
func ProgressBarCallback() (ProgressCallback, *mpb.Progress) {
	genericCb, progress := tgmedia.ProgressBarCallback()

	// Only write events drive the bars; scan events are too fine-grained
	callback := func(event ProgressEvent) {
		var t tgmedia.EventType
		switch event.Type {
		case EventStart:
			t = tgmedia.EventStart
		case EventPartWritten:
			t = tgmedia.EventItemComplete
		case EventComplete:
			t = tgmedia.EventComplete
		case EventError:
			t = tgmedia.EventError
		default:
			return
		}
		genericCb(tgmedia.ProgressEvent{
			Type:         t,
			Label:        "Parts",
			Current:      event.Current,
			Total:        event.Total,
			CurrentBytes: event.CurrentBytes,
			TotalBytes:   event.TotalBytes,
		})
	}

	return callback, progress
}

// FormatSummary formats a deserialization result into a human-readable summary string
func FormatSummary(result *Result) string {
	return result.Summary()
}
