// pkg/deserialize/deserialize.go
package deserialize

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/creativeyann17/tgmedia/internal/catalog"
	"github.com/creativeyann17/tgmedia/internal/source"
)

// Deserialize rebuilds the media stream stored in opts.InputPath into opts.OutputPath.
//
// The run is strictly sequential: scan the slice/part headers, order the parts
// by destination offset, then copy every payload to its place. Structural
// anomalies only end the scan; the parts found before them are still written.
func Deserialize(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	emit := func(e ProgressEvent) {
		if progressCb != nil {
			progressCb(e)
		}
	}

	// Outputs are never overwritten; check before touching the input
	if !opts.DryRun {
		if _, err := os.Lstat(opts.OutputPath); err == nil {
			return nil, fmt.Errorf("'%s' %w", opts.OutputPath, ErrOutputExists)
		}
	}

	src, err := source.Open(opts.InputPath, opts.TempDir)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	result := &Result{
		InputPath:   opts.InputPath,
		OutputPath:  opts.OutputPath,
		InputFormat: src.Format.String(),
		InputSize:   uint64(src.Size),
		DryRun:      opts.DryRun,
	}

	scan, err := catalog.Build(src.File, src.Size, catalog.Options{MaxSlices: opts.MaxSlices}, func(e catalog.Event) {
		emit(scanEvent(opts.InputPath, e))
	})
	if err != nil {
		return nil, fmt.Errorf("scan '%s': %w", opts.InputPath, err)
	}
	result.Scan = scan

	ordered := catalog.Order(scan.Parts)
	result.Report = catalog.Analyze(ordered)
	result.Gaps = catalog.Gaps(ordered)
	emit(ProgressEvent{Type: EventAnalyzed, Path: opts.InputPath, Report: &result.Report})

	if opts.DryRun {
		return result, nil
	}

	out, err := os.OpenFile(opts.OutputPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("'%s' %w", opts.OutputPath, ErrOutputExists)
		}
		return nil, fmt.Errorf("failed to create '%s' for writing: %w", opts.OutputPath, err)
	}
	defer out.Close()

	if err := write(src, out, ordered, opts, result, emit); err != nil {
		emit(ProgressEvent{Type: EventError, Path: opts.OutputPath})
		return result, err
	}

	emit(ProgressEvent{
		Type:         EventComplete,
		Path:         opts.OutputPath,
		Current:      int64(result.PartsWritten),
		Total:        int64(len(ordered)),
		CurrentBytes: result.BytesWritten,
		TotalBytes:   result.BytesWritten,
	})
	return result, nil
}

// write performs every step that touches the output file
func write(src *source.Source, out *os.File, ordered []Part, opts *Options, result *Result, emit func(ProgressEvent)) error {
	var total uint64
	for _, p := range ordered {
		total += uint64(p.Size)
	}
	emit(ProgressEvent{
		Type:       EventStart,
		Path:       opts.OutputPath,
		Total:      int64(len(ordered)),
		TotalBytes: total,
	})

	written, err := Reconstruct(src.File, out, ordered, func(i int, p Part, written uint64) {
		result.PartsWritten = i + 1
		emit(ProgressEvent{
			Type:         EventPartWritten,
			Path:         opts.InputPath,
			Part:         p,
			Current:      int64(i + 1),
			Total:        int64(len(ordered)),
			CurrentBytes: written,
			TotalBytes:   total,
		})
	})
	result.BytesWritten = written
	if err != nil {
		return fmt.Errorf("deserialize '%s' into '%s': %w", opts.InputPath, opts.OutputPath, err)
	}

	if opts.TrimTail {
		cut, dropped, err := trimTail(out, result.Report)
		if err != nil {
			return err
		}
		result.TrimmedBytes = dropped
		if dropped > 0 {
			emit(ProgressEvent{Type: EventTrim, Path: opts.OutputPath, Offset: cut, CurrentBytes: dropped})
		}
	}

	for _, path := range opts.Append {
		at, err := out.Seek(0, io.SeekEnd)
		if err != nil {
			return fmt.Errorf("seek '%s' to end: %w", opts.OutputPath, err)
		}

		var copied, size uint64
		onStart := func(n int64) {
			size = uint64(n)
		}
		onWrite := func(n int) {
			copied += uint64(n)
			emit(ProgressEvent{
				Type:         EventAppendProgress,
				Path:         path,
				Offset:       uint64(at),
				CurrentBytes: copied,
				TotalBytes:   size,
			})
		}

		n, err := appendSegment(out, at, path, onStart, onWrite)
		result.AppendedBytes += uint64(n)
		if err != nil {
			return err
		}
		result.Segments++
		emit(ProgressEvent{Type: EventAppend, Path: path, Offset: uint64(at), CurrentBytes: uint64(n), TotalBytes: size})
	}

	info, err := out.Stat()
	if err != nil {
		return fmt.Errorf("stat '%s': %w", opts.OutputPath, err)
	}
	result.OutputSize = uint64(info.Size())

	if opts.Checksum {
		if _, err := out.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("seek '%s' to start: %w", opts.OutputPath, err)
		}
		sum, err := Checksum(out)
		if err != nil {
			return fmt.Errorf("checksum '%s': %w", opts.OutputPath, err)
		}
		result.Checksum = sum
	}

	return nil
}

// scanEvent adapts a catalog event to a progress event
func scanEvent(path string, e catalog.Event) ProgressEvent {
	pe := ProgressEvent{
		Path:      path,
		Slice:     e.Slice,
		PartCount: e.PartCount,
		Offset:    e.Offset,
		Part:      e.Part,
		Scan:      e.Scan,
	}
	switch e.Type {
	case catalog.EventSlice:
		pe.Type = EventSlice
	case catalog.EventPart:
		pe.Type = EventPart
	default:
		pe.Type = EventScanStop
	}
	return pe
}
