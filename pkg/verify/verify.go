// pkg/verify/verify.go
package verify

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/creativeyann17/tgmedia/internal/catalog"
	"github.com/creativeyann17/tgmedia/internal/source"
	"github.com/creativeyann17/tgmedia/pkg/deserialize"
)

// ProgressCallback is called for progress updates during verification
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type    EventType
	Part    deserialize.Part
	Current int
	Total   int
	Err     error
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventPartVerify
	EventComplete
	EventError
)

// Verify checks a deserialized file against the serialized cache it came from.
// Each part is compared at its destination offset; bytes the next part
// overwrites are skipped.
func Verify(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	emit := func(e ProgressEvent) {
		if progressCb != nil {
			progressCb(e)
		}
	}

	result := &Result{
		InputPath:    opts.InputPath,
		OutputPath:   opts.OutputPath,
		AllowTrimmed: opts.AllowTrimmed,
	}

	src, err := source.Open(opts.InputPath, opts.TempDir)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	result.InputFormat = src.Format.String()

	out, err := os.Open(opts.OutputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("'%s' %w", opts.OutputPath, ErrNotFound)
		}
		return nil, fmt.Errorf("open '%s': %w", opts.OutputPath, err)
	}
	defer out.Close()

	stat, err := out.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat '%s': %w", opts.OutputPath, err)
	}
	result.OutputSize = uint64(stat.Size())

	scan, err := catalog.Build(src.File, src.Size, catalog.Options{MaxSlices: opts.MaxSlices}, nil)
	if err != nil {
		return nil, err
	}
	ordered := catalog.Order(scan.Parts)
	result.Scan = scan
	result.Report = catalog.Analyze(ordered)

	emit(ProgressEvent{Type: EventStart, Total: len(ordered)})

	buf := make([]byte, 4096)
	for i, p := range ordered {
		// Bytes from the next part's start on may have been overwritten
		end := p.End()
		if i+1 < len(ordered) {
			if next := uint64(ordered[i+1].DestOffset); next < end {
				end = next
			}
		}
		start := uint64(p.DestOffset)
		result.BytesShadowed += p.End() - end
		if end <= start {
			result.PartsShadowed++
			emit(ProgressEvent{Type: EventPartVerify, Part: p, Current: i + 1, Total: len(ordered)})
			continue
		}

		if end > result.OutputSize {
			result.PartsBeyondEnd++
			if !opts.AllowTrimmed {
				result.Errors = append(result.Errors, fmt.Errorf("%s: %w", p, ErrBeyondEnd))
			}
			emit(ProgressEvent{Type: EventPartVerify, Part: p, Current: i + 1, Total: len(ordered)})
			continue
		}

		if err := checkPart(src.File, out, p, end, buf, result); err != nil {
			result.Errors = append(result.Errors, err)
			emit(ProgressEvent{Type: EventError, Part: p, Current: i + 1, Total: len(ordered), Err: err})
			return result, err
		}
		emit(ProgressEvent{Type: EventPartVerify, Part: p, Current: i + 1, Total: len(ordered)})
	}

	emit(ProgressEvent{Type: EventComplete, Current: len(ordered), Total: len(ordered)})
	return result, nil
}

// checkPart compares the payload of p with out over [p.DestOffset, end)
func checkPart(src io.ReadSeeker, out io.ReaderAt, p deserialize.Part, end uint64, buf []byte, result *Result) error {
	want, err := deserialize.ReadPayload(src, p, buf)
	if err != nil {
		return err
	}
	want = want[:end-uint64(p.DestOffset)]

	got := make([]byte, len(want))
	if _, err := out.ReadAt(got, int64(p.DestOffset)); err != nil {
		return fmt.Errorf("read out_offset=%d: %w", p.DestOffset, err)
	}

	result.PartsChecked++
	if bytes.Equal(want, got) {
		result.BytesVerified += uint64(len(want))
		return nil
	}

	first := 0
	for first < len(want) && want[first] == got[first] {
		first++
	}
	at := uint64(p.DestOffset) + uint64(first)
	result.Mismatches = append(result.Mismatches, Mismatch{Part: p, Offset: at})
	result.Errors = append(result.Errors, fmt.Errorf("%s: %w at out_offset=%d", p, ErrMismatch, at))
	return nil
}
