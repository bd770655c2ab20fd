// internal/catalog/builder.go
package catalog

import (
	"errors"
	"fmt"
	"io"

	"github.com/creativeyann17/tgmedia/internal/format"
)

// StopReason tells why scanning ended. Every reason is a normal outcome:
// real cache files end with a few bytes of unknown trailing data.
type StopReason int

const (
	// StopEOF means the file ran out at a slice boundary or inside a header
	StopEOF StopReason = iota
	// StopBadPartCount means a slice header declared 0 or too many parts
	StopBadPartCount
	// StopBadPartSize means a part header declared a size of 0 or above the limit
	StopBadPartSize
	// StopSliceLimit means the configured slice limit was reached
	StopSliceLimit
)

func (r StopReason) String() string {
	switch r {
	case StopBadPartCount:
		return "invalid part count"
	case StopBadPartSize:
		return "invalid part size"
	case StopSliceLimit:
		return "slice limit reached"
	default:
		return "end of file"
	}
}

// Scan is the outcome of walking a serialized file: the parts collected up
// to the first anomaly, plus what stopped the walk
type Scan struct {
	// Parts in discovery order
	Parts []format.Part

	// Slices is the number of slices whose parts were all collected
	Slices int

	// FileSize is the size of the serialized input
	FileSize uint64

	// Stop is why scanning ended
	Stop StopReason

	// StopOffset is the input offset of the header that ended the scan
	StopOffset uint64

	// Value is the offending part count or part size (0 for StopEOF)
	Value uint32

	// Remaining is the number of unparsed bytes from StopOffset to the end
	Remaining uint64
}

// Clean reports whether the scan consumed the whole input
func (s *Scan) Clean() bool {
	return s.Stop == StopEOF && s.Remaining == 0
}

func (s *Scan) halt(reason StopReason, offset uint64, value uint32) {
	s.Stop = reason
	s.StopOffset = offset
	s.Value = value
	if offset < s.FileSize {
		s.Remaining = s.FileSize - offset
	}
}

// EventType indicates the kind of scan event
type EventType int

const (
	EventSlice EventType = iota
	EventPart
	EventStop
)

// Event reports scan progress. Fields not relevant to Type are zero.
type Event struct {
	Type      EventType
	Slice     int
	Offset    uint64
	PartCount uint32
	Part      format.Part
	Scan      *Scan
}

// EventFunc receives scan events
type EventFunc func(Event)

// Options bounds a scan
type Options struct {
	// MaxSlices stops scanning after that many slices (0 = unlimited)
	MaxSlices int
}

// Build walks r slice by slice and collects part descriptors without reading
// payloads. Structural anomalies end the walk and are reported in the Scan;
// only seek and read failures of the underlying file are returned as errors.
func Build(r io.ReadSeeker, size int64, opts Options, cb EventFunc) (*Scan, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to start: %w", err)
	}

	scan := &Scan{
		Parts:    make([]format.Part, 0, 128),
		FileSize: uint64(size),
	}
	emit := func(e Event) {
		if cb != nil {
			cb(e)
		}
	}

	var offset uint64
	for slice := 0; ; slice++ {
		if offset >= scan.FileSize {
			scan.halt(StopEOF, offset, 0)
			break
		}
		if opts.MaxSlices > 0 && slice >= opts.MaxSlices {
			scan.halt(StopSliceLimit, offset, 0)
			break
		}

		partCount, err := format.ReadSliceHeader(r)
		if errors.Is(err, format.ErrTruncatedHeader) {
			scan.halt(StopEOF, offset, 0)
			break
		}
		if err != nil {
			return nil, fmt.Errorf("slice %d at offset %d: %w", slice, offset, err)
		}
		if !format.ValidPartCount(partCount) {
			scan.halt(StopBadPartCount, offset, partCount)
			break
		}
		emit(Event{Type: EventSlice, Slice: slice, Offset: offset, PartCount: partCount})
		offset += format.SliceHeaderSize

		if stopped, err := scanParts(r, scan, slice, partCount, &offset, emit); err != nil {
			return nil, err
		} else if stopped {
			break
		}
		scan.Slices++
	}

	emit(Event{Type: EventStop, Slice: scan.Slices, Offset: scan.StopOffset, Scan: scan})
	return scan, nil
}

// scanParts reads one slice's part headers, skipping over payloads
func scanParts(r io.ReadSeeker, scan *Scan, slice int, partCount uint32, offset *uint64, emit func(Event)) (stopped bool, err error) {
	for i := 0; i < int(partCount); i++ {
		headerOffset := *offset

		destOffset, size, err := format.ReadPartHeader(r)
		if errors.Is(err, format.ErrTruncatedHeader) {
			scan.halt(StopEOF, headerOffset, 0)
			return true, nil
		}
		if err != nil {
			return false, fmt.Errorf("slice %d part %d at offset %d: %w", slice, i, headerOffset, err)
		}
		if !format.ValidPartSize(size) {
			scan.halt(StopBadPartSize, headerOffset, size)
			return true, nil
		}

		part := format.Part{
			SourceOffset: headerOffset + format.PartHeaderSize,
			DestOffset:   destOffset,
			Size:         size,
			Slice:        slice,
			Index:        i,
		}
		scan.Parts = append(scan.Parts, part)
		emit(Event{Type: EventPart, Slice: slice, Offset: part.SourceOffset, Part: part})

		// Payload is skipped, not read
		pos, err := r.Seek(int64(size), io.SeekCurrent)
		if err != nil {
			return false, fmt.Errorf("skip payload of slice %d part %d at offset %d: %w", slice, i, part.SourceOffset, err)
		}
		*offset = uint64(pos)
	}
	return false, nil
}
