// internal/format/cache.go
package format

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Serialized media cache layout (all integers little-endian, no padding):
//
//   file  := slice*
//   slice := part_count:u32 part{part_count}
//   part  := dest_offset:u32 size:u32 payload:byte[size]
//
// There is no magic, end marker or checksum. Trailing bytes after the last
// valid slice are expected and ignored.

const (
	// MaxPartsCount is the largest part count a slice header may declare
	MaxPartsCount = 80

	// MaxPartSize is the largest payload a single part may carry (128 KiB)
	MaxPartSize = 128 * 1024

	// SliceHeaderSize: part_count(4)
	SliceHeaderSize = 4

	// PartHeaderSize: dest_offset(4) + size(4)
	PartHeaderSize = 8
)

// ErrTruncatedHeader is returned when fewer bytes than a full header remain.
// Readers treat it as the end of structured data, not as corruption.
var ErrTruncatedHeader = errors.New("truncated header")

// Part describes one byte range recovered from a serialized cache file
type Part struct {
	// SourceOffset is where the payload starts in the serialized file,
	// immediately after the part's own 8-byte header
	SourceOffset uint64

	// DestOffset is where the payload belongs in the deserialized stream
	DestOffset uint32

	// Size is the exact payload length
	Size uint32

	// Slice and Index locate the part in discovery order
	Slice int
	Index int
}

// End returns the destination offset right after this part's payload
func (p Part) End() uint64 {
	return uint64(p.DestOffset) + uint64(p.Size)
}

func (p Part) String() string {
	return fmt.Sprintf("Slice%d/Part%d{in_offset=%d, out_offset=%d, size=%d}",
		p.Slice, p.Index, p.SourceOffset, p.DestOffset, p.Size)
}

// ValidPartCount reports whether a slice header value is within limits
func ValidPartCount(n uint32) bool {
	return n > 0 && n <= MaxPartsCount
}

// ValidPartSize reports whether a part size is within limits
func ValidPartSize(n uint32) bool {
	return n > 0 && n <= MaxPartSize
}

// ReadUint32 reads exactly 4 bytes as a little-endian uint32.
// A short read (including a clean EOF) yields ErrTruncatedHeader.
func ReadUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, ErrTruncatedHeader
		}
		return 0, fmt.Errorf("read u32: %w", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadSliceHeader reads a slice's part count
func ReadSliceHeader(r io.Reader) (partCount uint32, err error) {
	partCount, err = ReadUint32(r)
	if err != nil {
		return 0, fmt.Errorf("read part count: %w", err)
	}
	return partCount, nil
}

// ReadPartHeader reads a part's destination offset followed by its size
func ReadPartHeader(r io.Reader) (destOffset uint32, size uint32, err error) {
	if destOffset, err = ReadUint32(r); err != nil {
		return 0, 0, fmt.Errorf("read dest offset: %w", err)
	}
	if size, err = ReadUint32(r); err != nil {
		return 0, 0, fmt.Errorf("read part size: %w", err)
	}
	return destOffset, size, nil
}
