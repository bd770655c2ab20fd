// internal/format/writer.go
package format

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Chunk is a payload destined for DestOffset in the deserialized stream
type Chunk struct {
	DestOffset uint32
	Data       []byte
}

// Writer serializes slices in the media cache layout.
// It does not enforce limits so callers can produce malformed files on purpose.
type Writer struct {
	w       io.Writer
	written int64
}

// NewWriter creates a cache writer on top of w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Written returns the number of bytes written so far
func (cw *Writer) Written() int64 {
	return cw.written
}

// WriteSlice writes a slice header followed by every chunk as a part
func (cw *Writer) WriteSlice(chunks ...Chunk) error {
	if err := cw.WriteSliceHeader(uint32(len(chunks))); err != nil {
		return err
	}
	for i, c := range chunks {
		if err := cw.WritePart(c.DestOffset, c.Data); err != nil {
			return fmt.Errorf("part %d: %w", i, err)
		}
	}
	return nil
}

// WriteSliceHeader writes a raw part count
func (cw *Writer) WriteSliceHeader(partCount uint32) error {
	if err := binary.Write(cw.w, binary.LittleEndian, partCount); err != nil {
		return fmt.Errorf("write part count: %w", err)
	}
	cw.written += SliceHeaderSize
	return nil
}

// WritePart writes a part header with size=len(data) followed by the payload
func (cw *Writer) WritePart(destOffset uint32, data []byte) error {
	if err := cw.WritePartHeader(destOffset, uint32(len(data))); err != nil {
		return err
	}
	n, err := cw.w.Write(data)
	cw.written += int64(n)
	if err != nil {
		return fmt.Errorf("write payload: %w", err)
	}
	return nil
}

// WritePartHeader writes a raw part header without payload
func (cw *Writer) WritePartHeader(destOffset, size uint32) error {
	if err := binary.Write(cw.w, binary.LittleEndian, destOffset); err != nil {
		return fmt.Errorf("write dest offset: %w", err)
	}
	if err := binary.Write(cw.w, binary.LittleEndian, size); err != nil {
		return fmt.Errorf("write part size: %w", err)
	}
	cw.written += PartHeaderSize
	return nil
}

// WriteRaw writes arbitrary bytes, e.g. the trailing padding seen in real caches
func (cw *Writer) WriteRaw(p []byte) error {
	n, err := cw.w.Write(p)
	cw.written += int64(n)
	if err != nil {
		return fmt.Errorf("write raw: %w", err)
	}
	return nil
}
