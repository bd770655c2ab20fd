// pkg/deserialize/reconstruct.go
package deserialize

import (
	"errors"
	"fmt"
	"io"
)

// readBufferSize is the size of a single read from the serialized file
const readBufferSize = 4096

// maxEmptyReads bounds consecutive (0, nil) reads before giving up
const maxEmptyReads = 100

// Reconstruct copies every part payload from src to its destination offset in dst.
// Parts are processed in the given order, normally the one returned by catalog.Order.
// onPart, if set, is called after each part is written with the running totals.
func Reconstruct(src io.ReadSeeker, dst io.WriterAt, ordered []Part, onPart func(i int, p Part, written uint64)) (uint64, error) {
	var buf [readBufferSize]byte
	var written uint64

	for i, p := range ordered {
		data, err := ReadPayload(src, p, buf[:])
		if err != nil {
			return written, err
		}

		if _, err := dst.WriteAt(data, int64(p.DestOffset)); err != nil {
			return written, fmt.Errorf("write part(size=%d) at out_offset=%d: %w", p.Size, p.DestOffset, err)
		}
		written += uint64(p.Size)

		if onPart != nil {
			onPart(i, p, written)
		}
	}

	return written, nil
}

// ReadPayload seeks to the payload of p and reads its Size bytes through buf
func ReadPayload(src io.ReadSeeker, p Part, buf []byte) ([]byte, error) {
	if _, err := src.Seek(int64(p.SourceOffset), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to in_offset=%d: %w", p.SourceOffset, err)
	}
	data, err := readPart(src, p.Size, buf)
	if err != nil {
		return nil, fmt.Errorf("read part(size=%d) at in_offset=%d: %w", p.Size, p.SourceOffset, err)
	}
	return data, nil
}

// readPart accumulates exactly size bytes from r through buf, tolerating short reads
func readPart(r io.Reader, size uint32, buf []byte) ([]byte, error) {
	part := make([]byte, 0, size)
	empty := 0

	for uint32(len(part)) < size {
		n, err := r.Read(buf)
		if want := int(size) - len(part); n > want {
			n = want
		}
		part = append(part, buf[:n]...)

		if uint32(len(part)) == size {
			break
		}
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: only %d of %d bytes available", ErrShortPayload, len(part), size)
		}
		if err != nil {
			return nil, fmt.Errorf("after %d of %d bytes: %w", len(part), size, err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return nil, io.ErrNoProgress
			}
		} else {
			empty = 0
		}
	}

	return part, nil
}
