// pkg/deserialize/append.go
package deserialize

import (
	"fmt"
	"io"
	"os"

	"github.com/creativeyann17/tgmedia/internal/source"
	"github.com/creativeyann17/tgmedia/pkg/tgmedia"
)

// trimTail truncates out at the end of the trusted prefix, the contiguous
// run starting at offset 0. A stream with a leading hole keeps nothing.
// Returns the offset cut at and the number of bytes dropped.
func trimTail(out *os.File, report Report) (uint64, uint64, error) {
	info, err := out.Stat()
	if err != nil {
		return 0, 0, fmt.Errorf("stat '%s': %w", out.Name(), err)
	}
	size := uint64(info.Size())
	cut := report.Trusted()
	if report.Parts == 0 || cut >= size {
		return cut, 0, nil
	}
	if err := out.Truncate(int64(cut)); err != nil {
		return cut, 0, fmt.Errorf("truncate '%s' at %d: %w", out.Name(), cut, err)
	}
	return cut, size - cut, nil
}

// appendSegment concatenates one continuation file at offset at of out.
// Continuation files are not serialized, so their bytes are copied as-is,
// even when they happen to start with a compressed frame.
// onStart receives the segment size; onWrite each copied chunk.
func appendSegment(out *os.File, at int64, path string, onStart func(size int64), onWrite func(n int)) (int64, error) {
	seg, err := source.OpenRaw(path)
	if err != nil {
		return 0, err
	}
	defer seg.Close()

	if onStart != nil {
		onStart(seg.Size)
	}

	pw := &tgmedia.ProgressWriter{
		Writer:  io.NewOffsetWriter(out, at),
		OnWrite: onWrite,
	}
	n, err := io.Copy(pw, seg.File)
	if err != nil {
		return n, fmt.Errorf("append '%s' to '%s'@%d: %w", path, out.Name(), at, err)
	}
	return n, nil
}
