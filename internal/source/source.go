// internal/source/source.go
package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/creativeyann17/tgmedia/internal/format"
	"github.com/creativeyann17/tgmedia/pkg/tgmedia"
)

// ErrNotFound is returned when the input cannot be opened for reading
var ErrNotFound = errors.New("not accessible or does not exist")

// errCorrupt marks a stream whose compressed wrapper does not decode
var errCorrupt = errors.New("corrupt compressed stream")

// Source is an opened serialized stream. Compressed inputs are spooled to a
// temporary file because both the scan and the copy need to seek.
type Source struct {
	Name   string
	File   *os.File
	Size   int64
	Format format.InputFormat

	spool string
}

// Open opens path for reading and unwraps zstd/xz containers into tempDir.
// A file that only looks compressed is read as a raw cache.
func Open(path, tempDir string) (*Source, error) {
	src, err := OpenRaw(path)
	if err != nil {
		return nil, err
	}
	f := src.File

	// Peek at magic to determine the wrapper
	magic := make([]byte, format.MagicSize)
	n, err := io.ReadFull(f, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		f.Close()
		return nil, fmt.Errorf("read magic of '%s': %w", path, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("seek '%s' to start: %w", path, err)
	}

	src.Format = format.DetectFormat(magic[:n])
	if !src.Format.Compressed() {
		return src, nil
	}

	spooled, size, err := spool(f, src.Format, tempDir)
	if errors.Is(err, errCorrupt) {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, fmt.Errorf("seek '%s' to start: %w", path, err)
		}
		src.Format = format.FormatRaw
		return src, nil
	}
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("decompress '%s' (%s): %w", path, src.Format, err)
	}
	src.File = spooled
	src.Size = size
	src.spool = spooled.Name()
	return src, nil
}

// OpenRaw opens path for reading as-is, without any format detection
func OpenRaw(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("'%s' %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to open '%s' for read: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to get metadata for '%s': %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("'%s' is a directory: %w", path, ErrNotFound)
	}

	return &Source{
		Name:   path,
		File:   f,
		Size:   info.Size(),
		Format: format.FormatRaw,
	}, nil
}

// spool decompresses r into a new temporary file positioned at offset 0
func spool(r io.Reader, f format.InputFormat, tempDir string) (*os.File, int64, error) {
	var dec io.Reader
	switch f {
	case format.FormatZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", errCorrupt, err)
		}
		defer zr.Close()
		dec = zr
	case format.FormatXZ:
		xr, err := xz.NewReader(r)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", errCorrupt, err)
		}
		dec = xr
	default:
		return nil, 0, fmt.Errorf("unsupported input format %s", f)
	}

	tmp, err := os.CreateTemp(tempDir, "tgmedia-*.spool")
	if err != nil {
		return nil, 0, fmt.Errorf("create spool file: %w", err)
	}

	cw := &tgmedia.CountingWriter{Writer: tmp}
	if _, err := io.Copy(cw, dec); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		// Failing to write the spool is fatal; anything else is the decoder
		var pe *fs.PathError
		if errors.As(err, &pe) && pe.Op == "write" {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, 0, fmt.Errorf("rewind spool file: %w", err)
	}
	return tmp, cw.Count, nil
}

// Close releases the handle and removes any spool file
func (s *Source) Close() error {
	err := s.File.Close()
	if s.spool != "" {
		if rmErr := os.Remove(s.spool); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}
