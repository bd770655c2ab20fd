package scan_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativeyann17/tgmedia/internal/format"
	"github.com/creativeyann17/tgmedia/pkg/scan"
)

func cacheFile(t *testing.T, chunks ...format.Chunk) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, format.NewWriter(&buf).WriteSlice(chunks...))
	return buf.Bytes()
}

func write(t *testing.T, dir, rel string, data []byte) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	write(t, dir, "0/a1", cacheFile(t,
		format.Chunk{DestOffset: 0, Data: bytes.Repeat([]byte{1}, 100)},
		format.Chunk{DestOffset: 500, Data: bytes.Repeat([]byte{2}, 50)},
	))
	write(t, dir, "0/b2", cacheFile(t, format.Chunk{DestOffset: 0, Data: []byte("linear")}))
	write(t, dir, "1/binlog", []byte("not a cache at all, just text"))
	write(t, dir, "thumbs/skip.jpg", cacheFile(t, format.Chunk{DestOffset: 0, Data: []byte("x")}))
	write(t, dir, "version", []byte{0xFF, 0xFF, 0xFF, 0xFF})

	var completed int
	result, err := scan.Scan(&scan.Options{
		Dir:     dir,
		Exclude: []string{"thumbs/", "version"},
	}, func(e scan.ProgressEvent) {
		if e.Type == scan.EventFileComplete {
			completed++
		}
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.FilesTotal)
	assert.Equal(t, 1, result.FilesSkipped, "excluded directories are pruned, not counted")
	assert.Equal(t, 3, completed)
	assert.True(t, result.Success())

	serialized := result.SerializedFiles()
	require.Len(t, serialized, 2)

	byPath := map[string]scan.FileInfo{}
	for _, f := range serialized {
		byPath[f.Path] = f
	}

	a1 := byPath["0/a1"]
	assert.Equal(t, 2, a1.Parts)
	assert.Equal(t, uint64(550), a1.StreamSize)
	assert.Equal(t, uint64(100), a1.Trusted)
	assert.Equal(t, 1, a1.Gaps)
	assert.Equal(t, "RAW", a1.Format)

	b2 := byPath["0/b2"]
	assert.Equal(t, uint64(6), b2.Trusted)

	summary := result.Summary()
	assert.True(t, strings.Index(summary, "0/a1") < strings.Index(summary, "0/b2"), "largest stream first")
	assert.Contains(t, summary, "Serialized files: 2")
}

func TestScanIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, scan.IgnoreFileName, []byte("*.tmp\n"))
	write(t, dir, "keep", cacheFile(t, format.Chunk{DestOffset: 0, Data: []byte("k")}))
	write(t, dir, "drop.tmp", cacheFile(t, format.Chunk{DestOffset: 0, Data: []byte("d")}))

	result, err := scan.Scan(&scan.Options{Dir: dir}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilesTotal)
	assert.Equal(t, 1, result.FilesSkipped)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "keep", result.Files[0].Path)
}

func TestScanErrors(t *testing.T) {
	_, err := scan.Scan(&scan.Options{}, nil)
	assert.True(t, errors.Is(err, scan.ErrDirRequired))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = scan.Scan(&scan.Options{Dir: file}, nil)
	assert.ErrorIs(t, err, scan.ErrNotDir)
}
