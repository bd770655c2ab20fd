package catalog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativeyann17/tgmedia/internal/format"
)

func payload(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i)
	}
	return b
}

func build(t *testing.T, data []byte) *Scan {
	t.Helper()
	scan, err := Build(bytes.NewReader(data), int64(len(data)), Options{}, nil)
	require.NoError(t, err)
	return scan
}

func TestBuild(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		scan := build(t, nil)
		assert.Empty(t, scan.Parts)
		assert.Equal(t, StopEOF, scan.Stop)
		assert.True(t, scan.Clean())
	})

	t.Run("records source offsets past part headers", func(t *testing.T) {
		var buf bytes.Buffer
		w := format.NewWriter(&buf)
		require.NoError(t, w.WriteSlice(
			format.Chunk{DestOffset: 0, Data: payload(10, 0)},
			format.Chunk{DestOffset: 1000, Data: payload(20, 1)},
		))
		require.NoError(t, w.WriteSlice(
			format.Chunk{DestOffset: 10, Data: payload(5, 2)},
		))

		scan := build(t, buf.Bytes())
		require.Len(t, scan.Parts, 3)
		assert.Equal(t, 2, scan.Slices)
		assert.True(t, scan.Clean())

		assert.Equal(t, format.Part{SourceOffset: 12, DestOffset: 0, Size: 10, Slice: 0, Index: 0}, scan.Parts[0])
		assert.Equal(t, format.Part{SourceOffset: 30, DestOffset: 1000, Size: 20, Slice: 0, Index: 1}, scan.Parts[1])
		assert.Equal(t, format.Part{SourceOffset: 50 + 12, DestOffset: 10, Size: 5, Slice: 1, Index: 0}, scan.Parts[2])
	})

	t.Run("trailing bytes are ignored", func(t *testing.T) {
		var buf bytes.Buffer
		w := format.NewWriter(&buf)
		require.NoError(t, w.WriteSlice(format.Chunk{DestOffset: 0, Data: payload(8, 0)}))
		require.NoError(t, w.WriteRaw([]byte{0xAA, 0xBB}))

		scan := build(t, buf.Bytes())
		require.Len(t, scan.Parts, 1)
		assert.Equal(t, StopEOF, scan.Stop)
		assert.Equal(t, uint64(20), scan.StopOffset)
		assert.Equal(t, uint64(2), scan.Remaining)
		assert.False(t, scan.Clean())
	})
}

func TestBuildStopsOnPartCount(t *testing.T) {
	for _, count := range []uint32{0, 81} {
		var buf bytes.Buffer
		w := format.NewWriter(&buf)
		require.NoError(t, w.WriteSlice(format.Chunk{DestOffset: 0, Data: payload(4, 0)}))
		stopAt := w.Written()
		require.NoError(t, w.WriteSliceHeader(count))
		// parts that must never be read
		require.NoError(t, w.WritePart(4, payload(4, 9)))

		scan := build(t, buf.Bytes())
		require.Len(t, scan.Parts, 1, "count=%d", count)
		assert.Equal(t, StopBadPartCount, scan.Stop)
		assert.Equal(t, count, scan.Value)
		assert.Equal(t, uint64(stopAt), scan.StopOffset)
		assert.Equal(t, 1, scan.Slices)
	}
}

func TestBuildStopsOnPartSize(t *testing.T) {
	for _, size := range []uint32{0, 131073} {
		var buf bytes.Buffer
		w := format.NewWriter(&buf)
		require.NoError(t, w.WriteSlice(format.Chunk{DestOffset: 0, Data: payload(4, 0)}))
		require.NoError(t, w.WriteSliceHeader(3))
		require.NoError(t, w.WritePart(4, payload(4, 1)))
		stopAt := w.Written()
		require.NoError(t, w.WritePartHeader(8, size))
		require.NoError(t, w.WriteRaw(payload(16, 2)))

		scan := build(t, buf.Bytes())
		require.Len(t, scan.Parts, 2, "size=%d", size)
		assert.Equal(t, StopBadPartSize, scan.Stop)
		assert.Equal(t, size, scan.Value)
		assert.Equal(t, uint64(stopAt), scan.StopOffset)
		assert.Equal(t, 1, scan.Slices, "interrupted slice is not counted")
		assert.Equal(t, uint32(4), scan.Parts[1].DestOffset)
	}
}

func TestBuildTruncatedHeaders(t *testing.T) {
	t.Run("partial slice header", func(t *testing.T) {
		var buf bytes.Buffer
		w := format.NewWriter(&buf)
		require.NoError(t, w.WriteSlice(format.Chunk{DestOffset: 0, Data: payload(4, 0)}))
		require.NoError(t, w.WriteRaw([]byte{1, 0}))

		scan := build(t, buf.Bytes())
		assert.Len(t, scan.Parts, 1)
		assert.Equal(t, StopEOF, scan.Stop)
		assert.Equal(t, uint64(2), scan.Remaining)
	})

	t.Run("partial part header", func(t *testing.T) {
		var buf bytes.Buffer
		w := format.NewWriter(&buf)
		require.NoError(t, w.WriteSliceHeader(2))
		require.NoError(t, w.WritePart(0, payload(4, 0)))
		require.NoError(t, w.WriteRaw([]byte{4, 0, 0, 0, 4}))

		scan := build(t, buf.Bytes())
		assert.Len(t, scan.Parts, 1)
		assert.Equal(t, StopEOF, scan.Stop)
		assert.Equal(t, uint64(16), scan.StopOffset)
	})

	t.Run("payload past end of file is still admitted", func(t *testing.T) {
		var buf bytes.Buffer
		w := format.NewWriter(&buf)
		require.NoError(t, w.WriteSliceHeader(1))
		require.NoError(t, w.WritePartHeader(0, 1000))
		require.NoError(t, w.WriteRaw(payload(10, 0)))

		scan := build(t, buf.Bytes())
		require.Len(t, scan.Parts, 1)
		assert.Equal(t, uint32(1000), scan.Parts[0].Size)
		assert.Equal(t, StopEOF, scan.Stop)
		assert.Equal(t, uint64(0), scan.Remaining)
	})
}

func TestBuildSliceLimit(t *testing.T) {
	var buf bytes.Buffer
	w := format.NewWriter(&buf)
	for i := 0; i < 3; i++ {
		require.NoError(t, w.WriteSlice(format.Chunk{DestOffset: uint32(i * 4), Data: payload(4, byte(i))}))
	}

	scan, err := Build(bytes.NewReader(buf.Bytes()), int64(buf.Len()), Options{MaxSlices: 2}, nil)
	require.NoError(t, err)
	assert.Len(t, scan.Parts, 2)
	assert.Equal(t, StopSliceLimit, scan.Stop)
	assert.Equal(t, uint64(32), scan.StopOffset)
}

func TestBuildEvents(t *testing.T) {
	var buf bytes.Buffer
	w := format.NewWriter(&buf)
	require.NoError(t, w.WriteSlice(
		format.Chunk{DestOffset: 0, Data: payload(4, 0)},
		format.Chunk{DestOffset: 4, Data: payload(4, 1)},
	))

	var events []Event
	_, err := Build(bytes.NewReader(buf.Bytes()), int64(buf.Len()), Options{}, func(e Event) {
		events = append(events, e)
	})
	require.NoError(t, err)

	require.Len(t, events, 4)
	assert.Equal(t, EventSlice, events[0].Type)
	assert.Equal(t, uint32(2), events[0].PartCount)
	assert.Equal(t, EventPart, events[1].Type)
	assert.Equal(t, EventPart, events[2].Type)
	assert.Equal(t, uint32(4), events[2].Part.DestOffset)
	assert.Equal(t, EventStop, events[3].Type)
	require.NotNil(t, events[3].Scan)
	assert.Equal(t, StopEOF, events[3].Scan.Stop)
}
