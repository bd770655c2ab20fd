package deserialize

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creativeyann17/tgmedia/internal/catalog"
	"github.com/creativeyann17/tgmedia/internal/format"
)

// writerAt is an in-memory io.WriterAt that grows like a file
type writerAt struct {
	buf []byte
}

func (w *writerAt) WriteAt(p []byte, off int64) (int, error) {
	if end := int(off) + len(p); end > len(w.buf) {
		w.buf = append(w.buf, make([]byte, end-len(w.buf))...)
	}
	copy(w.buf[off:], p)
	return len(p), nil
}

// trickleSource seeks the shared reader but serves reads one byte at a time
type trickleSource struct {
	io.Reader
	io.Seeker
}

func newTrickleSource(data []byte) *trickleSource {
	r := bytes.NewReader(data)
	return &trickleSource{Reader: iotest.OneByteReader(r), Seeker: r}
}

func TestReadPartShortReads(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789"), 1000)
	buf := make([]byte, readBufferSize)

	readers := map[string]io.Reader{
		"one byte": iotest.OneByteReader(bytes.NewReader(data)),
		"half":     iotest.HalfReader(bytes.NewReader(data)),
		"data+eof": iotest.DataErrReader(bytes.NewReader(data)),
	}

	for name, r := range readers {
		t.Run(name, func(t *testing.T) {
			got, err := readPart(r, uint32(len(data)), buf)
			require.NoError(t, err)
			assert.Equal(t, data, got)
		})
	}
}

func TestReadPartStopsAtSize(t *testing.T) {
	buf := make([]byte, readBufferSize)
	got, err := readPart(bytes.NewReader([]byte("abcdefgh")), 3, buf)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestReadPartShortPayload(t *testing.T) {
	buf := make([]byte, readBufferSize)
	_, err := readPart(bytes.NewReader(make([]byte, 10)), 1000, buf)
	assert.ErrorIs(t, err, ErrShortPayload)
}

func TestReadPartTransportError(t *testing.T) {
	boom := errors.New("boom")
	buf := make([]byte, readBufferSize)
	_, err := readPart(iotest.ErrReader(boom), 10, buf)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrShortPayload)
}

func TestReconstructOrdersPayloads(t *testing.T) {
	var serialized bytes.Buffer
	w := format.NewWriter(&serialized)
	// Trailing index first, then the linear head, like a player seeking to moov
	require.NoError(t, w.WriteSlice(format.Chunk{DestOffset: 8000, Data: bytes.Repeat([]byte{'m'}, 100)}))
	require.NoError(t, w.WriteSlice(
		format.Chunk{DestOffset: 0, Data: bytes.Repeat([]byte{'a'}, 5000)},
		format.Chunk{DestOffset: 5000, Data: bytes.Repeat([]byte{'b'}, 3000)},
	))

	data := serialized.Bytes()
	scan, err := catalog.Build(bytes.NewReader(data), int64(len(data)), catalog.Options{}, nil)
	require.NoError(t, err)
	ordered := catalog.Order(scan.Parts)

	dst := &writerAt{}
	var calls int
	written, err := Reconstruct(newTrickleSource(data), dst, ordered, func(i int, p Part, n uint64) {
		calls++
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(8100), written)
	assert.Equal(t, 3, calls)
	require.Len(t, dst.buf, 8100)

	expected := append(bytes.Repeat([]byte{'a'}, 5000), bytes.Repeat([]byte{'b'}, 3000)...)
	expected = append(expected, bytes.Repeat([]byte{'m'}, 100)...)
	assert.Equal(t, expected, dst.buf, "reconstructed stream layout")
}

func TestReconstructShortPayload(t *testing.T) {
	var serialized bytes.Buffer
	w := format.NewWriter(&serialized)
	require.NoError(t, w.WriteSliceHeader(1))
	require.NoError(t, w.WritePartHeader(0, 1000))
	require.NoError(t, w.WriteRaw(make([]byte, 10)))

	data := serialized.Bytes()
	scan, err := catalog.Build(bytes.NewReader(data), int64(len(data)), catalog.Options{}, nil)
	require.NoError(t, err)
	require.Len(t, scan.Parts, 1, "truncated part is admitted")

	_, err = Reconstruct(bytes.NewReader(data), &writerAt{}, scan.Parts, nil)
	assert.ErrorIs(t, err, ErrShortPayload)
}
