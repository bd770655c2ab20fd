package format

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUint32(t *testing.T) {
	t.Run("little endian", func(t *testing.T) {
		v, err := ReadUint32(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04}))
		require.NoError(t, err)
		assert.Equal(t, uint32(0x04030201), v)
	})

	t.Run("short reads are truncated headers", func(t *testing.T) {
		for _, n := range []int{0, 1, 3} {
			_, err := ReadUint32(bytes.NewReader(make([]byte, n)))
			assert.ErrorIs(t, err, ErrTruncatedHeader, "len=%d", n)
		}
	})
}

func TestLimits(t *testing.T) {
	testCases := []struct {
		name  string
		valid func(uint32) bool
		value uint32
		want  bool
	}{
		{"zero parts", ValidPartCount, 0, false},
		{"one part", ValidPartCount, 1, true},
		{"max parts", ValidPartCount, 80, true},
		{"above max parts", ValidPartCount, 81, false},
		{"zero size", ValidPartSize, 0, false},
		{"one byte", ValidPartSize, 1, true},
		{"max size", ValidPartSize, 131072, true},
		{"above max size", ValidPartSize, 131073, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.valid(tc.value))
		})
	}
}

func TestWriterRoundTripHeaders(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteSlice(
		Chunk{DestOffset: 100, Data: []byte("abc")},
		Chunk{DestOffset: 0, Data: []byte("hello")},
	))
	assert.Equal(t, int64(4+8+3+8+5), w.Written())
	assert.Equal(t, int64(buf.Len()), w.Written())

	r := bytes.NewReader(buf.Bytes())

	count, err := ReadSliceHeader(r)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), count)

	dest, size, err := ReadPartHeader(r)
	require.NoError(t, err)
	assert.Equal(t, uint32(100), dest)
	assert.Equal(t, uint32(3), size)

	payload := make([]byte, size)
	_, err = r.Read(payload)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(payload))

	dest, size, err = ReadPartHeader(r)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), dest)
	assert.Equal(t, uint32(5), size)
}

func TestReadPartHeaderTruncated(t *testing.T) {
	// dest offset present, size missing
	_, _, err := ReadPartHeader(bytes.NewReader([]byte{1, 0, 0, 0, 2, 0}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncatedHeader))
}

func TestPartEnd(t *testing.T) {
	p := Part{DestOffset: 0xFFFFFFFF, Size: MaxPartSize}
	assert.Equal(t, uint64(0xFFFFFFFF)+MaxPartSize, p.End())
}

func TestDetectFormat(t *testing.T) {
	testCases := []struct {
		name  string
		magic []byte
		want  InputFormat
	}{
		{"zstd", []byte{0x28, 0xB5, 0x2F, 0xFD, 0x04, 0x00}, FormatZstd},
		{"xz", []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}, FormatXZ},
		{"raw slice header", []byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x00}, FormatRaw},
		{"short input", []byte{0x28}, FormatRaw},
		{"empty", nil, FormatRaw},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectFormat(tc.magic)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want != FormatRaw, got.Compressed())
		})
	}
}

func TestCompressedMagicIsNeverAValidSliceHeader(t *testing.T) {
	zstdMagic := []byte{0x28, 0xB5, 0x2F, 0xFD}
	xzMagic := []byte{0xFD, '7', 'z', 'X'}

	for _, magic := range [][]byte{zstdMagic, xzMagic} {
		v, err := ReadUint32(bytes.NewReader(magic))
		require.NoError(t, err)
		assert.False(t, ValidPartCount(v))
	}
}
