// internal/format/detect.go
package format

// InputFormat represents the detected container of a serialized cache file
type InputFormat int

const (
	// FormatRaw is a plain serialized cache (no magic of its own)
	FormatRaw InputFormat = iota
	FormatZstd
	FormatXZ
)

// MagicSize is the number of leading bytes needed to detect every format
const MagicSize = 6

// String returns the string representation of the format
func (f InputFormat) String() string {
	switch f {
	case FormatZstd:
		return "ZSTD"
	case FormatXZ:
		return "XZ"
	default:
		return "RAW"
	}
}

// Compressed reports whether the input must be decompressed before parsing
func (f InputFormat) Compressed() bool {
	return f != FormatRaw
}

// DetectFormat detects a compressed wrapper from magic bytes.
// Anything unrecognised, including inputs shorter than the magic, is raw.
func DetectFormat(magic []byte) InputFormat {
	if IsZstd(magic) {
		return FormatZstd
	}
	if IsXZ(magic) {
		return FormatXZ
	}
	return FormatRaw
}

// IsZstd returns true if the magic bytes indicate a zstd frame
func IsZstd(magic []byte) bool {
	return len(magic) >= 4 &&
		magic[0] == 0x28 && magic[1] == 0xB5 && magic[2] == 0x2F && magic[3] == 0xFD
}

// IsXZ returns true if the magic bytes indicate an XZ file
func IsXZ(magic []byte) bool {
	return len(magic) >= 6 &&
		magic[0] == 0xFD && magic[1] == '7' && magic[2] == 'z' &&
		magic[3] == 'X' && magic[4] == 'Z' && magic[5] == 0x00
}
