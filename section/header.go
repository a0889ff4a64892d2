package section

import (
	"encoding/binary"
	"fmt"

	"github.com/seung-lab/mapbufr/errs"
	"github.com/seung-lab/mapbufr/format"
)

// Header represents the fixed 16-byte header at the start of a ByteMap
// buffer.
type Header struct {
	// Version is the format version, 0 or 1. Version 1 appends a
	// CRC-32C trailer to every value blob; version 0 does not.
	Version uint8
	// Compression is the codec applied to every value in the map.
	Compression format.CompressionType
	// Count is the number of keys stored in the map.
	Count uint32
}

// NewHeader creates a header for a freshly built map.
func NewHeader(compression format.CompressionType, count uint32) Header {
	return Header{
		Version:     CurrentFormatVersion,
		Compression: compression,
		Count:       count,
	}
}

// Bytes serializes the header into a 16-byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	copy(b[0:7], MagicByteMap)
	b[7] = h.Version
	copy(b[8:12], h.Compression.Tag())
	binary.LittleEndian.PutUint32(b[12:16], h.Count)

	return b
}

// ParseHeader parses the 16-byte header at the start of data.
//
// Structural validation (magic, version) is performed eagerly here since
// the header must be parsed before anything else can happen; CRC and
// offset-ordering checks remain lazy, per the lookup path.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: buffer shorter than header (%d bytes)", errs.ErrValidation, len(data))
	}

	if string(data[0:7]) != MagicByteMap {
		return Header{}, fmt.Errorf("%w: magic mismatch, got %q", errs.ErrValidation, data[0:7])
	}

	version := data[7]
	if version != FormatVersion0 && version != FormatVersion1 {
		return Header{}, fmt.Errorf("%w: unsupported format version %d", errs.ErrValidation, version)
	}

	compression, err := ParseCompressionTag(data[8:12])
	if err != nil {
		return Header{}, err
	}

	count := binary.LittleEndian.Uint32(data[12:16])

	return Header{
		Version:     version,
		Compression: compression,
		Count:       count,
	}, nil
}

// ParseCompressionTag decodes a 4-byte right-justified, zero-padded
// ASCII compression tag, matching case-insensitively against the known
// codec set.
func ParseCompressionTag(tag []byte) (format.CompressionType, error) {
	trimmed := make([]byte, 0, 4)
	for _, c := range tag {
		if c == '0' && len(trimmed) == 0 {
			continue
		}
		trimmed = append(trimmed, c|0x20) // ascii lowercase
	}

	switch string(trimmed) {
	case "none":
		return format.CompressionNone, nil
	case "gzip":
		return format.CompressionGzip, nil
	case "br":
		return format.CompressionBrotli, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "lzma":
		return format.CompressionLZMA, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnsupportedCompression, tag)
	}
}

// IndexOffset is the byte offset where the index section begins; the
// header always occupies bytes [0, HeaderSize).
const IndexOffset = HeaderSize

// DataOffset returns the byte offset where the data region begins for a
// map with the given key count.
func DataOffset(count int) int {
	return HeaderSize + IndexEntrySize*count
}
