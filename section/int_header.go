package section

import (
	"encoding/binary"
	"fmt"

	"github.com/seung-lab/mapbufr/errs"
	"github.com/seung-lab/mapbufr/format"
)

// IntHeader represents the fixed 12-byte header at the start of an
// IntMap buffer.
type IntHeader struct {
	Version  uint8
	KeyClass format.NumberClass
	ValClass format.NumberClass
	Width    format.Width
	Count    uint32
}

// TypeDescriptor packs (key_class<<5)|(val_class<<2)|log2(width) into a
// single byte.
func (h IntHeader) TypeDescriptor() byte {
	return byte(h.KeyClass)<<5 | byte(h.ValClass)<<2 | h.Width.Log2()
}

// NewIntHeader creates a header for a freshly built IntMap. Key and
// value widths must match (spec constraint: key width == value width).
func NewIntHeader(keyClass, valClass format.NumberClass, width format.Width, count uint32) IntHeader {
	return IntHeader{
		Version:  IntFormatVersion,
		KeyClass: keyClass,
		ValClass: valClass,
		Width:    width,
		Count:    count,
	}
}

// Bytes serializes the header into a 12-byte slice.
func (h IntHeader) Bytes() []byte {
	b := make([]byte, IntHeaderSize)
	copy(b[0:6], MagicIntMap)
	b[6] = h.Version
	b[7] = h.TypeDescriptor()
	binary.LittleEndian.PutUint32(b[8:12], h.Count)

	return b
}

// ParseIntHeader parses the 12-byte header at the start of data.
func ParseIntHeader(data []byte) (IntHeader, error) {
	if len(data) < IntHeaderSize {
		return IntHeader{}, fmt.Errorf("%w: buffer shorter than header (%d bytes)", errs.ErrValidation, len(data))
	}

	if string(data[0:6]) != MagicIntMap {
		return IntHeader{}, fmt.Errorf("%w: magic mismatch, got %q", errs.ErrValidation, data[0:6])
	}

	version := data[6]
	if version != IntFormatVersion {
		return IntHeader{}, fmt.Errorf("%w: unsupported format version %d", errs.ErrValidation, version)
	}

	typeByte := data[7]
	count := binary.LittleEndian.Uint32(data[8:12])

	return IntHeader{
		Version:  version,
		KeyClass: format.NumberClass((typeByte >> 5) & 0x3),
		ValClass: format.NumberClass((typeByte >> 2) & 0x3),
		Width:    format.WidthFromLog2(typeByte & 0x3),
		Count:    count,
	}, nil
}

// IntIndexOffset is the byte offset where the IntMap's (key, value) slots
// begin.
const IntIndexOffset = IntHeaderSize

// IntSlotSize returns the size, in bytes, of one (key, value) slot for
// the given width.
func IntSlotSize(width format.Width) int {
	return 2 * int(width)
}
