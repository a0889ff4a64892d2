// Package section defines the fixed-size binary structures of the
// mapbufr wire format: the ByteMap and IntMap headers and their index
// entries. Every type here has a stable, platform-independent byte
// layout and is safe to reinterpret directly from a backing byte slice.
package section

// ByteMap layout constants.
const (
	// MagicByteMap is the 7-byte magic at the start of every ByteMap
	// buffer, spelling "mapbufr".
	MagicByteMap = "mapbufr"

	// HeaderSize is the fixed size, in bytes, of the ByteMap header.
	HeaderSize = 16

	// IndexEntrySize is the fixed size, in bytes, of one (key, offset)
	// pair in the ByteMap index.
	IndexEntrySize = 16

	// FormatVersion0 stores value blobs with no CRC-32C trailer.
	FormatVersion0 = 0
	// FormatVersion1 appends a CRC-32C trailer to every value blob.
	FormatVersion1 = 1

	// CurrentFormatVersion is the version written by the writer.
	CurrentFormatVersion = FormatVersion1
)

// IntMap layout constants.
const (
	// MagicIntMap is the 6-byte magic at the start of every IntMap
	// buffer, spelling "mapint".
	MagicIntMap = "mapint"

	// IntHeaderSize is the fixed size, in bytes, of the IntMap header.
	IntHeaderSize = 12

	// IntFormatVersion is the only IntMap format version defined.
	IntFormatVersion = 0
)
