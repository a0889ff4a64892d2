package section

import "encoding/binary"

// IndexEntry is one 16-byte (key, offset) pair in a ByteMap index, in
// Eytzinger order. Offset is the absolute byte position, from the start
// of the buffer, of the value blob belonging to Key.
type IndexEntry struct {
	Key    uint64
	Offset uint64
}

// WriteToSlice writes the entry to data at offset and returns the next
// write position.
func (e IndexEntry) WriteToSlice(data []byte, offset int) int {
	binary.LittleEndian.PutUint64(data[offset:offset+8], e.Key)
	binary.LittleEndian.PutUint64(data[offset+8:offset+16], e.Offset)

	return offset + IndexEntrySize
}

// IndexEntryAt reinterprets the 16-byte slot at position i (0-indexed)
// within an index slice as an IndexEntry. The caller is responsible for
// bounds-checking i against the entry count.
func IndexEntryAt(index []byte, i int) IndexEntry {
	start := i * IndexEntrySize

	return IndexEntry{
		Key:    binary.LittleEndian.Uint64(index[start : start+8]),
		Offset: binary.LittleEndian.Uint64(index[start+8 : start+16]),
	}
}

// KeyAt returns only the key of the i-th index slot, used as the hot
// path for Eytzinger search (avoids decoding the offset on every probe).
func KeyAt(index []byte, i int) uint64 {
	start := i * IndexEntrySize

	return binary.LittleEndian.Uint64(index[start : start+8])
}
