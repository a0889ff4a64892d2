package source

import "fmt"

// Bytes adapts an in-memory []byte as a Source (and WritableSource, for
// the ByteMap Set operation).
type Bytes struct {
	buf []byte
}

var (
	_ Source         = Bytes{}
	_ WritableSource = Bytes{}
)

// NewBytes wraps buf. The Source borrows buf; the caller must not let
// buf be garbage collected or resized out from under a live reader.
func NewBytes(buf []byte) Bytes {
	return Bytes{buf: buf}
}

// Len returns len(buf).
func (b Bytes) Len() int {
	return len(b.buf)
}

// ReadSlice returns buf[start:end].
func (b Bytes) ReadSlice(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(b.buf) {
		return nil, fmt.Errorf("source: slice [%d:%d] out of range for length %d", start, end, len(b.buf))
	}

	return b.buf[start:end], nil
}

// WriteSlice overwrites buf[start:start+len(data)] with data.
func (b Bytes) WriteSlice(start int, data []byte) error {
	end := start + len(data)
	if start < 0 || end > len(b.buf) {
		return fmt.Errorf("source: write [%d:%d] out of range for length %d", start, end, len(b.buf))
	}

	copy(b.buf[start:end], data)

	return nil
}

// Bytes returns the underlying buffer.
func (b Bytes) Bytes() []byte {
	return b.buf
}
