package source

import "io"

// ReaderAt adapts anything implementing io.ReaderAt (a seekable file
// opened without mmap, an S3 object handle, ...) as a Source of known
// total length, performing one read per ReadSlice call.
type ReaderAt struct {
	r    io.ReaderAt
	size int
}

var _ Source = ReaderAt{}

// NewReaderAt wraps r, whose total addressable length is size.
func NewReaderAt(r io.ReaderAt, size int) ReaderAt {
	return ReaderAt{r: r, size: size}
}

// Len returns the configured size.
func (s ReaderAt) Len() int {
	return s.size
}

// ReadSlice reads the bytes in [start, end) via a single ReadAt call.
func (s ReaderAt) ReadSlice(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > s.size {
		return nil, io.ErrUnexpectedEOF
	}

	buf := make([]byte, end-start)
	if _, err := s.r.ReadAt(buf, int64(start)); err != nil {
		return nil, err
	}

	return buf, nil
}
