package source

import (
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Mmap wraps a read-only memory-mapped file as a Source. Construction
// opens the mapping for the Source's lifetime; Close releases it.
type Mmap struct {
	m mmap.MMap
}

var _ Source = (*Mmap)(nil)

// OpenMmap opens path read-only and memory-maps its entire contents.
func OpenMmap(path string) (*Mmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source: open %s: %w", path, err)
	}
	defer f.Close()

	return NewMmap(f)
}

// NewMmap memory-maps f read-only. f may be closed by the caller once
// this call returns; the mapping itself remains valid until Close.
func NewMmap(f *os.File) (*Mmap, error) {
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("source: mmap %s: %w", f.Name(), err)
	}

	return &Mmap{m: m}, nil
}

// Len returns the length of the mapped region.
func (s *Mmap) Len() int {
	return len(s.m)
}

// ReadSlice returns a zero-copy view of the mapped region in [start, end).
func (s *Mmap) ReadSlice(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(s.m) {
		return nil, fmt.Errorf("source: slice [%d:%d] out of range for length %d", start, end, len(s.m))
	}

	return s.m[start:end], nil
}

// Close unmaps the region.
func (s *Mmap) Close() error {
	return s.m.Unmap()
}
