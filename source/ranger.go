package source

// Slicer is satisfied by any user type that can hand back an arbitrary
// byte range on demand: an object backed by a remote blob store, a
// custom cache, a test double, or anything else that isn't a plain
// []byte, io.ReaderAt, or memory-mapped file.
type Slicer interface {
	Slice(start, end int) ([]byte, error)
}

// Ranger adapts a Slicer plus a known total length as a Source.
type Ranger struct {
	s    Slicer
	size int
}

var _ Source = Ranger{}

// NewRanger wraps s, whose total addressable length is size.
func NewRanger(s Slicer, size int) Ranger {
	return Ranger{s: s, size: size}
}

// Len returns the configured size.
func (r Ranger) Len() int {
	return r.size
}

// ReadSlice delegates to the wrapped Slicer.
func (r Ranger) ReadSlice(start, end int) ([]byte, error) {
	return r.s.Slice(start, end)
}
