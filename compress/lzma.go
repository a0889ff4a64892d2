package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ulikunitz/xz/lzma"

	"github.com/seung-lab/mapbufr/errs"
)

// LZMACodec provides LZMA compression for compression tag "lzma",
// backed by github.com/ulikunitz/xz/lzma (grounded via the
// google/rpmpack dependency graph, which pulls in both andrew-d/lzma
// and ulikunitz/xz; the latter is pure Go and actively maintained, so it
// is the one mapbufr wires up).
type LZMACodec struct{}

var _ Codec = LZMACodec{}

// Compress lzma-compresses data using the library's default parameters.
func (c LZMACodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := lzma.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: lzma: %v", errs.ErrCompression, err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: lzma: %v", errs.ErrCompression, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: lzma: %v", errs.ErrCompression, err)
	}

	return buf.Bytes(), nil
}

// Decompress lzma-decompresses data.
func (c LZMACodec) Decompress(data []byte, context string) ([]byte, error) {
	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: lzma %s: %v", errs.ErrDecompression, context, err)
	}

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: lzma %s: %v", errs.ErrDecompression, context, err)
	}

	return out, nil
}
