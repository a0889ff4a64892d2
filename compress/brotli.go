package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"

	"github.com/seung-lab/mapbufr/errs"
)

// BrotliCodec provides Brotli compression for compression tag "br",
// backed by github.com/andybalholm/brotli (grounded via the dependency
// graph pulled in by rpcpool-yellowstone-faithful).
type BrotliCodec struct{}

var _ Codec = BrotliCodec{}

// Compress brotli-compresses data at the library's default quality.
func (c BrotliCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: brotli: %v", errs.ErrCompression, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: brotli: %v", errs.ErrCompression, err)
	}

	return buf.Bytes(), nil
}

// Decompress brotli-decompresses data.
func (c BrotliCodec) Decompress(data []byte, context string) ([]byte, error) {
	r := brotli.NewReader(bytes.NewReader(data))

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: brotli %s: %v", errs.ErrDecompression, context, err)
	}

	return out, nil
}
