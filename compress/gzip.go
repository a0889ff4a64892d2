package compress

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/seung-lab/mapbufr/errs"
)

// GzipCodec provides gzip compression for compression tag "gzip".
//
// No third-party gzip wrapper appears anywhere in the example corpus, so
// this codec is implemented directly against the standard library -
// gzip's own framing (and the DEFLATE algorithm beneath it) offers
// nothing a wrapper library would improve on for mapbufr's one-shot,
// whole-value-at-a-time usage.
type GzipCodec struct{}

var _ Codec = GzipCodec{}

// Compress gzip-compresses data at the default compression level.
func (c GzipCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: gzip: %v", errs.ErrCompression, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%w: gzip: %v", errs.ErrCompression, err)
	}

	return buf.Bytes(), nil
}

// Decompress gzip-decompresses data.
func (c GzipCodec) Decompress(data []byte, context string) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: gzip %s: %v", errs.ErrDecompression, context, err)
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: gzip %s: %v", errs.ErrDecompression, context, err)
	}

	return out, nil
}
