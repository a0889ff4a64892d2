package compress

import (
	"fmt"

	"github.com/seung-lab/mapbufr/errs"
	"github.com/seung-lab/mapbufr/format"
)

// Codec compresses and decompresses whole value blobs. Every method is
// safe for concurrent use; codecs that need per-call state (zstd) pool it
// internally.
type Codec interface {
	// Compress returns the compressed form of data.
	Compress(data []byte) ([]byte, error)
	// Decompress returns the decompressed form of data. context is a
	// short human-readable label (e.g. a key) folded into any error,
	// to help trace which value blob failed to decompress.
	Decompress(data []byte, context string) ([]byte, error)
}

// CreateCodec returns the Codec implementing compression tag t.
func CreateCodec(t format.CompressionType) (Codec, error) {
	switch t {
	case format.CompressionNone:
		return NoOpCodec{}, nil
	case format.CompressionGzip:
		return GzipCodec{}, nil
	case format.CompressionBrotli:
		return BrotliCodec{}, nil
	case format.CompressionZstd:
		return NewZstdCodec(), nil
	case format.CompressionLZMA:
		return LZMACodec{}, nil
	default:
		return nil, fmt.Errorf("%w: tag %d", errs.ErrUnsupportedCompression, t)
	}
}

// Registry maps every known compression tag to its Codec. Unlike a
// package-level singleton, a Registry is a plain value: callers that want
// to swap in a test double or restrict the accepted codec set build their
// own instead of mutating shared global state.
type Registry map[format.CompressionType]Codec

// Default builds a Registry containing all five built-in codecs.
func Default() Registry {
	r := make(Registry, 5)
	for _, t := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionGzip,
		format.CompressionBrotli,
		format.CompressionZstd,
		format.CompressionLZMA,
	} {
		codec, err := CreateCodec(t)
		if err != nil {
			// Unreachable: t ranges only over tags CreateCodec recognizes.
			panic(fmt.Sprintf("compress: default registry: %v", err))
		}
		r[t] = codec
	}

	return r
}

// Get returns the codec registered for t.
func (r Registry) Get(t format.CompressionType) (Codec, error) {
	codec, ok := r[t]
	if !ok {
		return nil, fmt.Errorf("%w: tag %d", errs.ErrUnsupportedCompression, t)
	}

	return codec, nil
}
