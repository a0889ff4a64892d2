package bytemap

import (
	"go.uber.org/zap"

	"github.com/seung-lab/mapbufr/format"
	"github.com/seung-lab/mapbufr/internal/options"
)

// WriterOptions configures Build.
type WriterOptions struct {
	// Compression is the codec applied to every value. Defaults to
	// CompressionNone.
	Compression format.CompressionType
	// Logger receives debug-level diagnostics (entry count, compressed
	// size, codec chosen). The default is a no-op logger, which disables
	// logging; WithWriterLogger(nil) leaves it in place.
	Logger *zap.Logger
}

// DefaultWriterOptions returns the options Build uses when none are
// supplied.
func DefaultWriterOptions() WriterOptions {
	return WriterOptions{
		Compression: format.CompressionNone,
		Logger:      zap.NewNop(),
	}
}

// WriterOption configures a WriterOptions value.
type WriterOption = options.Option[*WriterOptions]

// WithCompression selects the codec applied to every value in the map.
func WithCompression(c format.CompressionType) WriterOption {
	return options.NoError(func(o *WriterOptions) {
		o.Compression = c
	})
}

// WithWriterLogger attaches a logger for build-time diagnostics.
func WithWriterLogger(l *zap.Logger) WriterOption {
	return options.NoError(func(o *WriterOptions) {
		if l != nil {
			o.Logger = l
		}
	})
}

// ReaderOptions configures Open.
type ReaderOptions struct {
	// Logger receives debug-level diagnostics (header parse, codec
	// resolution). The default is a no-op logger, which disables logging;
	// WithReaderLogger(nil) leaves it in place.
	Logger *zap.Logger
	// CheckCRC verifies each value's CRC-32C trailer on every read.
	// Defaults to true; disable only for trusted, performance-critical
	// reads where the cost of a redundant check has been measured.
	CheckCRC bool
}

// DefaultReaderOptions returns the options Open uses when none are
// supplied.
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{Logger: zap.NewNop(), CheckCRC: true}
}

// ReaderOption configures a ReaderOptions value.
type ReaderOption = options.Option[*ReaderOptions]

// WithReaderLogger attaches a logger for open-time diagnostics.
func WithReaderLogger(l *zap.Logger) ReaderOption {
	return options.NoError(func(o *ReaderOptions) {
		if l != nil {
			o.Logger = l
		}
	})
}

// WithCRCCheck enables or disables per-read CRC-32C verification.
func WithCRCCheck(enabled bool) ReaderOption {
	return options.NoError(func(o *ReaderOptions) {
		o.CheckCRC = enabled
	})
}
