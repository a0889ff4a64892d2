// Package compress implements mapbufr's codec set.
//
// Five compression tags are defined: "none" (identity), "gzip"
// (compress/gzip), "br" (andybalholm/brotli), "zstd"
// (klauspost/compress/zstd, with pooled encoders/decoders), and "lzma"
// (ulikunitz/xz/lzma). A map is built with exactly one codec, persisted
// as a 4-byte ASCII tag in its header, and applied uniformly to every
// value.
package compress
