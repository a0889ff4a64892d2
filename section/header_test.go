package section

import (
	"testing"

	"github.com/seung-lab/mapbufr/format"
	"github.com/stretchr/testify/require"
)

func TestHeader_RoundTrip(t *testing.T) {
	require := require.New(t)

	h := NewHeader(format.CompressionZstd, 42)
	b := h.Bytes()
	require.Len(b, HeaderSize)

	got, err := ParseHeader(b)
	require.NoError(err)
	require.Equal(h, got)
}

func TestParseHeader_BadMagic(t *testing.T) {
	b := NewHeader(format.CompressionNone, 1).Bytes()
	b[0] = 'x'

	_, err := ParseHeader(b)
	require.Error(t, err)
}

func TestParseHeader_TooShort(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderSize-1))
	require.Error(t, err)
}

func TestParseHeader_BadVersion(t *testing.T) {
	b := NewHeader(format.CompressionNone, 1).Bytes()
	b[7] = 9

	_, err := ParseHeader(b)
	require.Error(t, err)
}

func TestParseCompressionTag(t *testing.T) {
	require := require.New(t)

	cases := map[string]format.CompressionType{
		"none": format.CompressionNone,
		"gzip": format.CompressionGzip,
		"0br":  format.CompressionBrotli,
		"zstd": format.CompressionZstd,
		"lzma": format.CompressionLZMA,
	}
	for tag, want := range cases {
		padded := []byte("0000")
		copy(padded[4-len(tag):], tag)
		got, err := ParseCompressionTag(padded)
		require.NoError(err, tag)
		require.Equal(want, got, tag)
	}
}

func TestParseCompressionTag_Unknown(t *testing.T) {
	_, err := ParseCompressionTag([]byte("zzzz"))
	require.Error(t, err)
}

func TestDataOffset(t *testing.T) {
	require.Equal(t, HeaderSize+IndexEntrySize*3, DataOffset(3))
}
