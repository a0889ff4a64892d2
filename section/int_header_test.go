package section

import (
	"testing"

	"github.com/seung-lab/mapbufr/format"
	"github.com/stretchr/testify/require"
)

func TestIntHeader_RoundTrip(t *testing.T) {
	require := require.New(t)

	h := NewIntHeader(format.ClassUnsigned, format.ClassSigned, format.Width4, 19)
	b := h.Bytes()
	require.Len(b, IntHeaderSize)

	got, err := ParseIntHeader(b)
	require.NoError(err)
	require.Equal(h, got)
}

func TestIntHeader_TypeDescriptor(t *testing.T) {
	h := NewIntHeader(format.ClassFloating, format.ClassFloating, format.Width8, 1)
	require.Equal(t, byte(format.ClassFloating)<<5|byte(format.ClassFloating)<<2|3, h.TypeDescriptor())
}

func TestParseIntHeader_BadMagic(t *testing.T) {
	b := NewIntHeader(format.ClassUnsigned, format.ClassUnsigned, format.Width1, 1).Bytes()
	b[0] = 'x'

	_, err := ParseIntHeader(b)
	require.Error(t, err)
}

func TestIntSlotSize(t *testing.T) {
	require.Equal(t, 8, IntSlotSize(format.Width4))
	require.Equal(t, 16, IntSlotSize(format.Width8))
}
