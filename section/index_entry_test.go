package section

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexEntry_WriteAndRead(t *testing.T) {
	require := require.New(t)

	entries := []IndexEntry{
		{Key: 10, Offset: 0},
		{Key: 20, Offset: 100},
		{Key: 30, Offset: 250},
	}

	buf := make([]byte, IndexEntrySize*len(entries))
	offset := 0
	for _, e := range entries {
		offset = e.WriteToSlice(buf, offset)
	}
	require.Equal(len(buf), offset)

	for i, want := range entries {
		got := IndexEntryAt(buf, i)
		require.Equal(want, got)
		require.Equal(want.Key, KeyAt(buf, i))
	}
}
