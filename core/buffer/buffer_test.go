package buffer

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestBuffer_SmallInputIsLast(t *testing.T) {
	b, err := New(strings.NewReader("@a\nA\n+\nI\n"), nil, 64)
	require.NoError(t, err)
	require.True(t, b.Last())
	require.Equal(t, "@a\nA\n+\nI\n", string(b.Bytes()))
}

func TestBuffer_PrefixIsKept(t *testing.T) {
	b, err := New(strings.NewReader("a\nA\n"), []byte(">"), 16)
	require.NoError(t, err)
	require.Equal(t, ">a\nA\n", string(b.Bytes()))
}

func TestBuffer_RefillSlidesUnconsumed(t *testing.T) {
	b, err := New(strings.NewReader("0123456789abcdef"), nil, 8)
	require.NoError(t, err)
	require.False(t, b.Last())
	require.Equal(t, "01234567", string(b.Bytes()))

	require.NoError(t, b.Refill(5))
	require.Equal(t, "56789abc", string(b.Bytes()))
	require.False(t, b.Last())

	require.NoError(t, b.Refill(8))
	require.Equal(t, "def", string(b.Bytes()))
	require.True(t, b.Last())
}

func TestBuffer_GrowsWhenNothingConsumed(t *testing.T) {
	b, err := New(strings.NewReader(strings.Repeat("x", 20)), nil, 4)
	require.NoError(t, err)
	require.Len(t, b.Bytes(), 4)

	require.NoError(t, b.Refill(0))
	require.Len(t, b.Bytes(), 8)
	require.NoError(t, b.Refill(0))
	require.Len(t, b.Bytes(), 16)
	require.NoError(t, b.Refill(0))
	require.Len(t, b.Bytes(), 20)
	require.True(t, b.Last())
}

func TestBuffer_OneByteReader(t *testing.T) {
	src := "@a\nACGT\n+\nIIII\n"
	b, err := New(iotest.OneByteReader(strings.NewReader(src)), nil, 1024)
	require.NoError(t, err)
	require.True(t, b.Last())
	require.Equal(t, src, string(b.Bytes()))
}

func TestBuffer_ReadErrorSurfaces(t *testing.T) {
	boom := errors.New("boom")
	_, err := New(io.MultiReader(bytes.NewReader([]byte("ab")), iotest.ErrReader(boom)), nil, 8)
	require.ErrorIs(t, err, boom)
}

type stuckReader struct{}

func (stuckReader) Read([]byte) (int, error) { return 0, nil }

func TestBuffer_NoProgress(t *testing.T) {
	_, err := New(stuckReader{}, nil, 8)
	require.ErrorIs(t, err, io.ErrNoProgress)
}

func TestBuffer_RefillRange(t *testing.T) {
	b, err := New(strings.NewReader("abc"), nil, 8)
	require.NoError(t, err)
	require.Error(t, b.Refill(4))
	require.Error(t, b.Refill(-1))
}
