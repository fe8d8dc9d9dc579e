package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, 1024, cap(bb.B))
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)

	n, err := bb.Write([]byte("Level"))
	require.NoError(t, err)
	require.Equal(t, 5, n)

	require.NoError(t, bb.WriteByte(0x0A))
	_, err = bb.WriteString("ab")
	require.NoError(t, err)

	require.Equal(t, []byte("Level\x0aab"), bb.Bytes())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(TagBufferDefaultSize)
	_, _ = bb.Write([]byte("some data"))
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, bb.Len())
	assert.Equal(t, originalCap, cap(bb.B))
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(64)
		bb.Grow(32)
		require.Equal(t, 64, cap(bb.B))
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		_, _ = bb.Write([]byte("12345678"))
		bb.Grow(1)
		require.Equal(t, 8+TagBufferDefaultSize, cap(bb.B))
		require.Equal(t, []byte("12345678"), bb.Bytes())
	})

	t.Run("large request", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.Grow(TagBufferDefaultSize * 3)
		require.GreaterOrEqual(t, cap(bb.B), TagBufferDefaultSize*3)
	})
}

func TestByteBuffer_Zero(t *testing.T) {
	bb := NewByteBuffer(4)
	_, _ = bb.Write([]byte{9, 9, 9, 9})
	bb.Reset()
	_, _ = bb.Write([]byte{9, 9})

	// reuses the dirty tail of the backing array
	bb.Zero(2)
	require.Equal(t, []byte{9, 9, 0, 0}, bb.Bytes())

	bb.Zero(3)
	require.Equal(t, []byte{9, 9, 0, 0, 0, 0, 0}, bb.Bytes())
}

func TestByteBuffer_WriteToAndClone(t *testing.T) {
	bb := NewByteBuffer(16)
	_, _ = bb.Write([]byte("region"))

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(6), n)
	require.Equal(t, "region", out.String())

	clone := bb.Clone()
	bb.Reset()
	_, _ = bb.Write([]byte("XXXXXX"))
	require.Equal(t, []byte("region"), clone)
}

func TestByteBufferPool(t *testing.T) {
	t.Run("get returns empty buffer", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		bb := p.Get()
		require.NotNil(t, bb)
		require.Equal(t, 0, bb.Len())

		_, _ = bb.Write([]byte("data"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("put nil is ignored", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(8, 16)
		bb := NewByteBuffer(64)
		require.NotPanics(t, func() { p.Put(bb) })
	})

	t.Run("default pools", func(t *testing.T) {
		tb := GetTagBuffer()
		require.NotNil(t, tb)
		PutTagBuffer(tb)

		rb := GetRegionBuffer()
		require.NotNil(t, rb)
		PutRegionBuffer(rb)
	})
}
