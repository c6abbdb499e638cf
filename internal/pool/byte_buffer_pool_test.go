package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	require.Zero(t, bb.Len())
	require.Equal(t, 1024, bb.Cap())
}

func TestByteBufferWrites(t *testing.T) {
	bb := NewByteBuffer(16)

	require.NoError(t, bb.WriteByte('a'))

	n, err := bb.WriteString("bc")
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = bb.Write([]byte("def"))
	require.NoError(t, err)
	require.Equal(t, 3, n)

	require.Equal(t, "abcdef", string(bb.Bytes()))
	require.Equal(t, 6, bb.Len())
}

func TestByteBufferDirectAppend(t *testing.T) {
	// The exported slice is the hot-path contract for the encoder.
	bb := NewByteBuffer(4)
	bb.B = append(bb.B, '[')
	bb.B = append(bb.B, "1,2"...)
	bb.B = append(bb.B, ']')
	require.Equal(t, "[1,2]", string(bb.Bytes()))
}

func TestByteBufferReset(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.WriteString("content")
	c := bb.Cap()

	bb.Reset()
	require.Zero(t, bb.Len())
	require.Equal(t, c, bb.Cap(), "Reset should retain capacity")
}

func TestByteBufferTruncate(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.WriteString("abcdef")

	bb.Truncate(3)
	require.Equal(t, "abc", string(bb.Bytes()))

	require.Panics(t, func() { bb.Truncate(-1) })
	require.Panics(t, func() { bb.Truncate(4) })
}

func TestByteBufferWriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	_, _ = bb.WriteString("payload")

	var sink bytes.Buffer
	n, err := bb.WriteTo(&sink)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)
	require.Equal(t, "payload", sink.String())
}

func TestByteBufferGrow(t *testing.T) {
	t.Run("no realloc when room available", func(t *testing.T) {
		bb := NewByteBuffer(64)
		c := bb.Cap()
		bb.Grow(32)
		require.Equal(t, c, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.Grow(100)
		require.GreaterOrEqual(t, bb.Cap(), OutputBufferDefaultSize)
	})

	t.Run("large request satisfied exactly", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.Grow(OutputBufferDefaultSize * 3)
		require.GreaterOrEqual(t, bb.Cap()-bb.Len(), OutputBufferDefaultSize*3)
	})

	t.Run("content preserved across growth", func(t *testing.T) {
		bb := NewByteBuffer(4)
		_, _ = bb.WriteString("keep")
		bb.Grow(OutputBufferDefaultSize)
		require.Equal(t, "keep", string(bb.Bytes()))
	})
}

// =============================================================================
// ByteBufferPool Tests
// =============================================================================

func TestByteBufferPool(t *testing.T) {
	t.Run("get returns empty buffer", func(t *testing.T) {
		p := NewByteBufferPool(32, 1024)

		bb := p.Get()
		require.NotNil(t, bb)
		require.Zero(t, bb.Len())

		_, _ = bb.WriteString("dirty")
		p.Put(bb)

		again := p.Get()
		require.Zero(t, again.Len(), "pooled buffer should come back reset")
	})

	t.Run("oversized buffer dropped", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)

		bb := p.Get()
		bb.B = make([]byte, 0, 128)
		require.NotPanics(t, func() { p.Put(bb) })
		require.NotNil(t, p.Get())
	})

	t.Run("nil put ignored", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)
		require.NotPanics(t, func() { p.Put(nil) })
	})
}

func TestDefaultOutputPool(t *testing.T) {
	bb := GetOutputBuffer()
	require.NotNil(t, bb)
	require.Zero(t, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), OutputBufferDefaultSize)

	_, _ = bb.WriteString("x")
	PutOutputBuffer(bb)
}
