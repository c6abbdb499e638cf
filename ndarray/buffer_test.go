package ndarray

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tensorjson/endian"
	"github.com/arloliu/tensorjson/errs"
	"github.com/arloliu/tensorjson/format"
)

// ==============================================================================
// Helper Functions
// ==============================================================================

func f64Bytes(e endian.EndianEngine, vals ...float64) []byte {
	out := make([]byte, 0, len(vals)*8)
	for _, v := range vals {
		out = e.AppendUint64(out, math.Float64bits(v))
	}

	return out
}

func i32Bytes(e endian.EndianEngine, vals ...int32) []byte {
	out := make([]byte, 0, len(vals)*4)
	for _, v := range vals {
		out = e.AppendUint32(out, uint32(v))
	}

	return out
}

// ==============================================================================
// Construction Tests
// ==============================================================================

func TestNewComputesRowMajorStrides(t *testing.T) {
	b := New(format.KindFloat64, []int{2, 3, 4}, make([]byte, 2*3*4*8))
	require.Equal(t, []int{96, 32, 8}, b.Strides)
	require.Equal(t, 3, b.NDim())
	require.Equal(t, 24, b.Elems())
	require.True(t, b.Contiguous())
	require.NoError(t, b.Validate())
}

func TestZeroDimBuffer(t *testing.T) {
	b := New(format.KindFloat64, nil, make([]byte, 8))
	require.Zero(t, b.NDim())
	require.Equal(t, 1, b.Elems())
	require.True(t, b.Contiguous())
	require.NoError(t, b.Validate())
}

func TestNewStrided(t *testing.T) {
	b := NewStrided(format.KindInt32, []int{2, 2}, []int{16, 4}, make([]byte, 32))
	require.Equal(t, []int{16, 4}, b.Strides)
	require.False(t, b.Contiguous())
	require.NoError(t, b.Validate())
}

// ==============================================================================
// Validate Tests
// ==============================================================================

func TestValidate(t *testing.T) {
	t.Run("UnknownKind", func(t *testing.T) {
		b := &Buffer{Data: []byte{0}, Kind: format.ElementKind(0x7F)}
		require.ErrorIs(t, b.Validate(), errs.ErrUnsupportedElementType)
	})

	t.Run("ShapeStrideLengthMismatch", func(t *testing.T) {
		b := &Buffer{Data: make([]byte, 8), Shape: []int{1, 1}, Strides: []int{8}, Kind: format.KindFloat64}
		require.ErrorIs(t, b.Validate(), errs.ErrInvalidShape)
	})

	t.Run("NegativeDimension", func(t *testing.T) {
		b := NewStrided(format.KindFloat64, []int{-2}, []int{8}, make([]byte, 16))
		require.ErrorIs(t, b.Validate(), errs.ErrInvalidShape)
	})

	t.Run("ExtentPastEnd", func(t *testing.T) {
		b := New(format.KindFloat64, []int{3}, make([]byte, 16))
		require.ErrorIs(t, b.Validate(), errs.ErrInvalidShape)
	})

	t.Run("ExactFit", func(t *testing.T) {
		b := New(format.KindFloat64, []int{2}, make([]byte, 16))
		require.NoError(t, b.Validate())
	})

	t.Run("NegativeStrideRejected", func(t *testing.T) {
		// A reversed view would address below Data[0].
		b := NewStrided(format.KindInt32, []int{2}, []int{-4}, make([]byte, 8))
		require.ErrorIs(t, b.Validate(), errs.ErrInvalidShape)
	})

	t.Run("EmptyDimensionSkipsExtentCheck", func(t *testing.T) {
		b := New(format.KindFloat64, []int{0, 5}, nil)
		require.NoError(t, b.Validate())
	})

	t.Run("ZeroStrideBroadcast", func(t *testing.T) {
		b := NewStrided(format.KindFloat64, []int{100}, []int{0}, make([]byte, 8))
		require.NoError(t, b.Validate())
	})
}

// ==============================================================================
// Element Access Tests
// ==============================================================================

func TestElementDecoding(t *testing.T) {
	le := endian.Little()

	t.Run("Bool", func(t *testing.T) {
		b := New(format.KindBool, []int{3}, []byte{0, 1, 255})
		require.False(t, b.Bool(0))
		require.True(t, b.Bool(1))
		require.True(t, b.Bool(2))
	})

	t.Run("SignedWidths", func(t *testing.T) {
		b8 := New(format.KindInt8, []int{1}, []byte{0x80})
		require.Equal(t, int64(-128), b8.Int(0))

		b16 := &Buffer{Data: le.AppendUint16(nil, 0x8000), Shape: []int{1}, Strides: []int{2}, Kind: format.KindInt16, Engine: le}
		require.Equal(t, int64(-32768), b16.Int(0))

		b64 := &Buffer{Data: le.AppendUint64(nil, uint64(1)<<63), Shape: []int{1}, Strides: []int{8}, Kind: format.KindInt64, Engine: le}
		require.Equal(t, int64(math.MinInt64), b64.Int(0))
	})

	t.Run("UnsignedWidths", func(t *testing.T) {
		b := &Buffer{Data: le.AppendUint64(nil, math.MaxUint64), Shape: []int{1}, Strides: []int{8}, Kind: format.KindUint64, Engine: le}
		require.Equal(t, uint64(math.MaxUint64), b.Uint(0))
	})

	t.Run("Floats", func(t *testing.T) {
		b := &Buffer{Data: f64Bytes(le, -2.5), Shape: []int{1}, Strides: []int{8}, Kind: format.KindFloat64, Engine: le}
		require.Equal(t, -2.5, b.Float(0))

		f32 := le.AppendUint32(nil, math.Float32bits(1.5))
		b32 := &Buffer{Data: f32, Shape: []int{1}, Strides: []int{4}, Kind: format.KindFloat32, Engine: le}
		require.Equal(t, 1.5, b32.Float(0))
	})

	t.Run("BigEndianSource", func(t *testing.T) {
		be := endian.Big()
		b := &Buffer{Data: be.AppendUint32(nil, 0x01020304), Shape: []int{1}, Strides: []int{4}, Kind: format.KindUint32, Engine: be}
		require.Equal(t, uint64(0x01020304), b.Uint(0))
	})
}

// ==============================================================================
// Packed Tests
// ==============================================================================

func TestPacked(t *testing.T) {
	le := endian.Little()

	t.Run("ContiguousLittleEndianIsZeroCopy", func(t *testing.T) {
		data := i32Bytes(le, 1, 2, 3, 4)
		b := &Buffer{Data: data, Shape: []int{4}, Strides: []int{4}, Kind: format.KindInt32, Engine: le}

		packed := b.Packed()
		require.Equal(t, data, packed)
		require.Same(t, &data[0], &packed[0], "contiguous view must not copy")
	})

	t.Run("StridedViewGathers", func(t *testing.T) {
		// Transposed 2x3 -> 3x2 must gather in view order.
		data := i32Bytes(le, 1, 2, 3, 4, 5, 6)
		b := &Buffer{Data: data, Shape: []int{3, 2}, Strides: []int{4, 12}, Kind: format.KindInt32, Engine: le}

		require.Equal(t, i32Bytes(le, 1, 4, 2, 5, 3, 6), b.Packed())
	})

	t.Run("BigEndianConvertsToLittle", func(t *testing.T) {
		be := endian.Big()
		b := &Buffer{Data: be.AppendUint32(nil, 0xAABBCCDD), Shape: []int{1}, Strides: []int{4}, Kind: format.KindUint32, Engine: be}

		require.Equal(t, le.AppendUint32(nil, 0xAABBCCDD), b.Packed())
	})

	t.Run("SingleByteKindIgnoresEndianness", func(t *testing.T) {
		be := endian.Big()
		b := &Buffer{Data: []byte{1, 2, 3}, Shape: []int{3}, Strides: []int{1}, Kind: format.KindUint8, Engine: be}

		require.Equal(t, []byte{1, 2, 3}, b.Packed())
	})

	t.Run("ZeroDim", func(t *testing.T) {
		data := f64Bytes(le, 7.0)
		b := &Buffer{Data: data, Kind: format.KindFloat64, Engine: le}

		require.Equal(t, data, b.Packed())
	})

	t.Run("TruncatesOversizedBacking", func(t *testing.T) {
		// Contiguous view over the first half of a larger slice.
		data := i32Bytes(le, 1, 2, 3, 4)
		b := &Buffer{Data: data, Shape: []int{2}, Strides: []int{4}, Kind: format.KindInt32, Engine: le}

		require.Equal(t, i32Bytes(le, 1, 2), b.Packed())
	})
}
