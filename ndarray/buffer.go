// Package ndarray describes borrowed, strided, typed views over
// multi-dimensional numeric memory.
//
// A Buffer never owns or copies its backing data; it only computes byte
// offsets from shape and strides. The backing slice must stay stable and
// unmutated for as long as the Buffer is in use — typically the duration of
// a single encode call.
package ndarray

import (
	"fmt"
	"math"

	"github.com/arloliu/tensorjson/endian"
	"github.com/arloliu/tensorjson/errs"
	"github.com/arloliu/tensorjson/format"
)

// Buffer is a read-only view over a multi-dimensional numeric array.
//
// Shape and Strides must have equal length. A shape of length 0 denotes a
// zero-dimensional buffer holding exactly one scalar element. Strides are in
// bytes and need not match a packed layout: padded rows and zero-stride
// broadcast views are representable without copying.
type Buffer struct {
	// Data is the borrowed backing memory. Element [0, 0, ...] lives at
	// Data[0]; all computed offsets must stay within the slice (see Validate).
	Data []byte

	// Shape holds the dimension sizes, outermost first.
	Shape []int

	// Strides holds the byte step per dimension, matching Shape.
	Strides []int

	// Kind selects how raw element bytes are decoded.
	Kind format.ElementKind

	// Engine is the byte order of the elements. Nil means host-native.
	Engine endian.EndianEngine
}

// New creates a contiguous C-order (row-major) view of kind over data with
// the given shape, computing strides automatically.
func New(kind format.ElementKind, shape []int, data []byte) *Buffer {
	strides := make([]int, len(shape))
	step := kind.Size()
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = step
		step *= shape[i]
	}

	return &Buffer{
		Data:    data,
		Shape:   shape,
		Strides: strides,
		Kind:    kind,
	}
}

// NewStrided creates a view with explicit byte strides.
func NewStrided(kind format.ElementKind, shape, strides []int, data []byte) *Buffer {
	return &Buffer{
		Data:    data,
		Shape:   shape,
		Strides: strides,
		Kind:    kind,
	}
}

// engine returns the configured byte order, defaulting to host-native.
func (b *Buffer) engine() endian.EndianEngine {
	if b.Engine != nil {
		return b.Engine
	}

	return endian.Native()
}

// NDim returns the number of dimensions.
func (b *Buffer) NDim() int {
	return len(b.Shape)
}

// Elems returns the total number of elements addressed by the view.
// A zero-dimensional buffer has exactly one element.
func (b *Buffer) Elems() int {
	n := 1
	for _, d := range b.Shape {
		n *= d
	}

	return n
}

// Contiguous reports whether the view is a packed C-order layout over
// Data[0 : Elems()*elemsize].
func (b *Buffer) Contiguous() bool {
	step := b.Kind.Size()
	for i := len(b.Shape) - 1; i >= 0; i-- {
		if b.Shape[i] > 1 && b.Strides[i] != step {
			return false
		}
		step *= b.Shape[i]
	}

	return true
}

// Validate checks the descriptor invariants: a recognized element kind,
// matching shape/stride lengths, non-negative dimension sizes, and extents
// that stay within the backing data.
func (b *Buffer) Validate() error {
	if !b.Kind.Valid() {
		return fmt.Errorf("%w: %v", errs.ErrUnsupportedElementType, b.Kind)
	}
	if len(b.Shape) != len(b.Strides) {
		return fmt.Errorf("%w: %d dims with %d strides", errs.ErrInvalidShape, len(b.Shape), len(b.Strides))
	}

	minOff, maxOff := 0, 0
	empty := false
	for i, d := range b.Shape {
		switch {
		case d < 0:
			return fmt.Errorf("%w: negative dimension %d", errs.ErrInvalidShape, d)
		case d == 0:
			empty = true
		default:
			span := (d - 1) * b.Strides[i]
			if span > 0 {
				maxOff += span
			} else {
				minOff += span
			}
		}
	}
	if empty {
		// No element is ever addressed; any backing slice is acceptable.
		return nil
	}
	if minOff < 0 || maxOff+b.Kind.Size() > len(b.Data) {
		return fmt.Errorf("%w: extents [%d, %d) exceed %d data bytes",
			errs.ErrInvalidShape, minOff, maxOff+b.Kind.Size(), len(b.Data))
	}

	return nil
}

// Element access. The byte offset is computed by the caller walking Shape
// and Strides; these methods only decode the raw bytes at that offset.

// Bool decodes the element at byte offset off as a boolean.
func (b *Buffer) Bool(off int) bool {
	return b.Data[off] != 0
}

// Int decodes the element at byte offset off as a signed integer.
// Valid for the IntN kinds only.
func (b *Buffer) Int(off int) int64 {
	e := b.engine()
	switch b.Kind {
	case format.KindInt8:
		return int64(int8(b.Data[off]))
	case format.KindInt16:
		return int64(int16(e.Uint16(b.Data[off : off+2])))
	case format.KindInt32:
		return int64(int32(e.Uint32(b.Data[off : off+4])))
	case format.KindInt64:
		return int64(e.Uint64(b.Data[off : off+8]))
	default:
		panic(fmt.Sprintf("ndarray: Int called on %v buffer", b.Kind))
	}
}

// Uint decodes the element at byte offset off as an unsigned integer.
// Valid for the UintN kinds only.
func (b *Buffer) Uint(off int) uint64 {
	e := b.engine()
	switch b.Kind {
	case format.KindUint8:
		return uint64(b.Data[off])
	case format.KindUint16:
		return uint64(e.Uint16(b.Data[off : off+2]))
	case format.KindUint32:
		return uint64(e.Uint32(b.Data[off : off+4]))
	case format.KindUint64:
		return e.Uint64(b.Data[off : off+8])
	default:
		panic(fmt.Sprintf("ndarray: Uint called on %v buffer", b.Kind))
	}
}

// Float decodes the element at byte offset off as a float64.
// Valid for the FloatN kinds only.
func (b *Buffer) Float(off int) float64 {
	e := b.engine()
	switch b.Kind {
	case format.KindFloat32:
		return float64(math.Float32frombits(e.Uint32(b.Data[off : off+4])))
	case format.KindFloat64:
		return math.Float64frombits(e.Uint64(b.Data[off : off+8]))
	default:
		panic(fmt.Sprintf("ndarray: Float called on %v buffer", b.Kind))
	}
}

// Packed returns the elements as a packed C-order little-endian byte slice,
// ready for archival. The fast path returns the backing data directly when
// the view is already contiguous and little-endian; otherwise the elements
// are gathered into a fresh slice.
func (b *Buffer) Packed() []byte {
	size := b.Kind.Size()
	total := b.Elems() * size

	if b.Contiguous() && (size == 1 || b.engine() == endian.Little()) {
		return b.Data[:total]
	}

	out := make([]byte, 0, total)

	return b.gather(out, 0, 0)
}

// gather appends elements in C order starting at dimension dim and byte
// offset off, converting to little-endian.
func (b *Buffer) gather(out []byte, dim, off int) []byte {
	if dim == len(b.Shape) {
		return b.appendElement(out, off)
	}

	for i := 0; i < b.Shape[dim]; i++ {
		out = b.gather(out, dim+1, off)
		off += b.Strides[dim]
	}

	return out
}

func (b *Buffer) appendElement(out []byte, off int) []byte {
	e := b.engine()
	le := endian.Little()
	switch b.Kind.Size() {
	case 1:
		return append(out, b.Data[off])
	case 2:
		return le.AppendUint16(out, e.Uint16(b.Data[off:off+2]))
	case 4:
		return le.AppendUint32(out, e.Uint32(b.Data[off:off+4]))
	default:
		return le.AppendUint64(out, e.Uint64(b.Data[off:off+8]))
	}
}
