package codec

import (
	"github.com/arloliu/tensorjson/format"
	"github.com/arloliu/tensorjson/ndarray"
)

// encodeBuffer walks a numeric buffer into nested JSON arrays without
// materializing intermediate copies: traversal is stride-driven, consuming
// one leading dimension per recursion level until only the scalar element
// remains.
//
// The buffer path is gated by WithSerializeBuffers; without it, and under
// WithPassthroughBuffers, the whole buffer is routed to the fallback hook
// like any unrecognized value. An unsupported element kind surfaces from
// Validate.
func (e *encoder) encodeBuffer(b *ndarray.Buffer, viaFallback bool) error {
	if !e.cfg.serializeBuffers || e.cfg.passthroughBuffers {
		return e.dispatchFallback(b, viaFallback)
	}

	if err := b.Validate(); err != nil {
		return err
	}

	return e.emitDim(b, 0, 0)
}

// emitDim emits the sub-array starting at dimension dim and byte offset off.
// When shape is exhausted the single remaining element is emitted as a bare
// scalar; in particular a zero-dimensional buffer produces a scalar with no
// enclosing brackets.
func (e *encoder) emitDim(b *ndarray.Buffer, dim, off int) error {
	if dim == b.NDim() {
		return e.emitBufferScalar(b, off)
	}

	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	n := b.Shape[dim]
	e.buf.B = append(e.buf.B, '[')
	for i := 0; i < n; i++ {
		e.beginElem(i == 0)
		if err := e.emitDim(b, dim+1, off); err != nil {
			return err
		}
		off += b.Strides[dim]
	}
	e.endContainer(']', n == 0)

	return nil
}

func (e *encoder) emitBufferScalar(b *ndarray.Buffer, off int) error {
	switch b.Kind {
	case format.KindBool:
		e.appendBool(b.Bool(off))
	case format.KindInt8, format.KindInt16, format.KindInt32, format.KindInt64:
		return e.appendInt(b.Int(off))
	case format.KindUint8, format.KindUint16, format.KindUint32, format.KindUint64:
		return e.appendUint(b.Uint(off))
	case format.KindFloat32:
		e.appendFloat(b.Float(off), 32)
	case format.KindFloat64:
		e.appendFloat(b.Float(off), 64)
	}

	return nil
}
