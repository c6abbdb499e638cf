package codec

import (
	"fmt"
	"sort"

	"github.com/arloliu/tensorjson/errs"
	"github.com/arloliu/tensorjson/internal/options"
	"github.com/arloliu/tensorjson/internal/pool"
	"github.com/arloliu/tensorjson/value"
)

// Encode serializes a host value into JSON bytes.
//
// The dispatcher recognizes nil, bool, the integer and float types, string,
// time.Time, uuid.UUID, *big.Int, value.Value, *ndarray.Buffer, and
// arbitrary slices, arrays and maps via reflection. Anything else is routed
// to the fallback hook registered with WithFallback, or fails with
// errs.ErrUnsupportedType.
//
// Encode is a pure function of its inputs: it shares no state between calls
// and is safe to invoke concurrently. On failure no partial output is
// returned.
func Encode(v any, opts ...Option) ([]byte, error) {
	cfg := newEncoderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	buf := pool.GetOutputBuffer()
	defer pool.PutOutputBuffer(buf)

	enc := encoder{cfg: cfg, buf: buf}
	if err := enc.encodeAny(v, false); err != nil {
		return nil, err
	}

	if cfg.appendNewline {
		buf.B = append(buf.B, '\n')
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

// encoder is the per-call encoding context: the resolved option set, the
// output buffer, the recursion depth, and the identity stack of currently
// open containers. It is owned by exactly one Encode call.
type encoder struct {
	cfg   *EncoderConfig
	buf   *pool.ByteBuffer
	open  []uintptr
	depth int
}

// enter increments the depth counter on entering any container, enforcing
// the configured limit.
func (e *encoder) enter() error {
	e.depth++
	if e.depth > e.cfg.maxDepth {
		return fmt.Errorf("%w: depth %d", errs.ErrRecursionLimit, e.depth)
	}

	return nil
}

func (e *encoder) leave() {
	e.depth--
}

// pushRef records the identity of a container being opened and fails if the
// same container is already open, i.e. the value is reachable from itself.
// The check is identity-based, never value-based.
func (e *encoder) pushRef(ptr uintptr) error {
	if ptr != 0 {
		for _, open := range e.open {
			if open == ptr {
				return fmt.Errorf("%w", errs.ErrCircularReference)
			}
		}
	}
	e.open = append(e.open, ptr)

	return nil
}

func (e *encoder) popRef() {
	e.open = e.open[:len(e.open)-1]
}

// newlineIndent writes a line break followed by 2-space indentation for the
// given nesting level. Only called in indent mode.
func (e *encoder) newlineIndent(level int) {
	b := append(e.buf.B, '\n')
	for i := 0; i < level; i++ {
		b = append(b, ' ', ' ')
	}
	e.buf.B = b
}

// Element emission helpers shared by the sequence, object and buffer paths
// so pretty-printing stays consistent.

func (e *encoder) beginElem(first bool) {
	if !first {
		e.buf.B = append(e.buf.B, ',')
	}
	if e.cfg.indent {
		e.newlineIndent(e.depth)
	}
}

func (e *encoder) endContainer(close byte, empty bool) {
	if e.cfg.indent && !empty {
		e.newlineIndent(e.depth - 1)
	}
	e.buf.B = append(e.buf.B, close)
}

func (e *encoder) appendKeyColon(key string) error {
	if err := appendString(e.buf, key); err != nil {
		return err
	}
	e.keyColon()

	return nil
}

func (e *encoder) keyColon() {
	if e.cfg.indent {
		e.buf.B = append(e.buf.B, ':', ' ')
	} else {
		e.buf.B = append(e.buf.B, ':')
	}
}

// encodeValue walks a value.Value tree. Value graphs are cycle-free by
// construction, so only the depth guard applies.
func (e *encoder) encodeValue(v value.Value) error {
	switch v.Kind() {
	case value.KindNull:
		e.buf.B = append(e.buf.B, "null"...)
	case value.KindBool:
		e.appendBool(v.BoolVal())
	case value.KindInt:
		return e.appendInt(v.IntVal())
	case value.KindBigInt:
		return e.appendBigInt(v.BigIntVal())
	case value.KindFloat:
		e.appendFloat(v.FloatVal(), 64)
	case value.KindString:
		return appendString(e.buf, v.StringVal())
	case value.KindArray:
		return e.encodeValueArray(v.ArrayVal())
	case value.KindObject:
		return e.encodeValueObject(v.ObjectVal())
	case value.KindTimestamp:
		return e.appendTimestamp(v.TimestampVal())
	case value.KindUniqueID:
		e.appendUUID(v.UniqueIDVal())
	default:
		return fmt.Errorf("%w: value kind %v", errs.ErrUnsupportedType, v.Kind())
	}

	return nil
}

func (e *encoder) encodeValueArray(elems []value.Value) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	e.buf.B = append(e.buf.B, '[')
	for i := range elems {
		e.beginElem(i == 0)
		if err := e.encodeValue(elems[i]); err != nil {
			return err
		}
	}
	e.endContainer(']', len(elems) == 0)

	return nil
}

func (e *encoder) encodeValueObject(members []value.Member) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if e.cfg.sortKeys && len(members) > 1 {
		sorted := make([]value.Member, len(members))
		copy(sorted, members)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Key < sorted[j].Key
		})
		members = sorted
	}

	e.buf.B = append(e.buf.B, '{')
	for i := range members {
		e.beginElem(i == 0)
		if err := e.appendKeyColon(members[i].Key); err != nil {
			return err
		}
		if err := e.encodeValue(members[i].Value); err != nil {
			return err
		}
	}
	e.endContainer('}', len(members) == 0)

	return nil
}
