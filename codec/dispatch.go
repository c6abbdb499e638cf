package codec

import (
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/tensorjson/errs"
	"github.com/arloliu/tensorjson/ndarray"
	"github.com/arloliu/tensorjson/value"
)

// encodeAny classifies a host value and routes it to the matching writer.
//
// viaFallback marks a value that was substituted by the fallback hook: the
// substitute is dispatched once, and if it is unsupported too the call fails
// instead of invoking the hook again. Children of the substitute are fresh
// dispatches with the hook available.
func (e *encoder) encodeAny(v any, viaFallback bool) error {
	switch tv := v.(type) {
	case nil:
		e.buf.B = append(e.buf.B, "null"...)
	case bool:
		e.appendBool(tv)
	case string:
		return appendString(e.buf, tv)
	case int:
		return e.appendInt(int64(tv))
	case int8:
		return e.appendInt(int64(tv))
	case int16:
		return e.appendInt(int64(tv))
	case int32:
		return e.appendInt(int64(tv))
	case int64:
		return e.appendInt(tv)
	case uint:
		return e.appendUint(uint64(tv))
	case uint8:
		return e.appendUint(uint64(tv))
	case uint16:
		return e.appendUint(uint64(tv))
	case uint32:
		return e.appendUint(uint64(tv))
	case uint64:
		return e.appendUint(tv)
	case float32:
		e.appendFloat(float64(tv), 32)
	case float64:
		e.appendFloat(tv, 64)
	case *big.Int:
		if tv == nil {
			e.buf.B = append(e.buf.B, "null"...)
			return nil
		}

		return e.appendBigInt(tv)
	case time.Time:
		return e.appendTimestamp(value.Timestamp{Time: tv, HasOffset: true})
	case value.Timestamp:
		return e.appendTimestamp(tv)
	case uuid.UUID:
		e.appendUUID(tv)
	case value.Value:
		return e.encodeValue(tv)
	case *ndarray.Buffer:
		if tv == nil {
			e.buf.B = append(e.buf.B, "null"...)
			return nil
		}

		return e.encodeBuffer(tv, viaFallback)
	case ndarray.Buffer:
		return e.encodeBuffer(&tv, viaFallback)
	case []byte:
		// Raw bytes have no JSON representation; let the caller decide.
		return e.dispatchFallback(v, viaFallback)
	case []any:
		return e.encodeSlice(tv)
	case map[string]any:
		return e.encodeStringMap(tv)
	default:
		return e.encodeReflect(v, viaFallback)
	}

	return nil
}

// dispatchFallback hands an unrecognized value to the user hook, or fails
// with the value's runtime type when no hook applies.
func (e *encoder) dispatchFallback(v any, viaFallback bool) error {
	if viaFallback || e.cfg.fallback == nil {
		return fmt.Errorf("%w: %T", errs.ErrUnsupportedType, v)
	}

	sub, err := e.cfg.fallback(v)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrFallbackFailed, err)
	}

	return e.encodeAny(sub, true)
}

// encodeSlice is the fast path for []any.
func (e *encoder) encodeSlice(vs []any) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	var ptr uintptr
	if len(vs) > 0 {
		ptr = reflect.ValueOf(vs).Pointer()
	}
	if err := e.pushRef(ptr); err != nil {
		return err
	}
	defer e.popRef()

	e.buf.B = append(e.buf.B, '[')
	for i := range vs {
		e.beginElem(i == 0)
		if err := e.encodeAny(vs[i], false); err != nil {
			return err
		}
	}
	e.endContainer(']', len(vs) == 0)

	return nil
}

// mapEntry pairs a coerced key with its value so map emission can sort
// deterministically before writing.
type mapEntry struct {
	key string
	val any
}

// encodeStringMap is the fast path for map[string]any.
func (e *encoder) encodeStringMap(m map[string]any) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	var ptr uintptr
	if m != nil {
		ptr = reflect.ValueOf(m).Pointer()
	}
	if err := e.pushRef(ptr); err != nil {
		return err
	}
	defer e.popRef()

	entries := make([]mapEntry, 0, len(m))
	for k, v := range m {
		entries = append(entries, mapEntry{key: k, val: v})
	}

	return e.emitEntries(entries)
}

// emitEntries writes collected map entries, sorting by byte-wise key
// comparison when requested. Duplicate coerced keys are written as-is.
func (e *encoder) emitEntries(entries []mapEntry) error {
	if e.cfg.sortKeys && len(entries) > 1 {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].key < entries[j].key
		})
	}

	e.buf.B = append(e.buf.B, '{')
	for i := range entries {
		e.beginElem(i == 0)
		if err := e.appendKeyColon(entries[i].key); err != nil {
			return err
		}
		if err := e.encodeAny(entries[i].val, false); err != nil {
			return err
		}
	}
	e.endContainer('}', len(entries) == 0)

	return nil
}

// encodeReflect handles the host types without a fast path: arbitrary slice,
// array and map types, plus pointer and interface indirection. Structs and
// everything else fall through to the fallback hook.
func (e *encoder) encodeReflect(v any, viaFallback bool) error {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			e.buf.B = append(e.buf.B, "null"...)
			return nil
		}

		// Indirection is guarded like a container: the identity check fails a
		// self-referential pointer, the depth counter bounds long acyclic
		// chains.
		if err := e.enter(); err != nil {
			return err
		}
		defer e.leave()

		var ptr uintptr
		if rv.Kind() == reflect.Pointer {
			ptr = rv.Pointer()
		}
		if err := e.pushRef(ptr); err != nil {
			return err
		}
		defer e.popRef()

		return e.encodeAny(rv.Elem().Interface(), viaFallback)

	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return e.dispatchFallback(v, viaFallback)
		}

		return e.encodeReflectSeq(rv, rv.Pointer())

	case reflect.Array:
		return e.encodeReflectSeq(rv, 0)

	case reflect.Map:
		return e.encodeReflectMap(rv)

	default:
		return e.dispatchFallback(v, viaFallback)
	}
}

func (e *encoder) encodeReflectSeq(rv reflect.Value, ptr uintptr) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if err := e.pushRef(ptr); err != nil {
		return err
	}
	defer e.popRef()

	n := rv.Len()
	e.buf.B = append(e.buf.B, '[')
	for i := 0; i < n; i++ {
		e.beginElem(i == 0)
		if err := e.encodeAny(rv.Index(i).Interface(), false); err != nil {
			return err
		}
	}
	e.endContainer(']', n == 0)

	return nil
}

func (e *encoder) encodeReflectMap(rv reflect.Value) error {
	if err := e.enter(); err != nil {
		return err
	}
	defer e.leave()

	if err := e.pushRef(rv.Pointer()); err != nil {
		return err
	}
	defer e.popRef()

	entries := make([]mapEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		key, err := e.keyText(iter.Key().Interface())
		if err != nil {
			return err
		}
		entries = append(entries, mapEntry{key: key, val: iter.Value().Interface()})
	}

	return e.emitEntries(entries)
}
