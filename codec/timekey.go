package codec

import (
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/arloliu/tensorjson/errs"
	"github.com/arloliu/tensorjson/value"
)

// appendTimestamp renders a timestamp as a quoted ISO-8601 string.
//
// A timestamp with an explicit offset always renders it; the naive-UTC
// option is irrelevant once an offset is present. A naive timestamp renders
// with no offset suffix unless naive-UTC stamps it as UTC. The Z form is
// used only when the resolved offset is exactly UTC and utc-z is set.
func (e *encoder) appendTimestamp(ts value.Timestamp) error {
	b := append(e.buf.B, '"')
	b = e.appendTimestampText(b, ts)
	e.buf.B = append(b, '"')

	return nil
}

func (e *encoder) appendTimestampText(b []byte, ts value.Timestamp) []byte {
	t := ts.Time
	hasOffset := ts.HasOffset

	if !hasOffset && e.cfg.naiveUTC {
		// Reinterpret the wall-clock reading as UTC.
		if t.Location() != time.UTC {
			t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
		}
		hasOffset = true
	}

	layout := "2006-01-02T15:04:05"
	if !e.cfg.omitSubsecond {
		layout += ".999999"
	}
	if hasOffset {
		if _, off := t.Zone(); off == 0 && e.cfg.utcZ {
			layout += "Z"
		} else {
			layout += "-07:00"
		}
	}

	return t.AppendFormat(b, layout)
}

func (e *encoder) appendUUID(id uuid.UUID) {
	b := append(e.buf.B, '"')
	b = append(b, id.String()...)
	e.buf.B = append(b, '"')
}

// keyText coerces a host map key to its canonical string form. String keys
// pass through; every other supported kind requires the non-string-keys
// option. The returned text is emitted through the normal string writer, so
// ordering under sort-keys compares the coerced form.
func (e *encoder) keyText(k any) (string, error) {
	if s, ok := k.(string); ok {
		return s, nil
	}

	if !e.cfg.nonStringKeys {
		return "", fmt.Errorf("%w: map key of type %T (enable non-string keys)", errs.ErrUnsupportedType, k)
	}

	switch kv := k.(type) {
	case nil:
		return "null", nil
	case bool:
		if kv {
			return "true", nil
		}

		return "false", nil
	case int:
		return e.intKeyText(int64(kv))
	case int8:
		return e.intKeyText(int64(kv))
	case int16:
		return e.intKeyText(int64(kv))
	case int32:
		return e.intKeyText(int64(kv))
	case int64:
		return e.intKeyText(kv)
	case uint:
		return e.uintKeyText(uint64(kv))
	case uint8:
		return e.uintKeyText(uint64(kv))
	case uint16:
		return e.uintKeyText(uint64(kv))
	case uint32:
		return e.uintKeyText(uint64(kv))
	case uint64:
		return e.uintKeyText(kv)
	case float32:
		return string(appendFloatText(nil, float64(kv), 32, e.cfg.sanitizeNaN)), nil
	case float64:
		return string(appendFloatText(nil, kv, 64, e.cfg.sanitizeNaN)), nil
	case *big.Int:
		if e.cfg.strictIntegers && (kv.Cmp(maxSafeBig) > 0 || kv.Cmp(minSafeBig) < 0) {
			return "", fmt.Errorf("%w: key %s", errs.ErrIntegerOutOfRange, kv.String())
		}

		return kv.String(), nil
	case time.Time:
		return string(e.appendTimestampText(nil, value.Timestamp{Time: kv, HasOffset: true})), nil
	case value.Timestamp:
		return string(e.appendTimestampText(nil, kv)), nil
	case uuid.UUID:
		return kv.String(), nil
	default:
		return "", fmt.Errorf("%w: map key of type %T", errs.ErrUnsupportedType, k)
	}
}

func (e *encoder) intKeyText(v int64) (string, error) {
	if e.cfg.strictIntegers && (v > maxSafeInteger || v < -maxSafeInteger) {
		return "", fmt.Errorf("%w: key %d", errs.ErrIntegerOutOfRange, v)
	}

	return strconv.FormatInt(v, 10), nil
}

func (e *encoder) uintKeyText(v uint64) (string, error) {
	if e.cfg.strictIntegers && v > maxSafeInteger {
		return "", fmt.Errorf("%w: key %d", errs.ErrIntegerOutOfRange, v)
	}

	return strconv.FormatUint(v, 10), nil
}
