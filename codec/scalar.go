package codec

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/arloliu/tensorjson/errs"
)

// maxSafeInteger is the largest integer magnitude a float64 represents
// exactly (2^53 - 1). WithStrictIntegers rejects anything beyond it.
const maxSafeInteger = 1<<53 - 1

var (
	maxSafeBig = big.NewInt(maxSafeInteger)
	minSafeBig = big.NewInt(-maxSafeInteger)
)

func (e *encoder) appendBool(b bool) {
	if b {
		e.buf.B = append(e.buf.B, "true"...)
	} else {
		e.buf.B = append(e.buf.B, "false"...)
	}
}

func (e *encoder) appendInt(v int64) error {
	if e.cfg.strictIntegers && (v > maxSafeInteger || v < -maxSafeInteger) {
		return fmt.Errorf("%w: %d", errs.ErrIntegerOutOfRange, v)
	}
	e.buf.B = strconv.AppendInt(e.buf.B, v, 10)

	return nil
}

func (e *encoder) appendUint(v uint64) error {
	if e.cfg.strictIntegers && v > maxSafeInteger {
		return fmt.Errorf("%w: %d", errs.ErrIntegerOutOfRange, v)
	}
	e.buf.B = strconv.AppendUint(e.buf.B, v, 10)

	return nil
}

func (e *encoder) appendBigInt(v *big.Int) error {
	if e.cfg.strictIntegers && (v.Cmp(maxSafeBig) > 0 || v.Cmp(minSafeBig) < 0) {
		return fmt.Errorf("%w: %s", errs.ErrIntegerOutOfRange, v.String())
	}
	e.buf.B = v.Append(e.buf.B, 10)

	return nil
}

// appendFloat renders a float in the shortest decimal form that round-trips
// to the identical value at the given bit size. Non-finite values become the
// bare NaN/Infinity/-Infinity literals, or null under WithSanitizeNaN.
func (e *encoder) appendFloat(f float64, bits int) {
	e.buf.B = appendFloatText(e.buf.B, f, bits, e.cfg.sanitizeNaN)
}

func appendFloatText(b []byte, f float64, bits int, sanitize bool) []byte {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		if sanitize {
			return append(b, "null"...)
		}
		switch {
		case math.IsNaN(f):
			return append(b, "NaN"...)
		case f > 0:
			return append(b, "Infinity"...)
		default:
			return append(b, "-Infinity"...)
		}
	}

	start := len(b)
	b = strconv.AppendFloat(b, f, 'g', -1, bits)

	// Keep floats distinguishable from integers: 5 renders as 5.0.
	for _, c := range b[start:] {
		if c == '.' || c == 'e' || c == 'E' {
			return b
		}
	}

	return append(b, '.', '0')
}
