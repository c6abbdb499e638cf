package codec

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/arloliu/tensorjson/errs"
	"github.com/arloliu/tensorjson/internal/cache"
	"github.com/arloliu/tensorjson/value"
)

// SyntaxError reports malformed input with the byte offset where parsing
// failed. It unwraps to errs.ErrMalformedJSON so callers can match it with
// errors.Is without inspecting the concrete type.
type SyntaxError struct {
	Reason string
	Offset int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed JSON at offset %d: %s", e.Offset, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return errs.ErrMalformedJSON
}

// Decode parses data into a Value. The entire input must be consumed:
// trailing non-whitespace after the top-level value is an error.
//
// Integer literals fitting the 64-bit signed range become Int; larger ones
// become BigInt without losing precision. Any literal with a decimal point
// or exponent becomes Float, as do the bare NaN, Infinity and -Infinity
// identifiers. Duplicate object keys keep the last occurrence.
//
// On failure only the error is returned, never a partial Value.
func Decode(data []byte) (value.Value, error) {
	d := decoder{data: data}

	v, err := d.parseValue()
	if err != nil {
		return value.Value{}, err
	}

	d.skipWhitespace()
	if d.pos != len(d.data) {
		return value.Value{}, d.errAt(d.pos, "trailing data after top-level value")
	}

	return v, nil
}

// DecodeNext parses one top-level value from the front of data and returns
// it together with the number of bytes consumed, including leading
// whitespace but excluding anything after the value. It is the building
// block for JSONL, NDJSON and concatenated-JSON consumption.
func DecodeNext(data []byte) (value.Value, int, error) {
	d := decoder{data: data}

	v, err := d.parseValue()
	if err != nil {
		return value.Value{}, 0, err
	}

	return v, d.pos, nil
}

// decoder is a parser cursor over raw bytes. Like the encoding context it is
// private to one call; nothing is shared between concurrent decodes.
type decoder struct {
	data  []byte
	keys  cache.KeyTable
	pos   int
	depth int
}

func (d *decoder) errAt(pos int, format string, args ...any) error {
	return &SyntaxError{Offset: pos, Reason: fmt.Sprintf(format, args...)}
}

func (d *decoder) skipWhitespace() {
	for d.pos < len(d.data) {
		switch d.data[d.pos] {
		case ' ', '\t', '\n', '\r':
			d.pos++
		default:
			return
		}
	}
}

// enter bounds parser recursion with an explicit depth counter so
// adversarially nested input fails cleanly instead of exhausting the native
// stack.
func (d *decoder) enter() error {
	d.depth++
	if d.depth > DefaultMaxDepth {
		return fmt.Errorf("%w: depth %d at offset %d", errs.ErrRecursionLimit, d.depth, d.pos)
	}

	return nil
}

func (d *decoder) parseValue() (value.Value, error) {
	d.skipWhitespace()
	if d.pos >= len(d.data) {
		return value.Value{}, d.errAt(d.pos, "unexpected end of input")
	}

	switch c := d.data[d.pos]; c {
	case '{':
		return d.parseObject()
	case '[':
		return d.parseArray()
	case '"':
		s, err := d.parseString()
		if err != nil {
			return value.Value{}, err
		}

		return value.String(s), nil
	case 't':
		if err := d.expect("true"); err != nil {
			return value.Value{}, err
		}

		return value.Bool(true), nil
	case 'f':
		if err := d.expect("false"); err != nil {
			return value.Value{}, err
		}

		return value.Bool(false), nil
	case 'n':
		if err := d.expect("null"); err != nil {
			return value.Value{}, err
		}

		return value.Null(), nil
	case 'N':
		if err := d.expect("NaN"); err != nil {
			return value.Value{}, err
		}

		return value.Float(math.NaN()), nil
	case 'I':
		if err := d.expect("Infinity"); err != nil {
			return value.Value{}, err
		}

		return value.Float(math.Inf(1)), nil
	default:
		if c == '-' || (c >= '0' && c <= '9') {
			return d.parseNumber()
		}

		return value.Value{}, d.errAt(d.pos, "unexpected character %q", c)
	}
}

// expect consumes the literal token lit or fails at the current position.
func (d *decoder) expect(lit string) error {
	if len(d.data)-d.pos < len(lit) || string(d.data[d.pos:d.pos+len(lit)]) != lit {
		return d.errAt(d.pos, "invalid literal, expected %q", lit)
	}
	d.pos += len(lit)

	return nil
}

func (d *decoder) parseObject() (value.Value, error) {
	if err := d.enter(); err != nil {
		return value.Value{}, err
	}
	defer func() { d.depth-- }()

	d.pos++ // consume '{'
	d.skipWhitespace()

	if d.pos < len(d.data) && d.data[d.pos] == '}' {
		d.pos++
		return value.Object(), nil
	}

	var members []value.Member
	var index map[string]int

	for {
		d.skipWhitespace()
		if d.pos >= len(d.data) {
			return value.Value{}, d.errAt(d.pos, "unexpected end of input in object")
		}
		if d.data[d.pos] != '"' {
			return value.Value{}, d.errAt(d.pos, "expected object key")
		}

		key, err := d.parseKey()
		if err != nil {
			return value.Value{}, err
		}

		d.skipWhitespace()
		if d.pos >= len(d.data) || d.data[d.pos] != ':' {
			return value.Value{}, d.errAt(d.pos, "expected ':' after object key")
		}
		d.pos++

		v, err := d.parseValue()
		if err != nil {
			return value.Value{}, err
		}

		// Last occurrence wins, keeping the position of the first.
		if at, dup := index[key]; dup {
			members[at].Value = v
		} else {
			members = append(members, value.Member{Key: key, Value: v})
			if index == nil {
				index = make(map[string]int, 8)
			}
			index[key] = len(members) - 1
		}

		d.skipWhitespace()
		if d.pos >= len(d.data) {
			return value.Value{}, d.errAt(d.pos, "unexpected end of input in object")
		}
		switch d.data[d.pos] {
		case ',':
			d.pos++
		case '}':
			d.pos++
			return value.Object(members...), nil
		default:
			return value.Value{}, d.errAt(d.pos, "expected ',' or '}' in object")
		}
	}
}

func (d *decoder) parseArray() (value.Value, error) {
	if err := d.enter(); err != nil {
		return value.Value{}, err
	}
	defer func() { d.depth-- }()

	d.pos++ // consume '['
	d.skipWhitespace()

	if d.pos < len(d.data) && d.data[d.pos] == ']' {
		d.pos++
		return value.Array(), nil
	}

	var elems []value.Value
	for {
		v, err := d.parseValue()
		if err != nil {
			return value.Value{}, err
		}
		elems = append(elems, v)

		d.skipWhitespace()
		if d.pos >= len(d.data) {
			return value.Value{}, d.errAt(d.pos, "unexpected end of input in array")
		}
		switch d.data[d.pos] {
		case ',':
			d.pos++
		case ']':
			d.pos++
			return value.Array(elems...), nil
		default:
			return value.Value{}, d.errAt(d.pos, "expected ',' or ']' in array")
		}
	}
}

func (d *decoder) parseNumber() (value.Value, error) {
	start := d.pos

	if d.data[d.pos] == '-' {
		d.pos++
		if d.pos < len(d.data) && d.data[d.pos] == 'I' {
			if err := d.expect("Infinity"); err != nil {
				return value.Value{}, err
			}

			return value.Float(math.Inf(-1)), nil
		}
	}

	digits := func() int {
		n := 0
		for d.pos < len(d.data) && d.data[d.pos] >= '0' && d.data[d.pos] <= '9' {
			d.pos++
			n++
		}

		return n
	}

	intStart := d.pos
	if digits() == 0 {
		return value.Value{}, d.errAt(d.pos, "invalid number")
	}
	if d.data[intStart] == '0' && d.pos-intStart > 1 {
		return value.Value{}, d.errAt(intStart, "leading zero in number")
	}

	// A fraction or exponent without digits is not consumed at all, so a
	// number directly followed by other data ("42extra") ends cleanly at the
	// last digit instead of failing inside a half-read suffix.
	isFloat := false
	if d.pos < len(d.data) && d.data[d.pos] == '.' {
		mark := d.pos
		d.pos++
		if digits() == 0 {
			d.pos = mark
		} else {
			isFloat = true
		}
	}
	if d.pos < len(d.data) && (d.data[d.pos] == 'e' || d.data[d.pos] == 'E') {
		mark := d.pos
		d.pos++
		if d.pos < len(d.data) && (d.data[d.pos] == '+' || d.data[d.pos] == '-') {
			d.pos++
		}
		if digits() == 0 {
			d.pos = mark
		} else {
			isFloat = true
		}
	}

	text := string(d.data[start:d.pos])

	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return value.Value{}, d.errAt(start, "invalid number %q", text)
		}

		return value.Float(f), nil
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err == nil {
		return value.Int(i), nil
	}

	// Out of int64 range: preserve precision with an arbitrary-precision
	// integer instead of rounding through a float.
	bi, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return value.Value{}, d.errAt(start, "invalid number %q", text)
	}

	return value.BigInt(bi), nil
}
