package codec

import (
	"unicode/utf16"
	"unicode/utf8"
)

// parseKey parses an object key, interning short keys through the per-call
// key table so documents that repeat the same keys share one allocation.
func (d *decoder) parseKey() (string, error) {
	raw, built, err := d.scanString()
	if err != nil {
		return "", err
	}
	if built != nil {
		return string(built), nil
	}

	return d.keys.Intern(raw), nil
}

func (d *decoder) parseString() (string, error) {
	raw, built, err := d.scanString()
	if err != nil {
		return "", err
	}
	if built != nil {
		return string(built), nil
	}

	return string(raw), nil
}

// scanString consumes a quoted string starting at the opening quote.
// When the string contains no escapes, raw is the validated byte span inside
// the quotes and built is nil; otherwise built holds the unescaped bytes.
func (d *decoder) scanString() (raw []byte, built []byte, err error) {
	d.pos++ // consume '"'
	start := d.pos

	for d.pos < len(d.data) {
		c := d.data[d.pos]
		switch {
		case c == '"':
			span := d.data[start:d.pos]
			d.pos++
			if built != nil {
				return nil, append(built, span...), nil
			}

			return span, nil, nil

		case c == '\\':
			if built == nil {
				built = make([]byte, 0, len(d.data[start:])+8)
			}
			built = append(built, d.data[start:d.pos]...)
			built, err = d.unescape(built)
			if err != nil {
				return nil, nil, err
			}
			start = d.pos

		case c < 0x20:
			return nil, nil, d.errAt(d.pos, "unescaped control character 0x%02x in string", c)

		case c < 0x80:
			d.pos++

		default:
			r, size := utf8.DecodeRune(d.data[d.pos:])
			if r == utf8.RuneError && size == 1 {
				return nil, nil, d.errAt(d.pos, "invalid UTF-8 in string")
			}
			d.pos += size
		}
	}

	return nil, nil, d.errAt(d.pos, "unterminated string")
}

// unescape resolves one backslash escape at the current position, appending
// the decoded bytes to built.
func (d *decoder) unescape(built []byte) ([]byte, error) {
	escStart := d.pos
	d.pos++ // consume '\\'
	if d.pos >= len(d.data) {
		return nil, d.errAt(d.pos, "unterminated escape")
	}

	c := d.data[d.pos]
	d.pos++
	switch c {
	case '"':
		return append(built, '"'), nil
	case '\\':
		return append(built, '\\'), nil
	case '/':
		return append(built, '/'), nil
	case 'b':
		return append(built, '\b'), nil
	case 'f':
		return append(built, '\f'), nil
	case 'n':
		return append(built, '\n'), nil
	case 'r':
		return append(built, '\r'), nil
	case 't':
		return append(built, '\t'), nil
	case 'u':
		r, err := d.hex4()
		if err != nil {
			return nil, err
		}
		if utf16.IsSurrogate(rune(r)) {
			r2, err := d.surrogatePair(escStart, rune(r))
			if err != nil {
				return nil, err
			}

			return utf8.AppendRune(built, r2), nil
		}

		return utf8.AppendRune(built, rune(r)), nil
	default:
		return nil, d.errAt(escStart, "invalid escape character %q", c)
	}
}

// surrogatePair resolves a \uXXXX high surrogate by consuming the required
// low surrogate escape that must follow.
func (d *decoder) surrogatePair(escStart int, high rune) (rune, error) {
	if high >= 0xDC00 {
		return 0, d.errAt(escStart, "unexpected low surrogate")
	}
	if d.pos+1 >= len(d.data) || d.data[d.pos] != '\\' || d.data[d.pos+1] != 'u' {
		return 0, d.errAt(d.pos, "unpaired high surrogate")
	}
	d.pos += 2

	low, err := d.hex4()
	if err != nil {
		return 0, err
	}

	r := utf16.DecodeRune(high, rune(low))
	if r == utf8.RuneError {
		return 0, d.errAt(escStart, "invalid surrogate pair")
	}

	return r, nil
}

func (d *decoder) hex4() (uint32, error) {
	if d.pos+4 > len(d.data) {
		return 0, d.errAt(d.pos, "truncated \\u escape")
	}

	var r uint32
	for i := 0; i < 4; i++ {
		c := d.data[d.pos+i]
		switch {
		case c >= '0' && c <= '9':
			r = r<<4 | uint32(c-'0')
		case c >= 'a' && c <= 'f':
			r = r<<4 | uint32(c-'a'+10)
		case c >= 'A' && c <= 'F':
			r = r<<4 | uint32(c-'A'+10)
		default:
			return 0, d.errAt(d.pos+i, "invalid hex digit %q in \\u escape", c)
		}
	}
	d.pos += 4

	return r, nil
}
