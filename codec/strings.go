package codec

import (
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/tensorjson/errs"
	"github.com/arloliu/tensorjson/internal/pool"
)

const hexDigits = "0123456789abcdef"

// safeBytes marks ASCII bytes that can be copied into a JSON string without
// escaping. Control characters, the quote and the backslash need escapes;
// everything from 0x20 up is emitted verbatim (no HTML-safe escaping).
var safeBytes = func() (t [256]bool) {
	for i := 0x20; i < 0x80; i++ {
		t[i] = true
	}
	t['"'] = false
	t['\\'] = false

	return t
}()

// appendString writes s as a quoted JSON string, validating UTF-8 as it
// scans. Escaping is minimal: only the quote, the backslash and control
// characters are escaped; multi-byte runes pass through as raw UTF-8.
func appendString(buf *pool.ByteBuffer, s string) error {
	b := append(buf.B, '"')

	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if safeBytes[c] {
			i++
			continue
		}

		if c < 0x80 {
			b = append(b, s[start:i]...)
			switch c {
			case '"':
				b = append(b, '\\', '"')
			case '\\':
				b = append(b, '\\', '\\')
			case '\b':
				b = append(b, '\\', 'b')
			case '\f':
				b = append(b, '\\', 'f')
			case '\n':
				b = append(b, '\\', 'n')
			case '\r':
				b = append(b, '\\', 'r')
			case '\t':
				b = append(b, '\\', 't')
			default:
				b = append(b, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xF])
			}
			i++
			start = i

			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return fmt.Errorf("%w: byte 0x%02x at index %d", errs.ErrInvalidUTF8, c, i)
		}
		i += size
	}

	b = append(b, s[start:]...)
	buf.B = append(b, '"')

	return nil
}
