// Package errs defines the sentinel error values shared across tensorjson
// packages.
//
// All errors are created with errors.New and wrapped with fmt.Errorf("%w")
// at the failure site, so callers can match them with errors.Is regardless
// of the added context.
package errs

import "errors"

// Encoding errors.
var (
	// ErrUnsupportedType indicates the type dispatcher could not classify a
	// host value and no fallback hook was registered, or the fallback's
	// substitute was itself unsupported.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrUnsupportedElementType indicates a numeric buffer uses an element
	// kind the adapter cannot decode (e.g. complex numbers).
	ErrUnsupportedElementType = errors.New("unsupported buffer element type")

	// ErrCircularReference indicates a container was reached from within
	// itself during encoding.
	ErrCircularReference = errors.New("circular reference detected")

	// ErrRecursionLimit indicates the nesting depth limit was exceeded,
	// during either encoding or decoding.
	ErrRecursionLimit = errors.New("recursion limit exceeded")

	// ErrIntegerOutOfRange indicates an integer outside the exact-double
	// range was encoded with strict integers enabled.
	ErrIntegerOutOfRange = errors.New("integer exceeds 53-bit range")

	// ErrInvalidUTF8 indicates a string value contains malformed UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")

	// ErrFallbackFailed indicates the user fallback hook returned an error.
	ErrFallbackFailed = errors.New("fallback hook failed")
)

// Decoding errors.
var (
	// ErrMalformedJSON indicates the input is not valid JSON. Decoder errors
	// wrap it in a codec.SyntaxError carrying the byte offset.
	ErrMalformedJSON = errors.New("malformed JSON")
)

// Configuration errors.
var (
	// ErrInvalidOption indicates an option was configured with an invalid
	// value at call time.
	ErrInvalidOption = errors.New("invalid option")
)

// Numeric buffer errors.
var (
	// ErrInvalidShape indicates a buffer descriptor whose shape and strides
	// disagree, or whose extents do not fit the backing data.
	ErrInvalidShape = errors.New("invalid buffer shape")
)

// Archive errors.
var (
	// ErrInvalidMagic indicates the archive data does not start with the
	// expected magic number.
	ErrInvalidMagic = errors.New("invalid archive magic")

	// ErrInvalidArchive indicates a structurally corrupt archive (truncated
	// entry, bad offsets, undecodable payload).
	ErrInvalidArchive = errors.New("invalid archive data")

	// ErrUnsupportedVersion indicates an archive written by a newer format
	// version.
	ErrUnsupportedVersion = errors.New("unsupported archive version")

	// ErrInvalidCompression indicates an unknown compression type in an
	// archive entry or configuration.
	ErrInvalidCompression = errors.New("invalid compression type")

	// ErrDuplicateEntry indicates two archive entries share the same name.
	ErrDuplicateEntry = errors.New("duplicate archive entry name")

	// ErrEntryNotFound indicates a lookup for an entry name that does not
	// exist in the archive.
	ErrEntryNotFound = errors.New("archive entry not found")
)
