// Package codec implements the JSON encoding and decoding engines.
//
// # Encoding
//
// Encode resolves the supplied options into an immutable per-call
// configuration, dispatches the host value to a category (primitive, string,
// sequence, mapping, numeric buffer, timestamp, identifier, or the user
// fallback hook) and walks it into a pooled output buffer. Two guards bound
// the walk deterministically:
//
//   - a depth counter incremented on entering any array, object or buffer
//     dimension, failing with errs.ErrRecursionLimit past the limit
//   - an identity stack of open containers, failing with
//     errs.ErrCircularReference when a container is reachable from itself
//
// Non-finite floats render as the bare NaN/Infinity/-Infinity identifiers
// unless WithSanitizeNaN turns them into null. Finite floats use the
// shortest decimal form that round-trips to the identical bits.
//
// # Decoding
//
// Decode is a recursive-descent parser over raw bytes with the same depth
// limit, producing value.Value trees. Malformed input fails with a
// SyntaxError carrying the byte offset; no partial Value is ever returned.
// DecodeNext parses a single document from the front of the input for
// JSONL-style consumption.
//
// Both directions are pure functions of their inputs and safe for
// concurrent use without locking.
package codec
