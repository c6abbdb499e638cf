// Package tensorjson provides a high-performance JSON codec for host object
// graphs and multi-dimensional numeric buffers.
//
// The encoder walks arbitrary Go values (primitives, strings, slices, maps,
// time.Time, uuid.UUID, *big.Int, the value.Value model, and strided
// ndarray.Buffer views) into compact JSON bytes. Non-finite floats are
// emitted as the bare NaN, Infinity and -Infinity literals, making the
// output a superset of strict JSON; the decoder accepts the same literals.
//
// # Core Features
//
//   - Type-dispatching encoder with a single user fallback hook
//   - Zero-copy serialization of strided numeric buffers (tensors),
//     including the zero-dimensional scalar case
//   - Deterministic recursion and cycle guards on adversarial input
//   - Per-call immutable option set (sorting, indent, key coercion,
//     strict integers, timestamp rendering)
//   - Recursive-descent decoder with byte-offset error reporting and
//     arbitrary-precision integer preservation
//   - Tensor archive format with Zstd/S2/LZ4 entry compression
//
// # Basic Usage
//
// Encoding:
//
//	data, err := tensorjson.Encode(map[string]any{"temp": 21.5},
//	    codec.WithSortKeys(),
//	)
//
// Decoding:
//
//	v, err := tensorjson.Decode(data)
//	temp, _ := v.Get("temp")
//
// Consuming concatenated documents (JSONL, NDJSON):
//
//	for len(data) > 0 {
//	    v, n, err := tensorjson.DecodeNext(data)
//	    if err != nil {
//	        return err
//	    }
//	    handle(v)
//	    data = bytes.TrimLeft(data[n:], "\r\n")
//	}
//
// # Package Structure
//
// This package provides thin top-level wrappers around the codec package.
// For the full option surface use codec directly; the value, ndarray and
// archive packages hold the data model, buffer descriptors and the tensor
// archive container.
package tensorjson

import (
	"github.com/arloliu/tensorjson/codec"
	"github.com/arloliu/tensorjson/value"
)

// Encode serializes a host value into JSON bytes. See codec.Encode.
func Encode(v any, opts ...codec.Option) ([]byte, error) {
	return codec.Encode(v, opts...)
}

// Decode parses a complete JSON document into a Value. See codec.Decode.
func Decode(data []byte) (value.Value, error) {
	return codec.Decode(data)
}

// DecodeNext parses one top-level JSON value from the front of data,
// returning it with the number of bytes consumed. See codec.DecodeNext.
func DecodeNext(data []byte) (value.Value, int, error) {
	return codec.DecodeNext(data)
}
