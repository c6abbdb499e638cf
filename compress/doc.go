// Package compress provides the compression codecs used for tensor archive
// entry payloads.
//
// Archive entries hold packed numeric element data, which compresses well
// with general-purpose algorithms. Four codecs are supported:
//
//   - None: no compression (fastest, largest)
//   - Zstd: best ratio, the archive default
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression, moderate ratio
//
// The Zstd codec has two implementations selected at build time: the cgo
// build uses valyala/gozstd (libzstd bindings), and pure-Go builds fall back
// to klauspost/compress/zstd. The two produce interchangeable frames.
//
// All codecs are stateless values safe for concurrent use; pooled internal
// encoders and decoders are managed per implementation.
package compress
