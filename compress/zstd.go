package compress

// ZstdCompressor provides Zstandard compression, the archive default.
// It offers the best ratio of the supported codecs at moderate speed,
// suiting cold storage and network transfer of tensor payloads.
//
// The Compress and Decompress methods are implemented in zstd_cgo.go
// (libzstd via valyala/gozstd) and zstd_pure.go (klauspost/compress),
// selected by the cgo build constraint.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
