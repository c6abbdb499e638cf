package compress

// NoOpCompressor bypasses compression, returning input slices unchanged.
// Useful for incompressible payloads and for isolating codec overhead in
// benchmarks.
//
// Both directions return the input slice itself without copying, so callers
// must not mutate the input while the result is in use.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-op compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
