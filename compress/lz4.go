package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; the compressor keeps
// internal hash tables that benefit from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// Payload marker byte. CompressBlock reports incompressible input by
// returning an empty block, so such payloads are stored raw and the marker
// tells Decompress which form follows.
const (
	lz4MarkerRaw   = 0x00
	lz4MarkerBlock = 0x01
)

// LZ4Compressor provides LZ4 block compression, favoring decompression
// speed over ratio.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data as a single marked LZ4 block.
// Incompressible input is stored raw behind the marker byte.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))
	dst[0] = lz4MarkerBlock

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}
	if n == 0 {
		out := make([]byte, 1+len(data))
		out[0] = lz4MarkerRaw
		copy(out[1:], data)

		return out, nil
	}

	return dst[:1+n], nil
}

// Decompress decompresses a single marked LZ4 block.
//
// LZ4 blocks do not record the decompressed size, so the buffer starts at 4x
// the compressed size and doubles on short-buffer errors up to a 128MB
// safety limit.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	block := data[1:]
	switch data[0] {
	case lz4MarkerRaw:
		out := make([]byte, len(block))
		copy(out, block)

		return out, nil
	case lz4MarkerBlock:
	default:
		return nil, fmt.Errorf("lz4: invalid payload marker 0x%02x", data[0])
	}

	bufSize := len(block) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(block, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
