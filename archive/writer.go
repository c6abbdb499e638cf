package archive

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/arloliu/tensorjson/compress"
	"github.com/arloliu/tensorjson/endian"
	"github.com/arloliu/tensorjson/errs"
	"github.com/arloliu/tensorjson/format"
	"github.com/arloliu/tensorjson/internal/options"
	"github.com/arloliu/tensorjson/ndarray"
)

const (
	// Magic identifies archive data: "TNSA" as raw bytes.
	Magic = "TNSA"

	// Version is the current format version.
	Version = 1

	// HeaderSize is the fixed archive header size in bytes.
	HeaderSize = 12

	// MaxNameLength bounds entry names to the uint16 length prefix.
	MaxNameLength = 65535

	// MaxDims bounds the number of dimensions to the uint8 rank field.
	MaxDims = 255
)

// Writer accumulates named buffers into the archive wire format.
//
// Entries are serialized as they are added; Finish prepends the header and
// returns the complete archive. A Writer is not safe for concurrent use and
// not reusable after Finish.
type Writer struct {
	codec       compress.Codec
	names       map[string]struct{}
	body        []byte
	compression format.CompressionType
	count       int
}

// WriterOption configures a Writer.
type WriterOption = options.Option[*Writer]

// WithCompression selects the codec applied to every entry payload.
// The default is Zstd.
func WithCompression(ct format.CompressionType) WriterOption {
	return options.New(func(w *Writer) error {
		codec, err := compress.GetCodec(ct)
		if err != nil {
			return err
		}
		w.compression = ct
		w.codec = codec

		return nil
	})
}

// NewWriter creates a Writer with the given options.
func NewWriter(opts ...WriterOption) (*Writer, error) {
	w := &Writer{
		compression: format.CompressionZstd,
		names:       make(map[string]struct{}),
	}
	w.codec, _ = compress.GetCodec(w.compression)

	if err := options.Apply(w, opts...); err != nil {
		return nil, err
	}

	return w, nil
}

// Add appends a named buffer to the archive. The buffer is packed to
// contiguous C-order little-endian bytes immediately, so the caller may
// release or mutate the backing data once Add returns.
func (w *Writer) Add(name string, buf *ndarray.Buffer) error {
	if name == "" || len(name) > MaxNameLength {
		return fmt.Errorf("%w: invalid entry name length %d", errs.ErrInvalidArchive, len(name))
	}
	if _, dup := w.names[name]; dup {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateEntry, name)
	}
	if err := buf.Validate(); err != nil {
		return err
	}
	if buf.NDim() > MaxDims {
		return fmt.Errorf("%w: %d dimensions exceed limit %d", errs.ErrInvalidArchive, buf.NDim(), MaxDims)
	}
	for _, d := range buf.Shape {
		if d > math.MaxUint32 {
			return fmt.Errorf("%w: dimension %d exceeds uint32 range", errs.ErrInvalidArchive, d)
		}
	}

	payload, err := w.codec.Compress(buf.Packed())
	if err != nil {
		return fmt.Errorf("compress entry %q: %w", name, err)
	}
	if len(payload) > math.MaxUint32 {
		return fmt.Errorf("%w: entry %q payload too large", errs.ErrInvalidArchive, name)
	}

	le := endian.Little()
	b := le.AppendUint16(w.body, uint16(len(name)))
	b = append(b, name...)
	b = append(b, byte(buf.Kind), byte(buf.NDim()))
	for _, d := range buf.Shape {
		b = le.AppendUint32(b, uint32(d))
	}
	b = le.AppendUint32(b, uint32(len(payload)))
	w.body = append(b, payload...)

	w.names[name] = struct{}{}
	w.count++

	return nil
}

// Count returns the number of entries added so far.
func (w *Writer) Count() int {
	return w.count
}

// Finish returns the complete archive bytes.
func (w *Writer) Finish() ([]byte, error) {
	le := endian.Little()

	out := make([]byte, 0, HeaderSize+len(w.body))
	out = append(out, Magic...)
	out = append(out, Version, byte(w.compression), 0, 0)
	out = le.AppendUint32(out, uint32(w.count))

	return append(out, w.body...), nil
}

// Encode serializes the named buffers into a single archive. Entries are
// written in sorted name order so the output is deterministic regardless of
// map iteration order.
func Encode(buffers map[string]*ndarray.Buffer, opts ...WriterOption) ([]byte, error) {
	w, err := NewWriter(opts...)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(buffers))
	for name := range buffers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := w.Add(name, buffers[name]); err != nil {
			return nil, err
		}
	}

	return w.Finish()
}

// Save writes the named buffers to a file at path.
func Save(path string, buffers map[string]*ndarray.Buffer, opts ...WriterOption) error {
	data, err := Encode(buffers, opts...)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
