package archive

import (
	"fmt"
	"math"
	"os"

	"github.com/arloliu/tensorjson/compress"
	"github.com/arloliu/tensorjson/endian"
	"github.com/arloliu/tensorjson/errs"
	"github.com/arloliu/tensorjson/format"
	"github.com/arloliu/tensorjson/ndarray"
)

// Entry is one decoded archive member: a named, contiguous, little-endian
// numeric array.
type Entry struct {
	Name  string
	Shape []int
	Data  []byte
	Kind  format.ElementKind
}

// Archive holds the decoded entries of an archive, preserving their order.
type Archive struct {
	index   map[string]int
	entries []Entry
}

// Decode parses and decompresses an archive from data.
//
// Entry payloads are validated against the declared shape: a size mismatch
// after decompression fails with ErrInvalidArchive rather than producing a
// truncated buffer.
func Decode(data []byte) (*Archive, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is below header size", errs.ErrInvalidArchive, len(data))
	}
	if string(data[:4]) != Magic {
		return nil, fmt.Errorf("%w", errs.ErrInvalidMagic)
	}
	if data[4] != Version {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedVersion, data[4])
	}

	codec, err := compress.GetCodec(format.CompressionType(data[5]))
	if err != nil {
		return nil, err
	}

	le := endian.Little()
	count := int(le.Uint32(data[8:12]))

	a := &Archive{
		index:   make(map[string]int, count),
		entries: make([]Entry, 0, count),
	}

	pos := HeaderSize
	for i := 0; i < count; i++ {
		entry, next, err := parseEntry(data, pos, codec)
		if err != nil {
			return nil, err
		}
		if _, dup := a.index[entry.Name]; dup {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateEntry, entry.Name)
		}

		a.index[entry.Name] = len(a.entries)
		a.entries = append(a.entries, entry)
		pos = next
	}

	if pos != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidArchive, len(data)-pos)
	}

	return a, nil
}

func parseEntry(data []byte, pos int, codec compress.Codec) (Entry, int, error) {
	le := endian.Little()

	if pos+2 > len(data) {
		return Entry{}, 0, fmt.Errorf("%w: truncated entry name length", errs.ErrInvalidArchive)
	}
	nameLen := int(le.Uint16(data[pos : pos+2]))
	pos += 2

	if nameLen == 0 || pos+nameLen+2 > len(data) {
		return Entry{}, 0, fmt.Errorf("%w: truncated entry name", errs.ErrInvalidArchive)
	}
	name := string(data[pos : pos+nameLen])
	pos += nameLen

	kind := format.ElementKind(data[pos])
	ndim := int(data[pos+1])
	pos += 2

	if !kind.Valid() {
		return Entry{}, 0, fmt.Errorf("%w: %v in entry %q", errs.ErrUnsupportedElementType, kind, name)
	}
	if pos+ndim*4+4 > len(data) {
		return Entry{}, 0, fmt.Errorf("%w: truncated entry %q", errs.ErrInvalidArchive, name)
	}

	shape := make([]int, ndim)
	elems := 1
	for i := range shape {
		shape[i] = int(le.Uint32(data[pos : pos+4]))
		// The product must not wrap, or a crafted shape could pass the
		// payload size check below with a mismatched element count.
		if shape[i] > 0 && elems > math.MaxInt/shape[i] {
			return Entry{}, 0, fmt.Errorf("%w: element count overflow in entry %q", errs.ErrInvalidArchive, name)
		}
		elems *= shape[i]
		pos += 4
	}
	if elems > math.MaxInt/kind.Size() {
		return Entry{}, 0, fmt.Errorf("%w: payload size overflow in entry %q", errs.ErrInvalidArchive, name)
	}

	payloadLen := int(le.Uint32(data[pos : pos+4]))
	pos += 4
	if pos+payloadLen > len(data) {
		return Entry{}, 0, fmt.Errorf("%w: truncated payload of entry %q", errs.ErrInvalidArchive, name)
	}

	raw, err := codec.Decompress(data[pos : pos+payloadLen])
	if err != nil {
		return Entry{}, 0, fmt.Errorf("%w: entry %q: %v", errs.ErrInvalidArchive, name, err)
	}
	if len(raw) != elems*kind.Size() {
		return Entry{}, 0, fmt.Errorf("%w: entry %q has %d payload bytes, want %d",
			errs.ErrInvalidArchive, name, len(raw), elems*kind.Size())
	}

	return Entry{Name: name, Kind: kind, Shape: shape, Data: raw}, pos + payloadLen, nil
}

// Len returns the number of entries.
func (a *Archive) Len() int {
	return len(a.entries)
}

// Names returns the entry names in archive order.
func (a *Archive) Names() []string {
	names := make([]string, len(a.entries))
	for i := range a.entries {
		names[i] = a.entries[i].Name
	}

	return names
}

// Entries returns the decoded entries in archive order.
func (a *Archive) Entries() []Entry {
	return a.entries
}

// Get returns the named entry as a contiguous little-endian buffer view.
// The view borrows the archive's decoded payload.
func (a *Archive) Get(name string) (*ndarray.Buffer, error) {
	i, ok := a.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrEntryNotFound, name)
	}

	e := &a.entries[i]
	buf := ndarray.New(e.Kind, e.Shape, e.Data)
	buf.Engine = endian.Little()

	return buf, nil
}

// Load reads and decodes an archive file from path.
func Load(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}
