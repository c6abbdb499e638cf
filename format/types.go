package format

type (
	ElementKind     uint8
	CompressionType uint8
)

// Element kinds for numeric buffers. The values are part of the archive wire
// format and must not be renumbered.
const (
	KindInvalid ElementKind = 0x0

	KindBool    ElementKind = 0x1 // KindBool represents a 1-byte boolean (zero or nonzero).
	KindInt8    ElementKind = 0x2
	KindInt16   ElementKind = 0x3
	KindInt32   ElementKind = 0x4
	KindInt64   ElementKind = 0x5
	KindUint8   ElementKind = 0x6
	KindUint16  ElementKind = 0x7
	KindUint32  ElementKind = 0x8
	KindUint64  ElementKind = 0x9
	KindFloat32 ElementKind = 0xA
	KindFloat64 ElementKind = 0xB

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// Size returns the element size in bytes, or 0 for an unrecognized kind.
func (k ElementKind) Size() int {
	switch k {
	case KindBool, KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	default:
		return 0
	}
}

// Valid reports whether k is one of the recognized element kinds.
func (k ElementKind) Valid() bool {
	return k.Size() != 0
}

func (k ElementKind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt8:
		return "Int8"
	case KindInt16:
		return "Int16"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindUint8:
		return "Uint8"
	case KindUint16:
		return "Uint16"
	case KindUint32:
		return "Uint32"
	case KindUint64:
		return "Uint64"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
