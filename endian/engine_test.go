package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestNative(t *testing.T) {
	result := Native()

	// Verify against the actual memory layout of the host.
	var probe uint16 = 0x0102
	bytes := (*[2]byte)(unsafe.Pointer(&probe))

	switch bytes[0] {
	case 0x01:
		require.Equal(t, EndianEngine(binary.BigEndian), result)
	case 0x02:
		require.Equal(t, EndianEngine(binary.LittleEndian), result)
	default:
		require.Failf(t, "unexpected probe byte", "got: %v", bytes[0])
	}
}

func TestNativeConsistency(t *testing.T) {
	first := Native()
	for range 100 {
		require.Equal(t, first, Native())
	}
}

func TestIsNativeLittleEndian(t *testing.T) {
	expected := Native() == EndianEngine(binary.LittleEndian)
	require.Equal(t, expected, IsNativeLittleEndian())
}

func TestLittle(t *testing.T) {
	engine := Little()
	require.Implements(t, (*EndianEngine)(nil), engine)

	b := make([]byte, 2)
	engine.PutUint16(b, 0x0102)
	require.Equal(t, byte(0x02), b[0], "little endian puts LSB first")
	require.Equal(t, byte(0x01), b[1])
	require.Equal(t, uint16(0x0102), engine.Uint16(b))
}

func TestBig(t *testing.T) {
	engine := Big()
	require.Implements(t, (*EndianEngine)(nil), engine)

	b := make([]byte, 2)
	engine.PutUint16(b, 0x0102)
	require.Equal(t, byte(0x01), b[0], "big endian puts MSB first")
	require.Equal(t, byte(0x02), b[1])
	require.Equal(t, uint16(0x0102), engine.Uint16(b))
}

func TestEnginesRoundTripWiderTypes(t *testing.T) {
	for _, engine := range []EndianEngine{Little(), Big()} {
		b32 := make([]byte, 4)
		engine.PutUint32(b32, 0x01020304)
		require.Equal(t, uint32(0x01020304), engine.Uint32(b32))

		b64 := make([]byte, 8)
		engine.PutUint64(b64, 0x0102030405060708)
		require.Equal(t, uint64(0x0102030405060708), engine.Uint64(b64))

		appended := engine.AppendUint32(nil, 0xAABBCCDD)
		require.Equal(t, uint32(0xAABBCCDD), engine.Uint32(appended))
	}
}

func TestLittleBigDiffer(t *testing.T) {
	lb := Little().AppendUint32(nil, 0x01020304)
	bb := Big().AppendUint32(nil, 0x01020304)
	require.NotEqual(t, lb, bb)
}
