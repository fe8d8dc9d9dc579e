package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.BigEndian, GetBigEndianEngine())
	require.Equal(t, binary.LittleEndian, GetLittleEndianEngine())

	require.True(t, IsBigEndian(GetBigEndianEngine()))
	require.False(t, IsBigEndian(GetLittleEndianEngine()))
}

func TestEngine_ReadWrite(t *testing.T) {
	t.Run("Big endian", func(t *testing.T) {
		engine := GetBigEndianEngine()

		buf := engine.AppendUint32(nil, 0x00000A03)
		require.Equal(t, []byte{0x00, 0x00, 0x0A, 0x03}, buf)
		require.Equal(t, uint32(0x00000A03), engine.Uint32(buf))

		buf = engine.AppendUint16(nil, 0xFFFE)
		require.Equal(t, int16(-2), int16(engine.Uint16(buf)))
	})

	t.Run("Little endian", func(t *testing.T) {
		engine := GetLittleEndianEngine()

		buf := engine.AppendUint32(nil, 0x00000A03)
		require.Equal(t, []byte{0x03, 0x0A, 0x00, 0x00}, buf)
		require.Equal(t, uint32(0x00000A03), engine.Uint32(buf))
	})
}

func BenchmarkEngine_AppendUint64(b *testing.B) {
	engine := GetBigEndianEngine()
	buf := make([]byte, 0, 8)

	for b.Loop() {
		buf = engine.AppendUint64(buf[:0], 0x0102030405060708)
	}
}
