package endianpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint128Vectors(t *testing.T) {
	u := Uint128{Hi: 0x0102030405060708, Lo: 0x090A0B0C0D0E0F10}
	require.Equal(t, 16, u.PackedLen())

	buf := make([]byte, 16)
	require.NoError(t, u.EncodeLE(buf))
	assert.Equal(t, []byte{
		0x10, 0x0F, 0x0E, 0x0D, 0x0C, 0x0B, 0x0A, 0x09,
		0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01,
	}, buf)

	var backLE Uint128
	require.NoError(t, backLE.DecodeLE(buf))
	assert.Equal(t, u, backLE)

	require.NoError(t, u.EncodeBE(buf))
	assert.Equal(t, []byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F, 0x10,
	}, buf)

	var backBE Uint128
	require.NoError(t, backBE.DecodeBE(buf))
	assert.Equal(t, u, backBE)
}

func TestInt128Negative(t *testing.T) {
	// -1 in two's complement is all ones across the 16 bytes
	i := Int128{Hi: -1, Lo: 0xFFFF_FFFF_FFFF_FFFF}
	buf := make([]byte, 16)
	require.NoError(t, i.EncodeBE(buf))
	for _, b := range buf {
		assert.Equal(t, byte(0xFF), b)
	}

	var back Int128
	require.NoError(t, back.DecodeLE(buf))
	assert.Equal(t, i, back)
}

func TestInt128BufferLen(t *testing.T) {
	var u Uint128
	var i Int128
	for _, n := range []int{0, 15, 17} {
		buf := make([]byte, n)
		require.ErrorIs(t, u.EncodeLE(buf), ErrBufferLen)
		require.ErrorIs(t, u.DecodeBE(buf), ErrBufferLen)
		require.ErrorIs(t, i.EncodeBE(buf), ErrBufferLen)
		require.ErrorIs(t, i.DecodeLE(buf), ErrBufferLen)
	}
}
