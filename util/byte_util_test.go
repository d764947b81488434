package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertUInt4Bytes(t *testing.T) {
	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, ConvertUInt4Bytes(0x01020304))
	assert.Equal(t, uint32(0x01020304), ReadUB4Byte2UInt32([]byte{0x04, 0x03, 0x02, 0x01}))
}

func TestConvertInt4BytesRoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 4096, -4096, 1<<31 - 1, -(1 << 31)} {
		assert.Equal(t, v, ReadB4Byte2Int32(ConvertInt4Bytes(v)))
	}
}

func TestConvertUInt2Bytes(t *testing.T) {
	assert.Equal(t, []byte{0x22, 0x11}, ConvertUInt2Bytes(0x1122))
	assert.Equal(t, uint16(0x1122), ReadUB2Byte2UInt16([]byte{0x22, 0x11}))
}

func TestAppendByte(t *testing.T) {
	buff := AppendByte(16)
	assert.Len(t, buff, 16)
	for _, b := range buff {
		assert.Zero(t, b)
	}
}

func TestHashCode(t *testing.T) {
	a := HashCode([]byte("usage map"))
	b := HashCode([]byte("usage map"))
	c := HashCode([]byte("usage maps"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}
