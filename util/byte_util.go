package util

import (
	"encoding/binary"
)

// The Jet file format stores all multi-byte integers little-endian.

func AppendByte(size int) []byte {
	return make([]byte, size)
}

func ConvertUInt4Bytes(value uint32) []byte {
	var buff = make([]byte, 4)
	binary.LittleEndian.PutUint32(buff, value)
	return buff
}

func ReadUB4Byte2UInt32(data []byte) uint32 {
	return binary.LittleEndian.Uint32(data)
}

func ConvertInt4Bytes(value int32) []byte {
	return ConvertUInt4Bytes(uint32(value))
}

func ReadB4Byte2Int32(data []byte) int32 {
	return int32(binary.LittleEndian.Uint32(data))
}

func ConvertUInt2Bytes(value uint16) []byte {
	var buff = make([]byte, 2)
	binary.LittleEndian.PutUint16(buff, value)
	return buff
}

func ReadUB2Byte2UInt16(data []byte) uint16 {
	return binary.LittleEndian.Uint16(data)
}
