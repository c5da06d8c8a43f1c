// Package endian provides byte order utilities for the tivar binary codecs.
//
// The TI variable file format stores all multi-byte integers little-endian,
// while BCD mantissa bytes run most significant digit first. This package
// combines ByteOrder and AppendByteOrder from encoding/binary into a single
// EndianEngine interface so section codecs can both overwrite fixed ranges
// and append to growing buffers through one value.
package endian

import "encoding/binary"

// EndianEngine combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary. It is satisfied by binary.LittleEndian and
// binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine. This is the byte
// order for every integer field in the var file format.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine. The BCD mantissa packs
// its digit pairs in this order.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
