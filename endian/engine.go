// Package endian provides byte order utilities for tag stream encoding and decoding.
//
// This package combines the encoding/binary ByteOrder and AppendByteOrder interfaces
// into a single EndianEngine interface, so the tag codec can both read fixed-width
// fields from a slice and append them to a growing buffer with one value.
//
// # Basic Usage
//
// Java edition region files store tag streams in big-endian order, which is the
// default for the nbt package:
//
//	engine := endian.GetBigEndianEngine()
//	n := int32(engine.Uint32(data[0:4]))
//
// Bedrock edition stores the same tag layout in little-endian order:
//
//	engine := endian.GetLittleEndianEngine()
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsBigEndian reports whether engine is the big-endian engine.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}
