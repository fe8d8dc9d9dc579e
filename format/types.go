package format

type (
	TagType         int8
	CompressionType uint8
)

const (
	TagEnd       TagType = 0x0 // TagEnd terminates a compound; it has no name and no payload.
	TagByte      TagType = 0x1 // TagByte is a signed 8-bit integer.
	TagShort     TagType = 0x2 // TagShort is a signed 16-bit integer.
	TagInt       TagType = 0x3 // TagInt is a signed 32-bit integer.
	TagLong      TagType = 0x4 // TagLong is a signed 64-bit integer.
	TagFloat     TagType = 0x5 // TagFloat is an IEEE-754 32-bit float.
	TagDouble    TagType = 0x6 // TagDouble is an IEEE-754 64-bit float.
	TagByteArray TagType = 0x7 // TagByteArray is a length-prefixed signed byte sequence.
	TagString    TagType = 0x8 // TagString is length-prefixed UTF-8 text.
	TagList      TagType = 0x9 // TagList is a homogeneous sequence of unnamed values.
	TagCompound  TagType = 0xA // TagCompound is a mapping of names to values.
	TagIntArray  TagType = 0xB // TagIntArray is a length-prefixed int32 sequence.
	TagLongArray TagType = 0xC // TagLongArray is a length-prefixed int64 sequence.

	CompressionGzip   CompressionType = 0x1  // CompressionGzip represents gzip (RFC1952) compressed chunks.
	CompressionZlib   CompressionType = 0x2  // CompressionZlib represents zlib (RFC1950) compressed chunks.
	CompressionNone   CompressionType = 0x3  // CompressionNone represents uncompressed chunks.
	CompressionLZ4    CompressionType = 0x4  // CompressionLZ4 represents LZ4Block stream compressed chunks.
	CompressionCustom CompressionType = 0x7F // CompressionCustom is followed by the name of the algorithm.

	// CompressionExternalFlag marks a chunk whose payload is stored in a separate .mcc file.
	CompressionExternalFlag CompressionType = 0x80
)

// Valid reports whether t is one of the 13 known tag ids.
func (t TagType) Valid() bool {
	return t >= TagEnd && t <= TagLongArray
}

func (t TagType) String() string {
	switch t {
	case TagEnd:
		return "End"
	case TagByte:
		return "Byte"
	case TagShort:
		return "Short"
	case TagInt:
		return "Int"
	case TagLong:
		return "Long"
	case TagFloat:
		return "Float"
	case TagDouble:
		return "Double"
	case TagByteArray:
		return "ByteArray"
	case TagString:
		return "String"
	case TagList:
		return "List"
	case TagCompound:
		return "Compound"
	case TagIntArray:
		return "IntArray"
	case TagLongArray:
		return "LongArray"
	default:
		return "Unknown"
	}
}

// IsExternal reports whether the external flag bit is set.
func (c CompressionType) IsExternal() bool {
	return c&CompressionExternalFlag != 0
}

// Scheme returns the compression scheme with the external flag cleared.
func (c CompressionType) Scheme() CompressionType {
	return c &^ CompressionExternalFlag
}

func (c CompressionType) String() string {
	switch c.Scheme() {
	case CompressionGzip:
		return "Gzip"
	case CompressionZlib:
		return "Zlib"
	case CompressionNone:
		return "None"
	case CompressionLZ4:
		return "LZ4"
	case CompressionCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}
