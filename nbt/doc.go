// Package nbt implements the named binary tag format used by region chunk payloads.
//
// A tag stream holds one named root tag. Its value is a tree built from the thirteen
// tag types: scalars, strings, byte/int/long arrays, typed lists and compounds.
//
// Byte Order:
//
// Java edition streams are big-endian, which is the default. Bedrock edition streams
// are little-endian and can be read with WithLittleEndian.
//
// Decoding:
//
//	tag, err := nbt.Decode(data)
//	if err != nil {
//	    return err
//	}
//	level, err := tag.Compound().GetCompound("Level")
//
// The decoder validates every count and length against the remaining input before
// allocating, and limits nesting to DefaultMaxDepth levels. A truncated or corrupt
// stream fails with errs.ErrMalformedStream; a byte that is not a tag id fails with
// errs.ErrUnknownTagID.
//
// Encoding:
//
//	root := nbt.NewCompound(
//	    nbt.Tag{Name: "xPos", Value: nbt.Int(3)},
//	    nbt.Tag{Name: "Status", Value: nbt.String("full")},
//	)
//	data, err := nbt.Encode(nbt.Tag{Value: root})
//
// Compound entries keep their insertion order, so decoding and re-encoding a well-formed
// stream reproduces it byte for byte.
package nbt
