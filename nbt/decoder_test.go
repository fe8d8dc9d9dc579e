package nbt

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/stretchr/testify/require"
)

// streamBuilder assembles big-endian tag streams byte by byte.
type streamBuilder struct {
	bytes.Buffer
}

func (b *streamBuilder) id(t format.TagType) *streamBuilder {
	b.WriteByte(byte(t))
	return b
}

func (b *streamBuilder) name(s string) *streamBuilder {
	_ = binary.Write(b, binary.BigEndian, int16(len(s))) //nolint: gosec
	b.WriteString(s)

	return b
}

func (b *streamBuilder) i16(v int16) *streamBuilder {
	_ = binary.Write(b, binary.BigEndian, v)
	return b
}

func (b *streamBuilder) i32(v int32) *streamBuilder {
	_ = binary.Write(b, binary.BigEndian, v)
	return b
}

func (b *streamBuilder) raw(p ...byte) *streamBuilder {
	b.Write(p)
	return b
}

func TestDecode_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected Value
	}{
		{"byte", []byte{0x01, 0x00, 0x01, 'v', 0xFF}, Byte(-1)},
		{"short", []byte{0x02, 0x00, 0x01, 'v', 0x80, 0x00}, Short(-32768)},
		{"int", []byte{0x03, 0x00, 0x01, 'v', 0x00, 0x00, 0x00, 0x2A}, Int(42)},
		{"long", []byte{0x04, 0x00, 0x01, 'v', 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00}, Long(256)},
		{"float", []byte{0x05, 0x00, 0x01, 'v', 0x3F, 0xC0, 0x00, 0x00}, Float(1.5)},
		{"double", []byte{0x06, 0x00, 0x01, 'v', 0xC0, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, Double(-2.5)},
		{"string", []byte{0x08, 0x00, 0x01, 'v', 0x00, 0x02, 'h', 'i'}, String("hi")},
		{"byte array", []byte{0x07, 0x00, 0x01, 'v', 0x00, 0x00, 0x00, 0x02, 0x01, 0xFE}, ByteArray{1, -2}},
		{"int array", []byte{0x0B, 0x00, 0x01, 'v', 0x00, 0x00, 0x00, 0x01, 0xFF, 0xFF, 0xFF, 0xFE}, IntArray{-2}},
		{
			"long array",
			[]byte{0x0C, 0x00, 0x01, 'v', 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x07},
			LongArray{7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, err := Decode(tt.data)
			require.NoError(t, err)
			require.Equal(t, "v", tag.Name)
			require.Equal(t, tt.expected, tag.Value)
		})
	}
}

func TestDecode_CompoundWithTwoInts(t *testing.T) {
	var b streamBuilder
	b.id(format.TagCompound).name("").
		id(format.TagInt).name("a").i32(1).
		id(format.TagInt).name("b").i32(2).
		id(format.TagEnd)

	tag, err := Decode(b.Bytes())
	require.NoError(t, err)

	c := tag.Compound()
	require.NotNil(t, c)
	require.Equal(t, 2, c.Len())
	require.Equal(t, []string{"a", "b"}, c.Names())

	a, err := c.GetInt("a")
	require.NoError(t, err)
	require.Equal(t, int32(1), a)
}

func TestDecode_EmptyContainers(t *testing.T) {
	t.Run("empty compound", func(t *testing.T) {
		tag, err := Decode([]byte{0x0A, 0x00, 0x00, 0x00})
		require.NoError(t, err)
		require.Equal(t, 0, tag.Compound().Len())
	})

	t.Run("empty list keeps element type", func(t *testing.T) {
		var b streamBuilder
		b.id(format.TagList).name("l").id(format.TagString).i32(0)

		tag, err := Decode(b.Bytes())
		require.NoError(t, err)
		require.Equal(t, NewList(format.TagString), tag.Value)
	})

	t.Run("empty list of End", func(t *testing.T) {
		var b streamBuilder
		b.id(format.TagList).name("l").id(format.TagEnd).i32(0)

		tag, err := Decode(b.Bytes())
		require.NoError(t, err)
		require.Equal(t, NewList(format.TagEnd), tag.Value)
	})

	t.Run("empty byte array", func(t *testing.T) {
		var b streamBuilder
		b.id(format.TagByteArray).name("a").i32(0)

		tag, err := Decode(b.Bytes())
		require.NoError(t, err)
		require.Equal(t, ByteArray{}, tag.Value)
	})
}

func TestDecode_RootEnd(t *testing.T) {
	tag, err := Decode([]byte{0x00})
	require.NoError(t, err)
	require.Equal(t, Tag{Value: End{}}, tag)
}

func TestDecode_NegativeStringLengthIsEmpty(t *testing.T) {
	var b streamBuilder
	b.id(format.TagString).name("s").i16(-5)

	tag, err := Decode(b.Bytes())
	require.NoError(t, err)
	require.Equal(t, String(""), tag.Value)
}

func TestDecode_NestedLists(t *testing.T) {
	// list of lists of compounds, three levels deep
	var b streamBuilder
	b.id(format.TagList).name("outer").id(format.TagList).i32(1).
		id(format.TagCompound).i32(2).
		id(format.TagByte).name("k").raw(0x05).id(format.TagEnd).
		id(format.TagEnd)

	tag, err := Decode(b.Bytes())
	require.NoError(t, err)

	outer, ok := tag.Value.(*List)
	require.True(t, ok)
	require.Equal(t, format.TagList, outer.Elem)
	require.Equal(t, 1, outer.Len())

	inner, ok := outer.Items[0].(*List)
	require.True(t, ok)
	require.Equal(t, format.TagCompound, inner.Elem)
	require.Equal(t, 2, inner.Len())

	first := inner.Items[0].(*Compound)
	k, err := first.GetByte("k")
	require.NoError(t, err)
	require.Equal(t, int8(5), k)
	require.Equal(t, 0, inner.Items[1].(*Compound).Len())
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *streamBuilder)
	}{
		{"negative byte array count", func(b *streamBuilder) {
			b.id(format.TagByteArray).name("").i32(-1)
		}},
		{"negative int array count", func(b *streamBuilder) {
			b.id(format.TagIntArray).name("").i32(-1)
		}},
		{"negative long array count", func(b *streamBuilder) {
			b.id(format.TagLongArray).name("").i32(-7)
		}},
		{"negative list count", func(b *streamBuilder) {
			b.id(format.TagList).name("").id(format.TagInt).i32(-1)
		}},
		{"compound missing End", func(b *streamBuilder) {
			b.id(format.TagCompound).name("").id(format.TagInt).name("a").i32(1)
		}},
		{"truncated int", func(b *streamBuilder) {
			b.id(format.TagInt).name("").raw(0x00, 0x01)
		}},
		{"truncated name", func(b *streamBuilder) {
			b.id(format.TagInt).i16(10).raw('a', 'b')
		}},
		{"truncated string payload", func(b *streamBuilder) {
			b.id(format.TagString).name("").i16(4).raw('a')
		}},
		{"truncated byte array payload", func(b *streamBuilder) {
			b.id(format.TagByteArray).name("").i32(4).raw(1, 2, 3)
		}},
		{"truncated int array payload", func(b *streamBuilder) {
			b.id(format.TagIntArray).name("").i32(2).raw(0, 0, 0, 1, 0, 0)
		}},
		{"truncated long array payload", func(b *streamBuilder) {
			b.id(format.TagLongArray).name("").i32(1).raw(0, 0, 0, 0, 0, 0, 0)
		}},
		{"huge int array count", func(b *streamBuilder) {
			b.id(format.TagIntArray).name("").i32(0x7FFFFFFF)
		}},
		{"huge list count", func(b *streamBuilder) {
			b.id(format.TagList).name("").id(format.TagLong).i32(0x7FFFFFFF).raw(0, 0, 0, 0)
		}},
		{"non-empty list of End", func(b *streamBuilder) {
			b.id(format.TagList).name("").id(format.TagEnd).i32(3)
		}},
		{"empty input", func(_ *streamBuilder) {}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b streamBuilder
			tt.build(&b)

			_, err := Decode(b.Bytes())
			require.ErrorIs(t, err, errs.ErrMalformedStream)
		})
	}
}

func TestDecode_UnknownTagID(t *testing.T) {
	t.Run("root", func(t *testing.T) {
		_, err := Decode([]byte{0x0D, 0x00, 0x00})
		require.ErrorIs(t, err, errs.ErrUnknownTagID)
	})

	t.Run("compound entry", func(t *testing.T) {
		_, err := Decode([]byte{0x0A, 0x00, 0x00, 0x0D, 0x00, 0x00, 0x00})
		require.ErrorIs(t, err, errs.ErrUnknownTagID)
	})

	t.Run("list element", func(t *testing.T) {
		_, err := Decode([]byte{0x09, 0x00, 0x00, 0x0D, 0x00, 0x00, 0x00, 0x00})
		require.ErrorIs(t, err, errs.ErrUnknownTagID)
	})

	t.Run("negative id", func(t *testing.T) {
		_, err := Decode([]byte{0xFF, 0x00, 0x00})
		require.ErrorIs(t, err, errs.ErrUnknownTagID)
	})
}

func TestDecode_DepthLimit(t *testing.T) {
	nested := func(levels int) []byte {
		var b streamBuilder
		b.id(format.TagCompound).name("")
		for range levels - 1 {
			b.id(format.TagCompound).name("")
		}
		for range levels {
			b.id(format.TagEnd)
		}

		return b.Bytes()
	}

	t.Run("within default limit", func(t *testing.T) {
		_, err := Decode(nested(DefaultMaxDepth))
		require.NoError(t, err)
	})

	t.Run("beyond default limit", func(t *testing.T) {
		_, err := Decode(nested(DefaultMaxDepth + 1))
		require.ErrorIs(t, err, errs.ErrMalformedStream)
		require.Contains(t, err.Error(), "depth")
	})

	t.Run("custom limit", func(t *testing.T) {
		_, err := Decode(nested(3), WithMaxDepth(3))
		require.NoError(t, err)

		_, err = Decode(nested(4), WithMaxDepth(3))
		require.ErrorIs(t, err, errs.ErrMalformedStream)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := Decode(nested(1), WithMaxDepth(0))
		require.Error(t, err)
	})
}

func TestDecode_DuplicateKeyReplacesInPlace(t *testing.T) {
	var b streamBuilder
	b.id(format.TagCompound).name("").
		id(format.TagInt).name("a").i32(1).
		id(format.TagInt).name("b").i32(2).
		id(format.TagString).name("a").name("again").
		id(format.TagEnd)

	tag, err := Decode(b.Bytes())
	require.NoError(t, err)

	c := tag.Compound()
	require.Equal(t, []string{"a", "b"}, c.Names())
	s, err := c.GetString("a")
	require.NoError(t, err)
	require.Equal(t, "again", s)
}

func TestDecoder_TrailingBytes(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x07, 0xAA, 0xBB}

	d, err := NewDecoder(data)
	require.NoError(t, err)

	tag, err := d.Decode()
	require.NoError(t, err)
	require.Equal(t, Byte(7), tag.Value)
	require.Equal(t, 4, d.Offset())
	require.Equal(t, 2, d.Remaining())
}

func BenchmarkDecode(b *testing.B) {
	data, err := Encode(Tag{Name: "root", Value: sampleChunk()})
	require.NoError(b, err)

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	for b.Loop() {
		_, _ = Decode(data)
	}
}
