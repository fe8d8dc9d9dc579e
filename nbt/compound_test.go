package nbt

import (
	"encoding/json"
	"testing"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompound_Order(t *testing.T) {
	var c Compound
	c.Set("z", Int(1))
	c.Set("a", Int(2))
	c.Set("m", Int(3))
	c.Set("z", Int(4))

	require.Equal(t, []string{"z", "a", "m"}, c.Names())

	v, ok := c.Get("z")
	require.True(t, ok)
	require.Equal(t, Int(4), v)

	require.True(t, c.Delete("a"))
	require.False(t, c.Delete("a"))
	require.Equal(t, []string{"z", "m"}, c.Names())

	v, ok = c.Get("m")
	require.True(t, ok)
	require.Equal(t, Int(3), v)
	require.False(t, c.Has("a"))

	var seen []string
	for name := range c.All() {
		seen = append(seen, name)
	}
	require.Equal(t, []string{"z", "m"}, seen)
}

func TestCompound_Accessors(t *testing.T) {
	c := NewCompound(
		Tag{Name: "b", Value: Byte(1)},
		Tag{Name: "s", Value: Short(2)},
		Tag{Name: "i", Value: Int(3)},
		Tag{Name: "l", Value: Long(4)},
		Tag{Name: "f", Value: Float(5)},
		Tag{Name: "d", Value: Double(6)},
		Tag{Name: "str", Value: String("seven")},
		Tag{Name: "ba", Value: ByteArray{8}},
		Tag{Name: "ia", Value: IntArray{9}},
		Tag{Name: "la", Value: LongArray{10}},
		Tag{Name: "list", Value: NewList(format.TagInt, Int(11))},
		Tag{Name: "comp", Value: NewCompound()},
	)

	b, err := c.GetByte("b")
	require.NoError(t, err)
	assert.Equal(t, int8(1), b)

	s, err := c.GetShort("s")
	require.NoError(t, err)
	assert.Equal(t, int16(2), s)

	i, err := c.GetInt("i")
	require.NoError(t, err)
	assert.Equal(t, int32(3), i)

	l, err := c.GetLong("l")
	require.NoError(t, err)
	assert.Equal(t, int64(4), l)

	f, err := c.GetFloat("f")
	require.NoError(t, err)
	assert.InDelta(t, float32(5), f, 0)

	d, err := c.GetDouble("d")
	require.NoError(t, err)
	assert.InDelta(t, 6.0, d, 0)

	str, err := c.GetString("str")
	require.NoError(t, err)
	assert.Equal(t, "seven", str)

	ba, err := c.GetByteArray("ba")
	require.NoError(t, err)
	assert.Equal(t, []int8{8}, ba)

	ia, err := c.GetIntArray("ia")
	require.NoError(t, err)
	assert.Equal(t, []int32{9}, ia)

	la, err := c.GetLongArray("la")
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, la)

	list, err := c.GetList("list")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Len())

	comp, err := c.GetCompound("comp")
	require.NoError(t, err)
	assert.Equal(t, 0, comp.Len())

	t.Run("missing field", func(t *testing.T) {
		_, err := c.GetInt("nope")
		require.ErrorIs(t, err, errs.ErrMissingField)
		require.NotErrorIs(t, err, errs.ErrTypeMismatch)
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := c.GetInt("l")
		require.ErrorIs(t, err, errs.ErrTypeMismatch)
		require.NotErrorIs(t, err, errs.ErrMissingField)
		require.Contains(t, err.Error(), "Long")
	})
}

func TestCompound_Path(t *testing.T) {
	starts := NewCompound(Tag{Name: "Village", Value: NewCompound()})
	root := NewCompound(Tag{Name: "Level", Value: NewCompound(
		Tag{Name: "Structures", Value: NewCompound(Tag{Name: "Starts", Value: starts})},
		Tag{Name: "xPos", Value: Int(1)},
	)})

	v, err := root.Path("Level", "Structures", "Starts")
	require.NoError(t, err)
	require.Same(t, starts, v)

	v, err = root.Path()
	require.NoError(t, err)
	require.Same(t, root, v)

	_, err = root.Path("Level", "Missing")
	require.ErrorIs(t, err, errs.ErrMissingField)

	_, err = root.Path("Level", "xPos", "deeper")
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
}

func TestCompound_Nil(t *testing.T) {
	// a root End decodes fine, and Tag.Compound then returns nil
	tag, err := Decode([]byte{0x00})
	require.NoError(t, err)
	c := tag.Compound()
	require.Nil(t, c)

	_, err = c.GetCompound("Level")
	require.ErrorIs(t, err, errs.ErrMissingField)
	_, err = c.GetInt("xPos")
	require.ErrorIs(t, err, errs.ErrMissingField)
	_, err = c.Path("Level", "Structures")
	require.ErrorIs(t, err, errs.ErrMissingField)

	_, ok := c.Get("Level")
	assert.False(t, ok)
	assert.False(t, c.Has("Level"))
	assert.False(t, c.Delete("Level"))
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Names())
	assert.Empty(t, c.Entries())
	for range c.All() {
		t.Fatal("nil compound yielded an entry")
	}
	assert.Nil(t, Plain(c))

	root := NewCompound(Tag{Name: "Level", Value: (*Compound)(nil)})
	_, err = root.Path("Level", "Structures")
	require.ErrorIs(t, err, errs.ErrMissingField)

	var l *List
	assert.Equal(t, 0, l.Len())
	_, ok = l.At(0)
	assert.False(t, ok)
	assert.Nil(t, Plain(l))
}

func TestList(t *testing.T) {
	l := NewList(format.TagInt)
	require.Equal(t, 0, l.Len())

	l.Append(Int(1), Int(2))
	require.Equal(t, 2, l.Len())

	v, ok := l.At(1)
	require.True(t, ok)
	require.Equal(t, Int(2), v)

	_, ok = l.At(2)
	require.False(t, ok)
	_, ok = l.At(-1)
	require.False(t, ok)
}

func TestNumericHelpers(t *testing.T) {
	n, ok := AsInt64(Short(-3))
	require.True(t, ok)
	require.Equal(t, int64(-3), n)

	_, ok = AsInt64(String("3"))
	require.False(t, ok)

	f, ok := AsFloat64(Int(2))
	require.True(t, ok)
	require.InDelta(t, 2.0, f, 0)

	f, ok = AsFloat64(Float(0.5))
	require.True(t, ok)
	require.InDelta(t, 0.5, f, 0)

	tests := []struct {
		name     string
		value    Value
		expected []int64
		ok       bool
	}{
		{"int array", IntArray{1, -2}, []int64{1, -2}, true},
		{"byte array", ByteArray{3}, []int64{3}, true},
		{"long array", LongArray{4}, []int64{4}, true},
		{"int list", NewList(format.TagInt, Int(5), Int(6)), []int64{5, 6}, true},
		{"string list", NewList(format.TagString, String("x")), nil, false},
		{"scalar", Int(1), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsInts(tt.value)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestPlain(t *testing.T) {
	root := NewCompound(
		Tag{Name: "id", Value: String("Village")},
		Tag{Name: "BB", Value: IntArray{0, 1, 2}},
		Tag{Name: "Children", Value: NewList(format.TagCompound, NewCompound(Tag{Name: "GD", Value: Int(7)}))},
		Tag{Name: "ref", Value: Byte(1)},
	)

	plain := Plain(root)
	require.Equal(t, map[string]any{
		"id":       "Village",
		"BB":       []int32{0, 1, 2},
		"Children": []any{map[string]any{"GD": int32(7)}},
		"ref":      int8(1),
	}, plain)

	data, err := json.Marshal(plain)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"Village","BB":[0,1,2],"Children":[{"GD":7}],"ref":1}`, string(data))

	require.Nil(t, Plain(End{}))
}
