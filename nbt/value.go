package nbt

import (
	"github.com/arloliu/anvil/format"
)

// Value is one node of a tag tree.
//
// The set of implementations is closed: End, Byte, Short, Int, Long, Float, Double,
// ByteArray, String, *List, *Compound, IntArray and LongArray. Use a type switch to
// inspect a Value:
//
//	switch v := value.(type) {
//	case nbt.Int:
//	    fmt.Println("int", int32(v))
//	case *nbt.Compound:
//	    fmt.Println("compound with", v.Len(), "entries")
//	}
type Value interface {
	// Type returns the wire tag id of the value.
	Type() format.TagType

	sealed()
}

// Tag is a named value: the document root or one entry of a Compound.
type Tag struct {
	Name  string
	Value Value
}

// Type returns the tag id of the value, or format.TagEnd for an empty Tag.
func (t Tag) Type() format.TagType {
	if t.Value == nil {
		return format.TagEnd
	}

	return t.Value.Type()
}

// Compound returns the value as a compound, or nil if it is not one.
func (t Tag) Compound() *Compound {
	c, _ := t.Value.(*Compound)
	return c
}

type (
	// End terminates a compound in the wire format. It never appears as a compound
	// entry; it is only produced when a stream's root tag is End.
	End struct{}

	Byte   int8
	Short  int16
	Int    int32
	Long   int64
	Float  float32
	Double float64
	String string

	ByteArray []int8
	IntArray  []int32
	LongArray []int64
)

func (End) Type() format.TagType       { return format.TagEnd }
func (Byte) Type() format.TagType      { return format.TagByte }
func (Short) Type() format.TagType     { return format.TagShort }
func (Int) Type() format.TagType       { return format.TagInt }
func (Long) Type() format.TagType      { return format.TagLong }
func (Float) Type() format.TagType     { return format.TagFloat }
func (Double) Type() format.TagType    { return format.TagDouble }
func (ByteArray) Type() format.TagType { return format.TagByteArray }
func (String) Type() format.TagType    { return format.TagString }
func (*List) Type() format.TagType     { return format.TagList }
func (*Compound) Type() format.TagType { return format.TagCompound }
func (IntArray) Type() format.TagType  { return format.TagIntArray }
func (LongArray) Type() format.TagType { return format.TagLongArray }

func (End) sealed()       {}
func (Byte) sealed()      {}
func (Short) sealed()     {}
func (Int) sealed()       {}
func (Long) sealed()      {}
func (Float) sealed()     {}
func (Double) sealed()    {}
func (ByteArray) sealed() {}
func (String) sealed()    {}
func (*List) sealed()     {}
func (*Compound) sealed() {}
func (IntArray) sealed()  {}
func (LongArray) sealed() {}

// List is an ordered sequence of unnamed values sharing one element type.
//
// Elem is preserved even when the list is empty so that an empty list round-trips
// with its declared element type. An untyped empty list uses format.TagEnd.
type List struct {
	Elem  format.TagType
	Items []Value
}

// NewList creates a list of the given element type.
//
// The items are not validated here; Encode rejects lists whose items do not match Elem.
func NewList(elem format.TagType, items ...Value) *List {
	return &List{
		Elem:  elem,
		Items: append(make([]Value, 0, len(items)), items...),
	}
}

// Len returns the number of items in the list.
func (l *List) Len() int {
	if l == nil {
		return 0
	}

	return len(l.Items)
}

// At returns the i-th item, or false when i is out of range.
func (l *List) At(i int) (Value, bool) {
	if l == nil || i < 0 || i >= len(l.Items) {
		return nil, false
	}

	return l.Items[i], true
}

// Append appends items to the list.
func (l *List) Append(items ...Value) {
	l.Items = append(l.Items, items...)
}

// AsInt64 returns the value of any integer scalar widened to int64.
func AsInt64(v Value) (int64, bool) {
	switch n := v.(type) {
	case Byte:
		return int64(n), true
	case Short:
		return int64(n), true
	case Int:
		return int64(n), true
	case Long:
		return int64(n), true
	default:
		return 0, false
	}
}

// AsFloat64 returns the value of any numeric scalar widened to float64.
func AsFloat64(v Value) (float64, bool) {
	switch n := v.(type) {
	case Float:
		return float64(n), true
	case Double:
		return float64(n), true
	default:
		i, ok := AsInt64(v)
		return float64(i), ok
	}
}

// AsInts returns the elements of an integer array or a list of integers as int64s.
//
// Bounding boxes, for example, are stored as an IntArray in recent worlds and as a
// list of Int in older ones.
func AsInts(v Value) ([]int64, bool) {
	switch a := v.(type) {
	case ByteArray:
		out := make([]int64, len(a))
		for i, x := range a {
			out[i] = int64(x)
		}

		return out, true
	case IntArray:
		out := make([]int64, len(a))
		for i, x := range a {
			out[i] = int64(x)
		}

		return out, true
	case LongArray:
		return append([]int64(nil), a...), true
	case *List:
		out := make([]int64, len(a.Items))
		for i, item := range a.Items {
			n, ok := AsInt64(item)
			if !ok {
				return nil, false
			}
			out[i] = n
		}

		return out, true
	default:
		return nil, false
	}
}
