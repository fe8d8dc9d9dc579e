package nbt

import (
	"fmt"
	"iter"

	"github.com/arloliu/anvil/errs"
)

// Compound is a mapping of unique names to values that remembers insertion order.
//
// Lookups are O(1) through an index map; iteration and encoding follow the order in
// which entries were first set, so a decoded compound re-encodes byte for byte.
//
// The zero value is an empty compound ready to use.
type Compound struct {
	entries []Tag
	index   map[string]int
}

// NewCompound creates a compound from the given entries, in order.
//
// A later entry with the same name as an earlier one replaces its value in place.
func NewCompound(entries ...Tag) *Compound {
	c := &Compound{}
	for _, e := range entries {
		c.Set(e.Name, e.Value)
	}

	return c
}

// Len returns the number of entries.
func (c *Compound) Len() int {
	if c == nil {
		return 0
	}

	return len(c.entries)
}

// Get returns the value stored under name. A nil compound holds no entries.
func (c *Compound) Get(name string) (Value, bool) {
	if c == nil {
		return nil, false
	}

	i, ok := c.index[name]
	if !ok {
		return nil, false
	}

	return c.entries[i].Value, true
}

// Has reports whether an entry named name exists.
func (c *Compound) Has(name string) bool {
	if c == nil {
		return false
	}

	_, ok := c.index[name]
	return ok
}

// Set stores v under name. An existing entry keeps its position.
func (c *Compound) Set(name string, v Value) {
	if i, ok := c.index[name]; ok {
		c.entries[i].Value = v
		return
	}

	if c.index == nil {
		c.index = make(map[string]int)
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, Tag{Name: name, Value: v})
}

// Delete removes the entry named name and reports whether it existed.
func (c *Compound) Delete(name string) bool {
	if c == nil {
		return false
	}

	i, ok := c.index[name]
	if !ok {
		return false
	}

	c.entries = append(c.entries[:i], c.entries[i+1:]...)
	delete(c.index, name)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].Name] = j
	}

	return true
}

// Names returns the entry names in order.
func (c *Compound) Names() []string {
	if c == nil {
		return nil
	}

	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}

	return names
}

// Entries returns a copy of the entries in order.
func (c *Compound) Entries() []Tag {
	if c == nil {
		return nil
	}

	return append([]Tag(nil), c.entries...)
}

// All returns an iterator over the entries in order.
func (c *Compound) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if c == nil {
			return
		}
		for _, e := range c.entries {
			if !yield(e.Name, e.Value) {
				return
			}
		}
	}
}

// Typed accessors. Each returns errs.ErrMissingField when the entry is absent and
// errs.ErrTypeMismatch when it holds a value of another type.

func (c *Compound) GetByte(name string) (int8, error) {
	v, err := lookup[Byte](c, name)
	return int8(v), err
}

func (c *Compound) GetShort(name string) (int16, error) {
	v, err := lookup[Short](c, name)
	return int16(v), err
}

func (c *Compound) GetInt(name string) (int32, error) {
	v, err := lookup[Int](c, name)
	return int32(v), err
}

func (c *Compound) GetLong(name string) (int64, error) {
	v, err := lookup[Long](c, name)
	return int64(v), err
}

func (c *Compound) GetFloat(name string) (float32, error) {
	v, err := lookup[Float](c, name)
	return float32(v), err
}

func (c *Compound) GetDouble(name string) (float64, error) {
	v, err := lookup[Double](c, name)
	return float64(v), err
}

func (c *Compound) GetString(name string) (string, error) {
	v, err := lookup[String](c, name)
	return string(v), err
}

func (c *Compound) GetByteArray(name string) ([]int8, error) {
	return lookup[ByteArray](c, name)
}

func (c *Compound) GetIntArray(name string) ([]int32, error) {
	return lookup[IntArray](c, name)
}

func (c *Compound) GetLongArray(name string) ([]int64, error) {
	return lookup[LongArray](c, name)
}

func (c *Compound) GetList(name string) (*List, error) {
	return lookup[*List](c, name)
}

func (c *Compound) GetCompound(name string) (*Compound, error) {
	return lookup[*Compound](c, name)
}

// Path follows a sequence of nested compound names and returns the final value.
//
//	starts, err := root.Path("Level", "Structures", "Starts")
func (c *Compound) Path(names ...string) (Value, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: compound is nil", errs.ErrMissingField)
	}

	var cur Value = c
	for i, name := range names {
		comp, ok := cur.(*Compound)
		if !ok {
			return nil, fmt.Errorf("%w: %q is %s, not Compound", errs.ErrTypeMismatch, names[i-1], cur.Type())
		}
		if comp == nil {
			return nil, fmt.Errorf("%w: %q is nil", errs.ErrMissingField, names[i-1])
		}
		v, ok := comp.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errs.ErrMissingField, name)
		}
		cur = v
	}

	return cur, nil
}

func lookup[T Value](c *Compound, name string) (T, error) {
	var zero T

	v, ok := c.Get(name)
	if !ok {
		return zero, fmt.Errorf("%w: %q", errs.ErrMissingField, name)
	}

	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %s, want %s", errs.ErrTypeMismatch, name, v.Type(), zero.Type())
	}

	return typed, nil
}
