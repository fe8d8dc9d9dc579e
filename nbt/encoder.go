package nbt

import (
	"fmt"
	"math"

	"github.com/arloliu/anvil/endian"
	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/pool"
)

// Encoder serializes named tags into a pooled buffer.
//
// Compound entries are written in insertion order followed by a single End byte; list
// elements are written as bare payloads after the element type and count.
//
// Note: The Encoder is NOT thread-safe. Call Reset when done to return the buffer to
// the pool; the slice returned by Bytes must not be used after Reset.
type Encoder struct {
	buf      *pool.ByteBuffer
	engine   endian.EndianEngine
	maxDepth int
}

// NewEncoder creates an encoder with the given byte order and depth options.
func NewEncoder(opts ...Option) (*Encoder, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Encoder{
		buf:      pool.GetTagBuffer(),
		engine:   cfg.engine,
		maxDepth: cfg.maxDepth,
	}, nil
}

// Encode serializes tag and returns a newly allocated byte slice.
//
// Returns:
//   - []byte: Encoded tag stream
//   - error: errs.ErrStringTooLong, errs.ErrListTypeMismatch, errs.ErrUnknownTagID for
//     unsupported values, or errs.ErrMalformedStream for trees nested beyond the depth limit
func Encode(tag Tag, opts ...Option) ([]byte, error) {
	e, err := NewEncoder(opts...)
	if err != nil {
		return nil, err
	}
	defer e.Reset()

	if err := e.Encode(tag); err != nil {
		return nil, err
	}

	return e.buf.Clone(), nil
}

// Encode appends one named tag to the buffer.
//
// On error the buffer is left at its length before the call.
func (e *Encoder) Encode(tag Tag) error {
	start := e.buf.Len()

	if err := e.writeNamed(tag.Name, tag.Value, 0); err != nil {
		e.buf.B = e.buf.B[:start]
		return err
	}

	return nil
}

// Bytes returns the encoded data. The slice shares the encoder's buffer.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of encoded bytes.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Reset returns the buffer to the pool. The encoder must not be used afterwards.
func (e *Encoder) Reset() {
	if e.buf != nil {
		pool.PutTagBuffer(e.buf)
		e.buf = nil
	}
}

func (e *Encoder) writeNamed(name string, v Value, depth int) error {
	if v == nil || v.Type() == format.TagEnd {
		if depth > 0 {
			return fmt.Errorf("%w: compound entry %q has no value", errs.ErrUnknownTagID, name)
		}
		e.buf.B = append(e.buf.B, byte(format.TagEnd))

		return nil
	}

	e.buf.B = append(e.buf.B, byte(v.Type()))
	if err := e.writeString(name); err != nil {
		return err
	}

	return e.writePayload(v, depth)
}

func (e *Encoder) writePayload(v Value, depth int) error {
	switch v := v.(type) {
	case Byte:
		e.buf.B = append(e.buf.B, byte(v))
	case Short:
		e.buf.B = e.engine.AppendUint16(e.buf.B, uint16(v)) //nolint: gosec
	case Int:
		e.buf.B = e.engine.AppendUint32(e.buf.B, uint32(v)) //nolint: gosec
	case Long:
		e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(v)) //nolint: gosec
	case Float:
		e.buf.B = e.engine.AppendUint32(e.buf.B, math.Float32bits(float32(v)))
	case Double:
		e.buf.B = e.engine.AppendUint64(e.buf.B, math.Float64bits(float64(v)))
	case ByteArray:
		if err := e.writeCount(len(v)); err != nil {
			return err
		}
		e.buf.Grow(len(v))
		for _, x := range v {
			e.buf.B = append(e.buf.B, byte(x))
		}
	case String:
		return e.writeString(string(v))
	case *List:
		if v == nil {
			return fmt.Errorf("%w: nil list", errs.ErrUnknownTagID)
		}

		return e.writeList(v, depth+1)
	case *Compound:
		if v == nil {
			return fmt.Errorf("%w: nil compound", errs.ErrUnknownTagID)
		}

		return e.writeCompound(v, depth+1)
	case IntArray:
		if err := e.writeCount(len(v)); err != nil {
			return err
		}
		e.buf.Grow(len(v) * 4)
		for _, x := range v {
			e.buf.B = e.engine.AppendUint32(e.buf.B, uint32(x)) //nolint: gosec
		}
	case LongArray:
		if err := e.writeCount(len(v)); err != nil {
			return err
		}
		e.buf.Grow(len(v) * 8)
		for _, x := range v {
			e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(x)) //nolint: gosec
		}
	case End:
		// no payload
	default:
		return fmt.Errorf("%w: unsupported value type %T", errs.ErrUnknownTagID, v)
	}

	return nil
}

func (e *Encoder) writeList(l *List, depth int) error {
	if depth > e.maxDepth {
		return fmt.Errorf("%w: nesting depth exceeds %d", errs.ErrMalformedStream, e.maxDepth)
	}
	if !l.Elem.Valid() {
		return fmt.Errorf("%w: list element type %d", errs.ErrUnknownTagID, l.Elem)
	}
	if len(l.Items) > 0 && l.Elem == format.TagEnd {
		return fmt.Errorf("%w: non-empty list declared as End", errs.ErrListTypeMismatch)
	}

	e.buf.B = append(e.buf.B, byte(l.Elem))
	if err := e.writeCount(len(l.Items)); err != nil {
		return err
	}

	for i, item := range l.Items {
		if item == nil || item.Type() != l.Elem {
			return fmt.Errorf("%w: item %d is %s, list holds %s", errs.ErrListTypeMismatch, i, typeName(item), l.Elem)
		}
		if err := e.writePayload(item, depth); err != nil {
			return err
		}
	}

	return nil
}

func (e *Encoder) writeCompound(c *Compound, depth int) error {
	if depth > e.maxDepth {
		return fmt.Errorf("%w: nesting depth exceeds %d", errs.ErrMalformedStream, e.maxDepth)
	}

	for _, entry := range c.entries {
		if err := e.writeNamed(entry.Name, entry.Value, depth); err != nil {
			return err
		}
	}
	e.buf.B = append(e.buf.B, byte(format.TagEnd))

	return nil
}

func (e *Encoder) writeString(s string) error {
	if len(s) > MaxStringLength {
		return fmt.Errorf("%w: %d bytes", errs.ErrStringTooLong, len(s))
	}

	e.buf.B = e.engine.AppendUint16(e.buf.B, uint16(len(s))) //nolint: gosec
	e.buf.B = append(e.buf.B, s...)

	return nil
}

func (e *Encoder) writeCount(n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("%w: %d elements exceed the int32 count limit", errs.ErrMalformedStream, n)
	}
	e.buf.B = e.engine.AppendUint32(e.buf.B, uint32(n)) //nolint: gosec

	return nil
}

func typeName(v Value) string {
	if v == nil {
		return "nil"
	}

	return v.Type().String()
}
