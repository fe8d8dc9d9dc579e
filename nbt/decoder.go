package nbt

import (
	"fmt"
	"math"

	"github.com/arloliu/anvil/endian"
	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
)

// minPayloadSize is the smallest number of bytes a payload of each type can occupy.
// It lets the decoder reject list counts that cannot fit in the remaining input
// before allocating the list.
var minPayloadSize = [...]int{
	format.TagEnd:       0,
	format.TagByte:      1,
	format.TagShort:     2,
	format.TagInt:       4,
	format.TagLong:      8,
	format.TagFloat:     4,
	format.TagDouble:    8,
	format.TagByteArray: 4,
	format.TagString:    2,
	format.TagList:      5,
	format.TagCompound:  1,
	format.TagIntArray:  4,
	format.TagLongArray: 4,
}

// Decoder reads named tags from an in-memory tag stream.
//
// Every length and count read from the stream is checked against the remaining input
// before anything is allocated, so a corrupt or hostile stream fails with
// errs.ErrMalformedStream instead of triggering huge allocations.
//
// Note: The Decoder is NOT thread-safe.
type Decoder struct {
	data     []byte
	pos      int
	engine   endian.EndianEngine
	maxDepth int
}

// NewDecoder creates a decoder over data.
//
// Parameters:
//   - data: Tag stream bytes (already decompressed)
//   - opts: Byte order and depth options (big-endian, depth 512 by default)
//
// Returns:
//   - *Decoder: Decoder positioned at the start of data
//   - error: Invalid option error
func NewDecoder(data []byte, opts ...Option) (*Decoder, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	return &Decoder{
		data:     data,
		engine:   cfg.engine,
		maxDepth: cfg.maxDepth,
	}, nil
}

// Decode decodes a whole tag stream and returns its root tag.
//
// Bytes after the root tag are ignored.
//
// Returns:
//   - Tag: Root tag with its name; a stream starting with End yields a Tag holding End{}
//   - error: errs.ErrMalformedStream or errs.ErrUnknownTagID (wrapped with the offset)
func Decode(data []byte, opts ...Option) (Tag, error) {
	d, err := NewDecoder(data, opts...)
	if err != nil {
		return Tag{}, err
	}

	return d.Decode()
}

// Decode reads the next named tag.
func (d *Decoder) Decode() (Tag, error) {
	id, err := d.readTagID()
	if err != nil {
		return Tag{}, err
	}
	if id == format.TagEnd {
		return Tag{Value: End{}}, nil
	}

	name, err := d.readString()
	if err != nil {
		return Tag{}, err
	}

	v, err := d.readPayload(id, 0)
	if err != nil {
		return Tag{}, err
	}

	return Tag{Name: name, Value: v}, nil
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int {
	return d.pos
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

func (d *Decoder) readPayload(id format.TagType, depth int) (Value, error) {
	switch id {
	case format.TagByte:
		b, err := d.next(1)
		if err != nil {
			return nil, err
		}

		return Byte(int8(b[0])), nil
	case format.TagShort:
		b, err := d.next(2)
		if err != nil {
			return nil, err
		}

		return Short(int16(d.engine.Uint16(b))), nil //nolint: gosec
	case format.TagInt:
		b, err := d.next(4)
		if err != nil {
			return nil, err
		}

		return Int(int32(d.engine.Uint32(b))), nil //nolint: gosec
	case format.TagLong:
		b, err := d.next(8)
		if err != nil {
			return nil, err
		}

		return Long(int64(d.engine.Uint64(b))), nil //nolint: gosec
	case format.TagFloat:
		b, err := d.next(4)
		if err != nil {
			return nil, err
		}

		return Float(math.Float32frombits(d.engine.Uint32(b))), nil
	case format.TagDouble:
		b, err := d.next(8)
		if err != nil {
			return nil, err
		}

		return Double(math.Float64frombits(d.engine.Uint64(b))), nil
	case format.TagByteArray:
		n, err := d.readCount(1)
		if err != nil {
			return nil, err
		}
		b, err := d.next(n)
		if err != nil {
			return nil, err
		}
		arr := make(ByteArray, n)
		for i, x := range b {
			arr[i] = int8(x)
		}

		return arr, nil
	case format.TagString:
		s, err := d.readString()
		if err != nil {
			return nil, err
		}

		return String(s), nil
	case format.TagList:
		return d.readList(depth + 1)
	case format.TagCompound:
		return d.readCompound(depth + 1)
	case format.TagIntArray:
		n, err := d.readCount(4)
		if err != nil {
			return nil, err
		}
		b, err := d.next(n * 4)
		if err != nil {
			return nil, err
		}
		arr := make(IntArray, n)
		for i := range arr {
			arr[i] = int32(d.engine.Uint32(b[i*4:])) //nolint: gosec
		}

		return arr, nil
	case format.TagLongArray:
		n, err := d.readCount(8)
		if err != nil {
			return nil, err
		}
		b, err := d.next(n * 8)
		if err != nil {
			return nil, err
		}
		arr := make(LongArray, n)
		for i := range arr {
			arr[i] = int64(d.engine.Uint64(b[i*8:])) //nolint: gosec
		}

		return arr, nil
	case format.TagEnd:
		return End{}, nil
	default:
		return nil, fmt.Errorf("%w: %d at offset %d", errs.ErrUnknownTagID, id, d.pos)
	}
}

func (d *Decoder) readList(depth int) (*List, error) {
	if depth > d.maxDepth {
		return nil, d.malformed("nesting depth exceeds %d", d.maxDepth)
	}

	elem, err := d.readTagID()
	if err != nil {
		return nil, err
	}

	n, err := d.readCount(minPayloadSize[elem])
	if err != nil {
		return nil, err
	}
	if n > 0 && elem == format.TagEnd {
		return nil, d.malformed("non-empty list of End (%d items)", n)
	}

	list := &List{Elem: elem, Items: make([]Value, 0, n)}
	for range n {
		v, err := d.readPayload(elem, depth)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, v)
	}

	return list, nil
}

func (d *Decoder) readCompound(depth int) (*Compound, error) {
	if depth > d.maxDepth {
		return nil, d.malformed("nesting depth exceeds %d", d.maxDepth)
	}

	c := &Compound{}
	for {
		if d.Remaining() == 0 {
			return nil, d.malformed("compound missing End tag")
		}

		id, err := d.readTagID()
		if err != nil {
			return nil, err
		}
		if id == format.TagEnd {
			return c, nil
		}

		name, err := d.readString()
		if err != nil {
			return nil, err
		}

		v, err := d.readPayload(id, depth)
		if err != nil {
			return nil, err
		}
		c.Set(name, v)
	}
}

func (d *Decoder) readTagID() (format.TagType, error) {
	b, err := d.next(1)
	if err != nil {
		return 0, err
	}

	id := format.TagType(int8(b[0]))
	if !id.Valid() {
		return 0, fmt.Errorf("%w: %d at offset %d", errs.ErrUnknownTagID, id, d.pos-1)
	}

	return id, nil
}

// readString reads an int16 length-prefixed UTF-8 string; a length <= 0 is empty.
func (d *Decoder) readString() (string, error) {
	b, err := d.next(2)
	if err != nil {
		return "", err
	}

	n := int(int16(d.engine.Uint16(b))) //nolint: gosec
	if n <= 0 {
		return "", nil
	}

	s, err := d.next(n)
	if err != nil {
		return "", err
	}

	return string(s), nil
}

// readCount reads an int32 element count and checks that count elements of at least
// elemSize bytes each fit in the remaining input.
func (d *Decoder) readCount(elemSize int) (int, error) {
	b, err := d.next(4)
	if err != nil {
		return 0, err
	}

	n := int(int32(d.engine.Uint32(b))) //nolint: gosec
	if n < 0 {
		return 0, d.malformed("negative count %d", n)
	}
	if n*elemSize > d.Remaining() {
		return 0, d.malformed("count %d exceeds remaining %d bytes", n, d.Remaining())
	}

	return n, nil
}

func (d *Decoder) next(n int) ([]byte, error) {
	if n > d.Remaining() {
		return nil, d.malformed("need %d bytes, have %d", n, d.Remaining())
	}

	b := d.data[d.pos : d.pos+n]
	d.pos += n

	return b, nil
}

func (d *Decoder) malformed(msg string, args ...any) error {
	return fmt.Errorf("%w: %s at offset %d", errs.ErrMalformedStream, fmt.Sprintf(msg, args...), d.pos)
}
