package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/anvil/errs"
)

// Header is the fixed 8192-byte table at the start of every region file.
//
// Entries are indexed by Index(x, z). The location table occupies the first 4096 bytes
// and the timestamp table (last modification, unix seconds) the following 4096 bytes.
type Header struct {
	Locations  [ChunksPerRegion]Location
	Timestamps [ChunksPerRegion]uint32
}

// Index returns the table slot of the chunk at local coordinates (x, z).
//
// Parameters:
//   - x: Chunk column within the region, 0..31
//   - z: Chunk row within the region, 0..31
//
// Returns:
//   - int: x + z*32
//   - error: ErrInvalidCoordinate if either coordinate is out of range
func Index(x, z int) (int, error) {
	if x < 0 || x >= RegionWidth || z < 0 || z >= RegionWidth {
		return 0, fmt.Errorf("%w: (%d, %d)", errs.ErrInvalidCoordinate, x, z)
	}

	return x + z*RegionWidth, nil
}

// Coordinates is the inverse of Index.
func Coordinates(index int) (x, z int) {
	return index % RegionWidth, index / RegionWidth
}

// ParseHeader decodes a region header.
func ParseHeader(data []byte) (*Header, error) {
	h := &Header{}
	if err := h.Parse(data); err != nil {
		return nil, err
	}

	return h, nil
}

// Parse decodes the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (at least 8192 bytes; extra bytes are ignored)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is shorter than HeaderSize
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: got %d bytes, need %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}

	for i := range ChunksPerRegion {
		h.Locations[i] = ParseLocation(binary.BigEndian.Uint32(data[i*LocationEntrySize:]))
		h.Timestamps[i] = binary.BigEndian.Uint32(data[LocationTableSize+i*TimestampEntrySize:])
	}

	return nil
}

// Bytes encodes the header into its 8192-byte on-disk form.
func (h *Header) Bytes() []byte {
	return h.AppendTo(make([]byte, 0, HeaderSize))
}

// AppendTo appends the encoded header to dst.
func (h *Header) AppendTo(dst []byte) []byte {
	for _, loc := range h.Locations {
		dst = binary.BigEndian.AppendUint32(dst, loc.Pack())
	}
	for _, ts := range h.Timestamps {
		dst = binary.BigEndian.AppendUint32(dst, ts)
	}

	return dst
}

// Location returns the location entry of the chunk at (x, z).
func (h *Header) Location(x, z int) (Location, error) {
	idx, err := Index(x, z)
	if err != nil {
		return Location{}, err
	}

	return h.Locations[idx], nil
}

// Timestamp returns the last modification time, in unix seconds, of the chunk at (x, z).
func (h *Header) Timestamp(x, z int) (uint32, error) {
	idx, err := Index(x, z)
	if err != nil {
		return 0, err
	}

	return h.Timestamps[idx], nil
}

// PresentCount returns the number of chunks with a non-empty location entry.
func (h *Header) PresentCount() int {
	n := 0
	for _, loc := range h.Locations {
		if loc.IsPresent() {
			n++
		}
	}

	return n
}
