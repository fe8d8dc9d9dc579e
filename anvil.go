// Package anvil reads region (.mca) files and the named binary tag streams stored in them.
//
// A region file stores up to 32x32 chunks, each a compressed tag stream. This package
// provides top-level wrappers for the common cases; use the region and nbt packages
// directly for fine-grained control.
//
// # Basic Usage
//
// Reading a single chunk:
//
//	import "github.com/arloliu/anvil"
//
//	root, ok, err := anvil.ReadChunk("world/region/r.0.0.mca", 3, 5)
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    return nil // chunk never generated
//	}
//	level, err := root.Compound().GetCompound("Level")
//
// Iterating over every chunk of a region:
//
//	r, err := anvil.OpenRegion("world/region/r.0.0.mca")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for chunk, err := range r.Chunks() {
//	    if err != nil {
//	        log.Println(err) // one bad chunk does not stop the scan
//	        continue
//	    }
//	    fmt.Println(chunk.X, chunk.Z, chunk.Timestamp)
//	}
//
// Decoding and encoding tag streams:
//
//	tag, err := anvil.DecodeNBT(data)
//	out, err := anvil.EncodeNBT(tag)
//
// # Package Structure
//
//   - nbt: tag value model, decoder and encoder
//   - region: region file reader and writer
//   - section: region header layout
//   - compress: chunk compression codecs
//   - errs: sentinel errors for errors.Is matching
package anvil

import (
	"github.com/arloliu/anvil/nbt"
	"github.com/arloliu/anvil/region"
)

// OpenRegion opens a region file. The caller must Close the returned reader.
//
// Parameters:
//   - path: Region file path, normally named r.<x>.<z>.mca
//   - opts: Reader options such as region.WithTagOptions
//
// Returns:
//   - *region.Reader: Reader with the header loaded
//   - error: File system error or errs.ErrInvalidHeaderSize
func OpenRegion(path string, opts ...region.Option) (*region.Reader, error) {
	return region.Open(path, opts...)
}

// ReadChunk opens the region file at path, reads the chunk at local coordinates (x, z)
// and closes the file.
//
// Returns:
//   - nbt.Tag: Root tag of the chunk
//   - bool: false if the chunk is absent
//   - error: Any error of region.Open or region.Reader.ReadChunk
func ReadChunk(path string, x, z int, opts ...region.Option) (nbt.Tag, bool, error) {
	r, err := region.Open(path, opts...)
	if err != nil {
		return nbt.Tag{}, false, err
	}
	defer r.Close()

	return r.ReadChunk(x, z)
}

// NewRegionWriter creates a region writer, zlib-compressed unless configured otherwise.
func NewRegionWriter(opts ...region.Option) (*region.Writer, error) {
	return region.NewWriter(opts...)
}

// DecodeNBT decodes a big-endian tag stream unless options say otherwise.
func DecodeNBT(data []byte, opts ...nbt.Option) (nbt.Tag, error) {
	return nbt.Decode(data, opts...)
}

// EncodeNBT encodes a tag into a big-endian tag stream unless options say otherwise.
func EncodeNBT(tag nbt.Tag, opts ...nbt.Option) ([]byte, error) {
	return nbt.Encode(tag, opts...)
}
