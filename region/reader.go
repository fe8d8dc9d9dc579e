package region

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/arloliu/anvil/compress"
	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/pool"
	"github.com/arloliu/anvil/nbt"
	"github.com/arloliu/anvil/section"
)

// Reader provides random access to the chunks of one region file.
//
// Only the 8192-byte header is read up front. Chunk payloads are read on demand with
// ReadAt, so absent chunks and chunks that are never requested cost nothing.
//
// Thread Safety: a Reader is immutable after construction and safe for concurrent
// use as long as the underlying io.ReaderAt is.
type Reader struct {
	src    io.ReaderAt
	closer io.Closer
	path   string
	header *section.Header
	cfg    *Config
}

// Chunk is one decoded chunk yielded by Reader.Chunks.
type Chunk struct {
	X, Z      int // local coordinates within the region
	Location  section.Location
	Timestamp time.Time
	Root      nbt.Tag
}

// ChunkError reports a failure to read one chunk.
type ChunkError struct {
	Path string
	X, Z int
	Err  error
}

func (e *ChunkError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("chunk (%d, %d): %v", e.X, e.Z, e.Err)
	}

	return fmt.Sprintf("%s: chunk (%d, %d): %v", e.Path, e.X, e.Z, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// Open opens a region file and reads its header.
//
// When the base name follows the r.<x>.<z>.mca pattern, external chunks stored next to
// the file are resolved automatically.
//
// Parameters:
//   - path: Region file path
//   - opts: Reader options
//
// Returns:
//   - *Reader: Reader that owns the file; call Close when done
//   - error: File system error or errs.ErrInvalidHeaderSize
func Open(path string, opts ...Option) (*Reader, error) {
	if rx, rz, err := ParseFileName(filepath.Base(path)); err == nil {
		opts = append([]Option{WithExternalChunks(filepath.Dir(path), rx, rz)}, opts...)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := NewReader(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r.closer = f
	r.path = path

	return r, nil
}

// NewReader reads the region header from src.
//
// Returns:
//   - *Reader: Reader over src; Close is a no-op
//   - error: errs.ErrInvalidHeaderSize if src holds fewer than 8192 bytes
func NewReader(src io.ReaderAt, opts ...Option) (*Reader, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, section.HeaderSize)
	n, err := src.ReadAt(buf, 0)
	if n < section.HeaderSize {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: got %d bytes, need %d", errs.ErrInvalidHeaderSize, n, section.HeaderSize)
		}

		return nil, err
	}

	header, err := section.ParseHeader(buf)
	if err != nil {
		return nil, err
	}

	return &Reader{src: src, header: header, cfg: cfg}, nil
}

// Close releases the underlying file when the reader was created by Open.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil

	return err
}

// Path returns the file path given to Open, or "" for readers created by NewReader.
func (r *Reader) Path() string {
	return r.path
}

// Header returns the parsed region header.
func (r *Reader) Header() *section.Header {
	return r.header
}

// Locate returns the location entry of the chunk at (x, z).
//
// Returns:
//   - section.Location: Decoded entry
//   - bool: false if the chunk is absent
//   - error: errs.ErrInvalidCoordinate if x or z is outside 0..31
func (r *Reader) Locate(x, z int) (section.Location, bool, error) {
	loc, err := r.header.Location(x, z)
	if err != nil {
		return section.Location{}, false, err
	}

	return loc, loc.IsPresent(), nil
}

// Timestamp returns the last modification time recorded for the chunk at (x, z).
func (r *Reader) Timestamp(x, z int) (time.Time, error) {
	ts, err := r.header.Timestamp(x, z)
	if err != nil {
		return time.Time{}, err
	}

	return time.Unix(int64(ts), 0), nil
}

// ReadChunkData returns the decompressed tag stream of the chunk at (x, z).
//
// Returns:
//   - []byte: Tag stream owned by the caller
//   - format.CompressionType: Scheme byte as stored, including the external flag
//   - bool: false if the chunk is absent
//   - error: errs.ErrInvalidCoordinate, or a *ChunkError wrapping
//     errs.ErrUnsupportedCompression, errs.ErrMalformedStream for truncated or corrupt
//     payloads, errs.ErrExternalChunk, or an I/O error
func (r *Reader) ReadChunkData(x, z int) ([]byte, format.CompressionType, bool, error) {
	loc, ok, err := r.Locate(x, z)
	if err != nil || !ok {
		return nil, 0, false, err
	}

	raw := &pool.ByteBuffer{}
	stream, scheme, err := r.readStream(x, z, loc, raw)
	if err != nil {
		return nil, scheme, true, r.chunkError(x, z, err)
	}

	return stream, scheme, true, nil
}

// ReadChunk reads and decodes the chunk at (x, z).
//
// Returns:
//   - nbt.Tag: Root tag of the chunk, normally an unnamed compound
//   - bool: false if the chunk is absent, in which case no payload is read
//   - error: Any error of ReadChunkData; tag stream decoding errors are wrapped in a
//     *ChunkError as well
func (r *Reader) ReadChunk(x, z int) (nbt.Tag, bool, error) {
	loc, ok, err := r.Locate(x, z)
	if err != nil || !ok {
		return nbt.Tag{}, false, err
	}

	root, err := r.readChunk(x, z, loc)
	if err != nil {
		return nbt.Tag{}, true, r.chunkError(x, z, err)
	}

	return root, true, nil
}

// Chunks returns an iterator over all present chunks in table order: x varies
// fastest, then z.
//
// A chunk that fails to read yields a nil *Chunk and a *ChunkError; iteration continues
// with the next chunk unless the loop breaks.
//
//	for chunk, err := range reader.Chunks() {
//	    if err != nil {
//	        log.Println(err)
//	        continue
//	    }
//	    use(chunk.Root)
//	}
func (r *Reader) Chunks() iter.Seq2[*Chunk, error] {
	return func(yield func(*Chunk, error) bool) {
		for idx, loc := range r.header.Locations {
			if !loc.IsPresent() {
				continue
			}

			x, z := section.Coordinates(idx)
			root, err := r.readChunk(x, z, loc)
			if err != nil {
				if !yield(nil, r.chunkError(x, z, err)) {
					return
				}

				continue
			}

			chunk := &Chunk{
				X:         x,
				Z:         z,
				Location:  loc,
				Timestamp: time.Unix(int64(r.header.Timestamps[idx]), 0),
				Root:      root,
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}
}

// AbsoluteChunk converts local chunk coordinates into world chunk coordinates.
// It reports false when the region coordinates are unknown.
func (r *Reader) AbsoluteChunk(x, z int) (chunkX, chunkZ int, ok bool) {
	if !r.cfg.external {
		return x, z, false
	}

	return r.cfg.regionX*section.RegionWidth + x, r.cfg.regionZ*section.RegionWidth + z, true
}

func (r *Reader) chunkError(x, z int, err error) *ChunkError {
	return &ChunkError{Path: r.path, X: x, Z: z, Err: err}
}

func (r *Reader) readChunk(x, z int, loc section.Location) (nbt.Tag, error) {
	raw := pool.GetRegionBuffer()
	defer pool.PutRegionBuffer(raw)

	stream, _, err := r.readStream(x, z, loc, raw)
	if err != nil {
		return nbt.Tag{}, err
	}

	// the decoder copies what it keeps, so the pooled buffer can be recycled
	return nbt.Decode(stream, r.cfg.tagOpts...)
}

// readStream reads the payload of a present chunk into raw and decompresses it.
// The returned stream may alias raw when the chunk is stored uncompressed.
func (r *Reader) readStream(x, z int, loc section.Location, raw *pool.ByteBuffer) ([]byte, format.CompressionType, error) {
	if loc.SectorOffset < section.HeaderSectors {
		return nil, 0, fmt.Errorf("%w: location points into the header at sector %d",
			errs.ErrMalformedStream, loc.SectorOffset)
	}

	var prefix [section.PayloadHeaderSize]byte
	if err := r.readFull(prefix[:], loc.ByteOffset()); err != nil {
		return nil, 0, fmt.Errorf("payload header: %w", err)
	}

	length := int64(binary.BigEndian.Uint32(prefix[:section.PayloadLengthSize]))
	scheme := format.CompressionType(prefix[section.PayloadLengthSize])
	if length < section.SchemeSize {
		return nil, scheme, fmt.Errorf("%w: payload length %d", errs.ErrMalformedStream, length)
	}
	if limit := int64(loc.ByteLength() - section.PayloadLengthSize); length > limit {
		return nil, scheme, fmt.Errorf("%w: payload length %d exceeds %d allocated sectors",
			errs.ErrMalformedStream, length, loc.SectorCount)
	}

	dataLen := int(length) - section.SchemeSize
	raw.Reset()
	raw.Grow(dataLen)
	raw.B = raw.B[:dataLen]
	if err := r.readFull(raw.B, loc.ByteOffset()+section.PayloadHeaderSize); err != nil {
		return nil, scheme, fmt.Errorf("payload: %w", err)
	}

	codec, data, err := r.resolveCodec(scheme, raw.B)
	if err != nil {
		return nil, scheme, err
	}

	if scheme.IsExternal() {
		data, err = r.readExternal(x, z)
		if err != nil {
			return nil, scheme, err
		}
	}

	stream, err := codec.Decompress(data)
	if err != nil {
		if errors.Is(err, errs.ErrDecompressedTooLarge) {
			return nil, scheme, err
		}

		return nil, scheme, fmt.Errorf("%w: %s data: %w", errs.ErrMalformedStream, scheme.Scheme(), err)
	}

	return stream, scheme, nil
}

// resolveCodec picks the codec for scheme. For the custom scheme the algorithm name
// prefixes the data and is stripped from the returned slice.
func (r *Reader) resolveCodec(scheme format.CompressionType, data []byte) (compress.Codec, []byte, error) {
	if scheme.Scheme() != format.CompressionCustom {
		codec, err := compress.GetCodec(scheme)
		return codec, data, err
	}

	if len(data) < 2 {
		return nil, nil, fmt.Errorf("%w: custom compression name truncated", errs.ErrMalformedStream)
	}
	n := int(binary.BigEndian.Uint16(data))
	if len(data) < 2+n {
		return nil, nil, fmt.Errorf("%w: custom compression name truncated", errs.ErrMalformedStream)
	}

	codec, err := compress.GetCustomCodec(string(data[2 : 2+n]))
	if err != nil {
		return nil, nil, err
	}

	return codec, data[2+n:], nil
}

func (r *Reader) readExternal(x, z int) ([]byte, error) {
	if !r.cfg.external {
		return nil, fmt.Errorf("%w: chunk is stored externally and region coordinates are unknown",
			errs.ErrExternalChunk)
	}

	cx, cz, _ := r.AbsoluteChunk(x, z)
	path := filepath.Join(r.cfg.externalDir, ExternalFileName(cx, cz))

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrExternalChunk, err)
	}
	if info.Size() > compress.MaxDecompressedSize {
		return nil, fmt.Errorf("%w: %s is %d bytes", errs.ErrDecompressedTooLarge, path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrExternalChunk, err)
	}

	return data, nil
}

// readFull reads len(buf) bytes at off; a short read means the file is truncated.
func (r *Reader) readFull(buf []byte, off int64) error {
	n, err := r.src.ReadAt(buf, off)
	if n == len(buf) {
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: truncated at offset %d, read %d of %d bytes", errs.ErrMalformedStream, off, n, len(buf))
	}

	return err
}
