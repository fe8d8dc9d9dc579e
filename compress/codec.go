package compress

import (
	"fmt"
	"io"
	"sync"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
)

// MaxDecompressedSize bounds the output of every decompressor in this package.
//
// A single chunk occupies at most 255 sectors (about 1MiB) on disk; a 128MiB limit leaves
// room for extreme compression ratios while refusing decompression bombs.
const MaxDecompressedSize = 128 * 1024 * 1024

// Compressor compresses a chunk tag stream for storage in a region file.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The returned slice is newly allocated and owned by the caller, unless the
	// implementation documents otherwise (see NoOpCompressor).
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a chunk tag stream read from a region file.
//
// Example:
//
//	codec, err := compress.GetCodec(format.CompressionZlib)
//	if err != nil {
//	    return err
//	}
//	stream, err := codec.Decompress(payload)
//
// Thread Safety: all decompressors in this package are safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns error if input data is corrupted or uses an incompatible format
	//   - Returns errs.ErrDecompressedTooLarge if the output exceeds MaxDecompressedSize
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionGzip: NewGzipCompressor(),
	format.CompressionZlib: NewZlibCompressor(),
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for a chunk compression scheme.
//
// The external flag bit is ignored. format.CompressionCustom has no fixed codec;
// resolve it by name with GetCustomCodec.
//
// Returns:
//   - Codec: Codec for the scheme
//   - error: errs.ErrUnsupportedCompression for unknown schemes
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType.Scheme()]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedCompression, uint8(compressionType))
}

var (
	customMu     sync.RWMutex
	customCodecs = map[string]Codec{
		"zstd": NewZstdCompressor(),
		"s2":   NewS2Compressor(),
	}
)

// RegisterCustom registers a codec for the custom compression scheme under name.
//
// Chunks stored with format.CompressionCustom carry the algorithm name after the
// scheme byte; the region reader resolves it through this registry. Registering an
// existing name replaces the previous codec.
func RegisterCustom(name string, codec Codec) {
	customMu.Lock()
	defer customMu.Unlock()

	customCodecs[name] = codec
}

// GetCustomCodec retrieves the codec registered for a custom compression name.
func GetCustomCodec(name string) (Codec, error) {
	customMu.RLock()
	defer customMu.RUnlock()

	if codec, ok := customCodecs[name]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: custom algorithm %q", errs.ErrUnsupportedCompression, name)
}

// readAllLimited drains r, failing once more than MaxDecompressedSize bytes are produced.
func readAllLimited(r io.Reader, sizeHint int) ([]byte, error) {
	buf := make([]byte, 0, min(sizeHint, MaxDecompressedSize))
	for {
		if len(buf) == cap(buf) {
			buf = append(buf, 0)[:len(buf)]
		}
		n, err := r.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]
		if len(buf) > MaxDecompressedSize {
			return nil, errs.ErrDecompressedTooLarge
		}
		if err == io.EOF {
			return buf, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
