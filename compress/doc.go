// Package compress provides the chunk payload codecs used by region files.
//
// Every chunk in a region file is stored as a 4-byte length, a 1-byte compression
// scheme tag and the (possibly compressed) tag stream. This package maps the scheme
// tag to a codec:
//
//   - format.CompressionGzip (1): gzip, rarely written by the game but always readable
//   - format.CompressionZlib (2): zlib, the default scheme for Java edition worlds
//   - format.CompressionNone (3): stored uncompressed
//   - format.CompressionLZ4 (4): LZ4 blocks in the lz4-java "LZ4Block" stream framing
//   - format.CompressionCustom (127): a named algorithm resolved with GetCustomCodec
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Built-in codecs are obtained with GetCodec:
//
//	codec, err := compress.GetCodec(format.CompressionZlib)
//	if err != nil {
//	    return err // errs.ErrUnsupportedCompression
//	}
//	stream, err := codec.Decompress(payload)
//
// # Custom Algorithms
//
// Chunks written with the custom scheme name their algorithm after the scheme byte.
// "zstd" (klauspost/compress/zstd, or valyala/gozstd with the gozstd build tag) and
// "s2" are registered by default; others can be added:
//
//	compress.RegisterCustom("mymod:brotli", myCodec)
//
// # Safety
//
// Region files are untrusted input. Every decompressor refuses to produce more than
// MaxDecompressedSize bytes and returns errs.ErrDecompressedTooLarge instead.
//
// # Thread Safety
//
// All codecs are stateless values; pooled encoder and decoder state is managed with
// sync.Pool, so they are safe for concurrent use.
package compress
