package compress

// ZstdCompressor is registered as the "zstd" custom compression algorithm.
//
// The pure Go implementation from klauspost/compress is used by default; building
// with the gozstd tag (and cgo enabled) switches to the libzstd binding.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
