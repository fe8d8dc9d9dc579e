package compress

import (
	"github.com/arloliu/anvil/errs"
	"github.com/klauspost/compress/s2"
)

// S2Compressor is registered as the "s2" custom compression algorithm.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data using S2 compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

// Decompress decompresses S2 data, refusing outputs larger than MaxDecompressedSize.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}
	if n > MaxDecompressedSize {
		return nil, errs.ErrDecompressedTooLarge
	}

	return s2.Decode(nil, data)
}
