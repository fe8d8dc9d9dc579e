//go:build cgo && gozstd

package compress

import (
	"fmt"

	"github.com/arloliu/anvil/errs"
	"github.com/valyala/gozstd"
)

const gozstdLevel = 3

// Compress encodes data with libzstd.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, gozstdLevel), nil
}

// Decompress decodes zstd data with libzstd.
//
// gozstd has no output limit, so the size check happens after decoding.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if len(out) > MaxDecompressedSize {
		return nil, errs.ErrDecompressedTooLarge
	}

	return out, nil
}
