//go:build !cgo || !gozstd

package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/arloliu/anvil/errs"
	"github.com/klauspost/compress/zstd"
)

// Encoders and decoders are expensive to build and allocation-free once warm, so both
// are pooled. Decoders are single-threaded: chunks are small and scans parallelize
// across chunks instead.
var (
	zstdDecoderPool = sync.Pool{
		New: func() any {
			d, err := zstd.NewReader(nil,
				zstd.WithDecoderConcurrency(1),
				zstd.WithDecoderMaxMemory(MaxDecompressedSize),
			)
			if err != nil {
				panic(fmt.Sprintf("zstd: building pooled decoder: %v", err))
			}

			return d
		},
	}

	zstdEncoderPool = sync.Pool{
		New: func() any {
			e, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(zstd.SpeedDefault),
				zstd.WithEncoderConcurrency(1),
			)
			if err != nil {
				panic(fmt.Sprintf("zstd: building pooled encoder: %v", err))
			}

			return e
		},
	}
)

// Compress encodes data as a single zstd frame.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	e, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(e)

	return e.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decompress decodes one or more zstd frames.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	d, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(d)

	out, err := d.DecodeAll(data, nil)
	switch {
	case errors.Is(err, zstd.ErrDecoderSizeExceeded), errors.Is(err, zstd.ErrWindowSizeExceeded):
		return nil, errs.ErrDecompressedTooLarge
	case err != nil:
		return nil, fmt.Errorf("zstd: %w", err)
	}

	return out, nil
}
