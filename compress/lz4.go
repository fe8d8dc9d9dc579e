package compress

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/internal/hash"
	"github.com/pierrec/lz4/v4"
)

// LZ4Block stream framing, as written by the lz4-java LZ4BlockOutputStream.
//
// Each block:
//
//	[magic "LZ4Block": 8] [token: 1] [compressed len: 4 LE] [original len: 4 LE] [checksum: 4 LE] [data]
//
// The token's high nibble is the method (0x10 raw, 0x20 lz4) and the low nibble is
// log2(block size) - 10. A block with both lengths zero ends the stream.
const (
	lz4BlockHeaderSize = 21
	lz4MethodRaw       = 0x10
	lz4MethodLZ4       = 0x20
	lz4BlockSize       = 1 << 16
	lz4BlockLevel      = 6 // log2(lz4BlockSize) - 10
	lz4ChecksumSeed    = 0x9747b28c
	lz4ChecksumMask    = 0x0FFFFFFF
)

var lz4Magic = []byte("LZ4Block")

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains internal state that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor handles format.CompressionLZ4 chunks.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress splits data into 64KiB blocks, compresses each with the LZ4 block
// format and appends the terminating empty block.
//
// Blocks that do not shrink are stored raw.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	var out bytes.Buffer
	out.Grow(len(data) + lz4BlockHeaderSize*(len(data)/lz4BlockSize+2))
	dst := make([]byte, lz4.CompressBlockBound(lz4BlockSize))

	for start := 0; start < len(data); start += lz4BlockSize {
		block := data[start:min(start+lz4BlockSize, len(data))]

		n, err := lc.CompressBlock(block, dst)
		if err != nil {
			return nil, fmt.Errorf("lz4 compression failed: %w", err)
		}

		checksum := hash.Sum32(block, lz4ChecksumSeed) & lz4ChecksumMask
		if n == 0 || n >= len(block) {
			writeLZ4Header(&out, lz4MethodRaw, len(block), len(block), checksum)
			out.Write(block)
		} else {
			writeLZ4Header(&out, lz4MethodLZ4, n, len(block), checksum)
			out.Write(dst[:n])
		}
	}

	writeLZ4Header(&out, lz4MethodRaw, 0, 0, 0)

	return out.Bytes(), nil
}

// Decompress decodes an LZ4Block stream, verifying each block's checksum.
//
// Decoding stops at the terminating empty block or at the end of the input.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	out := make([]byte, 0, min(len(data)*4, MaxDecompressedSize))

	for pos := 0; pos < len(data); {
		if len(data)-pos < lz4BlockHeaderSize {
			return nil, fmt.Errorf("lz4 decompression failed: truncated block header at offset %d", pos)
		}
		header := data[pos : pos+lz4BlockHeaderSize]
		if !bytes.Equal(header[:8], lz4Magic) {
			return nil, fmt.Errorf("lz4 decompression failed: bad block magic at offset %d", pos)
		}

		token := header[8]
		method := token & 0xF0
		compressedLen := int(int32(binary.LittleEndian.Uint32(header[9:13])))
		originalLen := int(int32(binary.LittleEndian.Uint32(header[13:17])))
		checksum := binary.LittleEndian.Uint32(header[17:21])
		maxBlock := 1 << (10 + int(token&0x0F))
		pos += lz4BlockHeaderSize

		if originalLen == 0 && compressedLen == 0 {
			if checksum != 0 {
				return nil, fmt.Errorf("lz4 decompression failed: non-zero checksum on end block")
			}

			break
		}
		if compressedLen < 0 || originalLen < 0 || originalLen > maxBlock || compressedLen > len(data)-pos {
			return nil, fmt.Errorf("lz4 decompression failed: invalid block lengths %d/%d", compressedLen, originalLen)
		}
		if len(out)+originalLen > MaxDecompressedSize {
			return nil, errs.ErrDecompressedTooLarge
		}

		src := data[pos : pos+compressedLen]
		pos += compressedLen
		start := len(out)

		switch method {
		case lz4MethodRaw:
			if compressedLen != originalLen {
				return nil, fmt.Errorf("lz4 decompression failed: raw block length mismatch %d/%d", compressedLen, originalLen)
			}
			out = append(out, src...)
		case lz4MethodLZ4:
			out = append(out, make([]byte, originalLen)...)
			n, err := lz4.UncompressBlock(src, out[start:])
			if err != nil {
				return nil, fmt.Errorf("lz4 decompression failed: %w", err)
			}
			if n != originalLen {
				return nil, fmt.Errorf("lz4 decompression failed: block decoded to %d bytes, expected %d", n, originalLen)
			}
		default:
			return nil, fmt.Errorf("lz4 decompression failed: unknown block method 0x%02x", method)
		}

		if hash.Sum32(out[start:], lz4ChecksumSeed)&lz4ChecksumMask != checksum {
			return nil, fmt.Errorf("lz4 decompression failed: block checksum mismatch")
		}
	}

	return out, nil
}

func writeLZ4Header(buf *bytes.Buffer, method byte, compressedLen, originalLen int, checksum uint32) {
	var h [lz4BlockHeaderSize]byte
	copy(h[:8], lz4Magic)
	h[8] = method | lz4BlockLevel
	binary.LittleEndian.PutUint32(h[9:13], uint32(compressedLen)) //nolint: gosec
	binary.LittleEndian.PutUint32(h[13:17], uint32(originalLen))  //nolint: gosec
	binary.LittleEndian.PutUint32(h[17:21], checksum)
	buf.Write(h[:])
}
