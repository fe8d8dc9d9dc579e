package region

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/arloliu/anvil/compress"
	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/internal/pool"
	"github.com/arloliu/anvil/nbt"
	"github.com/arloliu/anvil/section"
)

// Writer assembles a region file in memory.
//
// Chunks are encoded and compressed when set. WriteTo lays them out in table order
// starting at sector 2, each padded to a whole number of sectors.
//
// Note: The Writer is NOT thread-safe.
type Writer struct {
	cfg        *Config
	codec      compress.Codec
	payloads   [section.ChunksPerRegion][]byte // scheme byte + optional name + compressed data
	timestamps [section.ChunksPerRegion]uint32
}

// NewWriter creates an empty region writer.
//
// Parameters:
//   - opts: WithCompression or WithCustomCompression (zlib by default), WithTagOptions
//
// Returns:
//   - *Writer: Writer with no chunks
//   - error: Invalid option error
func NewWriter(opts ...Option) (*Writer, error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}

	var codec compress.Codec
	if cfg.compression == format.CompressionCustom {
		codec, err = compress.GetCustomCodec(cfg.customName)
	} else {
		codec, err = compress.GetCodec(cfg.compression)
	}
	if err != nil {
		return nil, err
	}

	return &Writer{cfg: cfg, codec: codec}, nil
}

// SetChunk encodes root and stores it at (x, z), replacing any previous chunk.
//
// Parameters:
//   - x, z: Local chunk coordinates, 0..31
//   - root: Root tag of the chunk
//   - modified: Modification time for the timestamp table; the zero time stores 0
//
// Returns:
//   - error: errs.ErrInvalidCoordinate, a tag encoding error, or errs.ErrChunkTooLarge if
//     the compressed chunk needs more than 255 sectors
func (w *Writer) SetChunk(x, z int, root nbt.Tag, modified time.Time) error {
	idx, err := section.Index(x, z)
	if err != nil {
		return err
	}

	stream, err := nbt.Encode(root, w.cfg.tagOpts...)
	if err != nil {
		return fmt.Errorf("chunk (%d, %d): %w", x, z, err)
	}

	compressed, err := w.codec.Compress(stream)
	if err != nil {
		return fmt.Errorf("chunk (%d, %d): %w", x, z, err)
	}

	payload := make([]byte, 0, section.SchemeSize+2+len(w.cfg.customName)+len(compressed))
	payload = append(payload, byte(w.cfg.compression))
	if w.cfg.compression == format.CompressionCustom {
		payload = binary.BigEndian.AppendUint16(payload, uint16(len(w.cfg.customName))) //nolint: gosec
		payload = append(payload, w.cfg.customName...)
	}
	payload = append(payload, compressed...)

	if sectors := sectorsFor(len(payload)); sectors > section.MaxSectorCount {
		return fmt.Errorf("%w: chunk (%d, %d) needs %d sectors", errs.ErrChunkTooLarge, x, z, sectors)
	}

	w.payloads[idx] = payload
	w.timestamps[idx] = unixSeconds(modified)

	return nil
}

// RemoveChunk removes the chunk at (x, z).
func (w *Writer) RemoveChunk(x, z int) error {
	idx, err := section.Index(x, z)
	if err != nil {
		return err
	}
	w.payloads[idx] = nil
	w.timestamps[idx] = 0

	return nil
}

// Len returns the number of chunks set.
func (w *Writer) Len() int {
	n := 0
	for _, p := range w.payloads {
		if p != nil {
			n++
		}
	}

	return n
}

// WriteTo writes the complete region file to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	buf := pool.GetRegionBuffer()
	defer pool.PutRegionBuffer(buf)

	header := &section.Header{Timestamps: w.timestamps}
	sector := uint32(section.HeaderSectors)
	for idx, payload := range w.payloads {
		if payload == nil {
			continue
		}
		count := sectorsFor(len(payload))
		header.Locations[idx] = section.Location{SectorOffset: sector, SectorCount: uint8(count)} //nolint: gosec
		sector += uint32(count)                                                                 //nolint: gosec
	}
	if sector > section.MaxSectorOffset {
		return 0, fmt.Errorf("%w: region needs %d sectors", errs.ErrChunkTooLarge, sector)
	}

	buf.Grow(int(sector) * section.SectorSize)
	buf.B = header.AppendTo(buf.B)
	for _, payload := range w.payloads {
		if payload == nil {
			continue
		}
		buf.B = binary.BigEndian.AppendUint32(buf.B, uint32(len(payload))) //nolint: gosec
		buf.B = append(buf.B, payload...)
		if rem := buf.Len() % section.SectorSize; rem != 0 {
			buf.Zero(section.SectorSize - rem)
		}
	}

	return buf.WriteTo(dst)
}

func sectorsFor(payloadLen int) int {
	return (section.PayloadLengthSize + payloadLen + section.SectorSize - 1) / section.SectorSize
}

func unixSeconds(t time.Time) uint32 {
	if t.IsZero() || t.Unix() < 0 {
		return 0
	}

	return uint32(t.Unix()) //nolint: gosec
}
