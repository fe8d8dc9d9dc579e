package section

// Region file geometry.
const (
	SectorSize      = 4096 // allocation unit of a region file in bytes
	RegionWidth     = 32   // chunk columns (and rows) per region
	ChunksPerRegion = RegionWidth * RegionWidth

	LocationEntrySize  = 4                                    // packed big-endian u32 per chunk
	LocationTableSize  = ChunksPerRegion * LocationEntrySize  // byte size of the location table
	TimestampEntrySize = 4                                    // big-endian u32 seconds per chunk
	TimestampTableSize = ChunksPerRegion * TimestampEntrySize // byte size of the timestamp table
	HeaderSize         = LocationTableSize + TimestampTableSize
	HeaderSectors      = HeaderSize / SectorSize // sectors reserved for the header

	MaxSectorCount  = 0xFF     // sector count is stored in one byte
	MaxSectorOffset = 0xFFFFFF // sector offset is stored in three bytes
)

// Chunk payload framing inside the sectors.
const (
	PayloadLengthSize = 4 // big-endian u32 length of scheme byte plus data
	SchemeSize        = 1
	PayloadHeaderSize = PayloadLengthSize + SchemeSize
)
