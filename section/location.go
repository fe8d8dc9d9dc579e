package section

// Location is one decoded entry of the location table.
//
// On disk it is a big-endian u32 whose upper 24 bits hold the sector offset and whose
// low 8 bits hold the number of sectors the chunk occupies.
type Location struct {
	SectorOffset uint32
	SectorCount  uint8
}

// ParseLocation decodes a packed location table entry.
func ParseLocation(packed uint32) Location {
	return Location{
		SectorOffset: packed >> 8,
		SectorCount:  uint8(packed & 0xFF), //nolint: gosec
	}
}

// Pack encodes the location into its packed table form.
func (l Location) Pack() uint32 {
	return (l.SectorOffset&MaxSectorOffset)<<8 | uint32(l.SectorCount)
}

// IsPresent reports whether the entry points at chunk data.
// An all-zero entry marks a chunk that was never generated.
func (l Location) IsPresent() bool {
	return l.SectorOffset != 0 || l.SectorCount != 0
}

// ByteOffset returns the absolute file offset of the chunk payload.
func (l Location) ByteOffset() int64 {
	return int64(l.SectorOffset) * SectorSize
}

// ByteLength returns the number of bytes reserved for the chunk payload.
func (l Location) ByteLength() int {
	return int(l.SectorCount) * SectorSize
}
