package region

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/section"
)

// ParseFileName extracts the region coordinates from a base name of the form r.<x>.<z>.mca.
func ParseFileName(name string) (regionX, regionZ int, err error) {
	parts := strings.Split(name, ".")
	if len(parts) != 4 || parts[0] != "r" || parts[3] != "mca" {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrInvalidRegionName, name)
	}

	regionX, errX := strconv.Atoi(parts[1])
	regionZ, errZ := strconv.Atoi(parts[2])
	if errX != nil || errZ != nil {
		return 0, 0, fmt.Errorf("%w: %q", errs.ErrInvalidRegionName, name)
	}

	return regionX, regionZ, nil
}

// FileName returns the region file name for region coordinates.
func FileName(regionX, regionZ int) string {
	return fmt.Sprintf("r.%d.%d.mca", regionX, regionZ)
}

// ExternalFileName returns the name of the file holding an oversized chunk, given its
// absolute chunk coordinates.
func ExternalFileName(chunkX, chunkZ int) string {
	return fmt.Sprintf("c.%d.%d.mcc", chunkX, chunkZ)
}

// ChunkRegion returns the region containing the absolute chunk (chunkX, chunkZ) and the
// chunk's local coordinates within it.
func ChunkRegion(chunkX, chunkZ int) (regionX, regionZ, localX, localZ int) {
	regionX, localX = floorDiv(chunkX, section.RegionWidth)
	regionZ, localZ = floorDiv(chunkZ, section.RegionWidth)

	return regionX, regionZ, localX, localZ
}

func floorDiv(a, b int) (q, r int) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}

	return q, r
}
