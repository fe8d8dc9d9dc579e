// Package hash provides the hashes used for waypoint ids and LZ4Block checksums.
package hash

import "github.com/cespare/xxhash/v2"

// ID returns the 64-bit key under which a waypoint id is tracked for deduplication.
//
// Distinct ids may share a key; collision.Tracker keeps the full strings to tell them apart.
func ID(id string) uint64 {
	return xxhash.Sum64String(id)
}
