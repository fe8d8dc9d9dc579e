// Package section defines the fixed binary structures of a region file.
//
// # Region Layout
//
// A region file stores up to 32x32 chunks in 4096-byte sectors:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Location table (4096 bytes, sector 0)                   │
//	│  - 1024 x u32 big-endian: offset<<8 | sector count      │
//	├─────────────────────────────────────────────────────────┤
//	│ Timestamp table (4096 bytes, sector 1)                  │
//	│  - 1024 x u32 big-endian: last modification, seconds    │
//	├─────────────────────────────────────────────────────────┤
//	│ Chunk payloads (sector 2 onwards)                       │
//	│  - u32 big-endian length (scheme byte + data)           │
//	│  - u8 compression scheme                                │
//	│  - compressed tag stream                                │
//	└─────────────────────────────────────────────────────────┘
//
// The chunk at local column x and row z uses table slot x + z*32. A location entry of
// zero means the chunk is absent.
package section
