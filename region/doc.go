// Package region reads and writes region (.mca) files.
//
// A region file holds up to 32x32 chunks. Each chunk is a compressed tag stream stored
// in whole 4096-byte sectors and located through the header described in package section.
//
// Reading:
//
//	r, err := region.Open("world/region/r.0.0.mca")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	root, ok, err := r.ReadChunk(3, 5)
//	switch {
//	case err != nil:
//	    return err
//	case !ok:
//	    // chunk never generated
//	}
//
// Supported compression schemes are gzip (1), zlib (2), none (3), LZ4 block streams (4)
// and named custom codecs (127). Chunks too large for the region file are stored in
// c.<x>.<z>.mcc files next to it; they are resolved when the reader knows the region
// coordinates, either from the file name given to Open or from WithExternalChunks.
//
// Writing:
//
//	w, err := region.NewWriter(region.WithCompression(format.CompressionZlib))
//	if err != nil {
//	    return err
//	}
//	if err := w.SetChunk(3, 5, root, time.Now()); err != nil {
//	    return err
//	}
//	_, err = w.WriteTo(file)
package region
