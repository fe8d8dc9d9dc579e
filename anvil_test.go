package anvil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arloliu/anvil/errs"
	"github.com/arloliu/anvil/format"
	"github.com/arloliu/anvil/nbt"
	"github.com/arloliu/anvil/region"
	"github.com/stretchr/testify/require"
)

func writeTestRegion(t *testing.T, path string) nbt.Tag {
	t.Helper()

	root := nbt.Tag{Value: nbt.NewCompound(
		nbt.Tag{Name: "Level", Value: nbt.NewCompound(
			nbt.Tag{Name: "xPos", Value: nbt.Int(3)},
			nbt.Tag{Name: "zPos", Value: nbt.Int(5)},
		)},
	)}

	w, err := NewRegionWriter(region.WithCompression(format.CompressionGzip))
	require.NoError(t, err)
	require.NoError(t, w.SetChunk(3, 5, root, time.Unix(1234, 0)))

	f, err := os.Create(path)
	require.NoError(t, err)
	_, err = w.WriteTo(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	return root
}

func TestReadChunk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.0.0.mca")
	expected := writeTestRegion(t, path)

	root, ok, err := ReadChunk(path, 3, 5)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, expected, root)

	xPos, err := root.Compound().Path("Level", "xPos")
	require.NoError(t, err)
	require.Equal(t, nbt.Int(3), xPos)

	_, ok, err = ReadChunk(path, 5, 3)
	require.NoError(t, err)
	require.False(t, ok)

	_, _, err = ReadChunk(path, 32, 0)
	require.ErrorIs(t, err, errs.ErrInvalidCoordinate)
}

func TestOpenRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "r.-1.2.mca")
	writeTestRegion(t, path)

	r, err := OpenRegion(path)
	require.NoError(t, err)
	defer r.Close()

	n := 0
	for chunk, err := range r.Chunks() {
		require.NoError(t, err)
		require.Equal(t, 3, chunk.X)
		require.Equal(t, 5, chunk.Z)
		require.Equal(t, time.Unix(1234, 0), chunk.Timestamp)

		cx, cz, ok := r.AbsoluteChunk(chunk.X, chunk.Z)
		require.True(t, ok)
		require.Equal(t, -29, cx)
		require.Equal(t, 69, cz)
		n++
	}
	require.Equal(t, 1, n)
}

func TestNBTWrappers(t *testing.T) {
	tag := nbt.Tag{Name: "hello world", Value: nbt.NewCompound(nbt.Tag{Name: "name", Value: nbt.String("Bananrama")})}

	data, err := EncodeNBT(tag)
	require.NoError(t, err)

	decoded, err := DecodeNBT(data)
	require.NoError(t, err)
	require.Equal(t, tag, decoded)

	le, err := EncodeNBT(tag, nbt.WithLittleEndian())
	require.NoError(t, err)
	require.NotEqual(t, data, le)

	decoded, err = DecodeNBT(le, nbt.WithLittleEndian())
	require.NoError(t, err)
	require.Equal(t, tag, decoded)
}
