package dataset

import (
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
)

func openTestStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	stores := map[string]Store{}
	for kind, path := range map[string]string{
		"bolt":   filepath.Join(dir, "datasets.db"),
		"badger": filepath.Join(dir, "badger"),
		"pebble": filepath.Join(dir, "pebble"),
	} {
		s, err := OpenStore(kind, path)
		require.NoError(t, err, kind)
		t.Cleanup(func() { require.NoError(t, s.Close()) })
		stores[kind] = s
	}
	return stores
}

func TestStoreRoundTrip(t *testing.T) {
	big, _ := Generate(3*chunkElems+17, 0, 1)
	small := []int32{-5, 0, 7, -2147483648, 2147483647}

	for kind, s := range openTestStores(t) {
		t.Run(kind, func(t *testing.T) {
			require.NoError(t, s.Save("big", big))
			require.NoError(t, s.Save("small", small))
			require.NoError(t, s.Save("empty", nil))

			got, err := s.Load("big")
			require.NoError(t, err)
			require.Equal(t, big, got)

			got, err = s.Load("small")
			require.NoError(t, err)
			require.Equal(t, small, got)

			got, err = s.Load("empty")
			require.NoError(t, err)
			require.Empty(t, got)

			names, err := s.List()
			require.NoError(t, err)
			require.Equal(t, []string{"big", "empty", "small"}, names)
		})
	}
}

func TestStoreOverwriteShrinks(t *testing.T) {
	big, _ := Generate(2*chunkElems+1, 0, 2)
	for kind, s := range openTestStores(t) {
		t.Run(kind, func(t *testing.T) {
			require.NoError(t, s.Save("d", big))
			require.NoError(t, s.Save("d", []int32{3, 2, 1}))
			got, err := s.Load("d")
			require.NoError(t, err)
			require.Equal(t, []int32{3, 2, 1}, got)
		})
	}
}

func TestStoreDeleteAndErrors(t *testing.T) {
	for kind, s := range openTestStores(t) {
		t.Run(kind, func(t *testing.T) {
			_, err := s.Load("missing")
			require.True(t, errors.Is(err, ErrNotFound))

			require.True(t, errors.Is(s.Save("a/b", nil), ErrInvalidName))
			require.True(t, errors.Is(s.Save("", nil), ErrInvalidName))

			require.NoError(t, s.Save("gone", []int32{1}))
			require.NoError(t, s.Delete("gone"))
			_, err = s.Load("gone")
			require.True(t, errors.Is(err, ErrNotFound))
			require.True(t, errors.Is(s.Delete("gone"), ErrNotFound))

			names, err := s.List()
			require.NoError(t, err)
			require.Empty(t, names)
		})
	}
}

func TestOpenStoreUnknown(t *testing.T) {
	_, err := OpenStore("leveldb", t.TempDir())
	require.Error(t, err)
}

func TestPrefixEnd(t *testing.T) {
	require.Equal(t, []byte("m0"), prefixEnd([]byte("m/")))
	require.Equal(t, []byte{0x02}, prefixEnd([]byte{0x01, 0xff}))
	require.Nil(t, prefixEnd([]byte{0xff, 0xff}))
}
