package processor

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()
	c, err := OpenDiskCache(fsys, "/c")
	require.NoError(t, err)

	key := cacheKeyFor("a.js", []byte("var a;"), []string{"--language_out", "ECMASCRIPT5"})
	var got DiskPayload
	ok, err := c.Get(key, &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(key, &DiskPayload{Processor: "jsfront", Output: []byte("var a;"), Warnings: 2, Features: []string{"classes"}}))
	ok, err = c.Get(key, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "jsfront", got.Processor)
	assert.Equal(t, []byte("var a;"), got.Output)
	assert.Equal(t, 2, got.Warnings)
	assert.Equal(t, []string{"classes"}, got.Features)

	// no temp files left next to the entry
	entries, err := afero.ReadDir(fsys, "/c/out")
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, c.DropAll())
	ok, err = c.Get(key, &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDiskCacheKeyDependsOnFlags(t *testing.T) {
	t.Parallel()
	a := cacheKeyFor("a.js", []byte("x"), []string{"--language_out", "ECMASCRIPT5"})
	b := cacheKeyFor("a.js", []byte("x"), []string{"--language_out", "ECMASCRIPT_2015"})
	c := cacheKeyFor("b.js", []byte("x"), []string{"--language_out", "ECMASCRIPT5"})
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestDiskCacheIgnoresOtherSchema(t *testing.T) {
	t.Parallel()
	fsys := afero.NewMemMapFs()
	c, err := OpenDiskCache(fsys, "/c")
	require.NoError(t, err)

	key := cacheKeyFor("a.js", nil, nil)
	data, err := msgpack.Marshal(&DiskPayload{Schema: diskCacheSchemaVersion + 1, Output: []byte("old")})
	require.NoError(t, err)
	p := c.pathFor(key)
	require.NoError(t, fsys.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, afero.WriteFile(fsys, p, data, 0o644))

	var got DiskPayload
	ok, err := c.Get(key, &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNilDiskCache(t *testing.T) {
	t.Parallel()
	var c *DiskCache
	require.NoError(t, c.Put(CacheKey{}, &DiskPayload{}))
	ok, err := c.Get(CacheKey{}, &DiskPayload{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.DropAll())
}
