package iocache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gngb/internal/iocache"
	"github.com/gnames/gngb/pkg/errcode"
	"github.com/gnames/gngb/pkg/translate"
	"github.com/gnames/gnuuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "translations")
	c, err := iocache.New(cacheDir)
	require.NoError(t, err)
	assert.Equal(t, cacheDir, c.Dir())

	info, err := os.Stat(cacheDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenClose(t *testing.T) {
	c, err := iocache.New(filepath.Join(t.TempDir(), "translations"))
	require.NoError(t, err)

	require.NoError(t, c.Open())
	// second open is a no-op
	require.NoError(t, c.Open())
	require.NoError(t, c.Close())
	// double close should not error
	require.NoError(t, c.Close())
}

func TestKey(t *testing.T) {
	region := []byte("ATGGCATAA")
	assert.Equal(t, gnuuid.New("ATGGCATAA"), iocache.Key(region))
	assert.Equal(t, iocache.Key(region), iocache.Key([]byte("ATGGCATAA")))
	assert.NotEqual(t, iocache.Key(region), iocache.Key([]byte("ATGGCATAG")))
}

func TestSetGet(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "translations")
	c, err := iocache.New(dir)
	require.NoError(t, err)
	require.NoError(t, c.Open())

	region := []byte("ATGGCATAA")
	_, ok, err := c.Get(region)
	require.NoError(t, err)
	assert.False(t, ok)

	p, err := translate.Region(region)
	require.NoError(t, err)
	require.NoError(t, c.Set(region, p))

	got, ok, err := c.Get(region)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, p, got)
	assert.Equal(t, "Met-Ala", got.Render(translate.ThreeLetter))
	require.NoError(t, c.Close())

	// data survives reopening
	c, err = iocache.New(dir)
	require.NoError(t, err)
	require.NoError(t, c.Open())
	got, ok, err = c.Get(region)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "MA", got.Render(translate.OneLetter))

	require.NoError(t, c.Clean())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNotOpen(t *testing.T) {
	c, err := iocache.New(filepath.Join(t.TempDir(), "translations"))
	require.NoError(t, err)

	_, _, err = c.Get([]byte("ATG"))
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CacheOpenError, gnErr.Code)
	assert.ErrorIs(t, gnErr.Err, iocache.ErrNotOpen)

	err = c.Set([]byte("ATG"), translate.Peptide{})
	assert.Error(t, err)
}
