// Package iocache keeps translated peptides in a Badger v4 key-value
// store. Keys are UUIDv5 of resolved nucleotide regions, so the same
// region found in different records or files is translated once.
package iocache

import (
	"errors"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	"github.com/gnames/gnuuid"
	"github.com/gnames/gngb/pkg/translate"
	"github.com/google/uuid"
)

// peptideData is the cached part of a translation. Residues are kept as
// one letter codes, the output style is applied later.
type peptideData struct {
	Residues string
	Stopped  bool
	Codons   int
	Dropped  int
}

// Cache manages a persistent Badger store of translations at
// ~/.cache/gngb/translations.
type Cache struct {
	dir string
	db  *badger.DB
}

// New creates a cache at the specified directory. It creates the
// directory if it does not exist. Existing data is kept.
func New(cacheDir string) (*Cache, error) {
	err := gnsys.MakeDir(cacheDir)
	if err != nil {
		slog.Error("Cannot create cache directory", "error", err, "dir", cacheDir)
		return nil, CacheOpenError(cacheDir, err)
	}
	return &Cache{dir: cacheDir}, nil
}

// Dir returns the directory of the store.
func (c *Cache) Dir() string {
	return c.dir
}

// Open opens the Badger database for the cache.
func (c *Cache) Open() error {
	if c.db != nil {
		slog.Warn("Cache database is already open")
		return nil
	}

	options := badger.DefaultOptions(c.dir)
	options.Logger = nil // Disable badger's internal logging

	db, err := badger.Open(options)
	if err != nil {
		slog.Error("Cannot open cache database", "error", err, "dir", c.dir)
		return CacheOpenError(c.dir, err)
	}

	c.db = db
	slog.Info("Cache database opened", "dir", c.dir)
	return nil
}

// Close closes the Badger database.
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}

	err := c.db.Close()
	c.db = nil
	if err != nil {
		slog.Error("Cannot close cache database", "error", err)
		return err
	}

	slog.Info("Cache database closed")
	return nil
}

// Key returns the UUIDv5 of a nucleotide region.
func Key(region []byte) uuid.UUID {
	return gnuuid.New(string(region))
}

// Set stores the translation of a region.
func (c *Cache) Set(region []byte, p translate.Peptide) error {
	if c.db == nil {
		return CacheNotOpenError()
	}

	data := peptideData{
		Residues: string(p.Residues),
		Stopped:  p.Stopped,
		Codons:   p.Codons,
		Dropped:  p.Dropped,
	}

	enc := gnfmt.GNgob{}
	valBytes, err := enc.Encode(data)
	if err != nil {
		return CacheWriteError(err)
	}

	key := Key(region)
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key[:], valBytes)
	})
	if err != nil {
		slog.Error("Cannot store translation", "error", err, "key", key.String())
		return CacheWriteError(err)
	}
	return nil
}

// Get returns the cached translation of a region. The boolean is false
// if the region was never stored.
func (c *Cache) Get(region []byte) (translate.Peptide, bool, error) {
	var res translate.Peptide
	if c.db == nil {
		return res, false, CacheNotOpenError()
	}

	var valBytes []byte
	key := Key(region)
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key[:])
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		valBytes, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		slog.Error("Cannot retrieve translation", "error", err, "key", key.String())
		return res, false, CacheReadError(err)
	}

	if valBytes == nil {
		return res, false, nil
	}

	enc := gnfmt.GNgob{}
	var data peptideData
	if err = enc.Decode(valBytes, &data); err != nil {
		return res, false, CacheReadError(err)
	}

	res = translate.Peptide{
		Residues: []byte(data.Residues),
		Stopped:  data.Stopped,
		Codons:   data.Codons,
		Dropped:  data.Dropped,
	}
	return res, true, nil
}

// Clean closes the database and removes all cached data.
func (c *Cache) Clean() error {
	if err := c.Close(); err != nil {
		return err
	}

	err := gnsys.CleanDir(c.dir)
	if err != nil {
		slog.Error("Cannot remove cache directory", "error", err, "dir", c.dir)
		return CacheCleanError(c.dir, err)
	}

	slog.Info("Cache cleaned up", "dir", c.dir)
	return nil
}
