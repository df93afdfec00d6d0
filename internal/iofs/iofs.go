// Package iofs keeps application directories and reads GenBank files.
package iofs

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/gnames/gngb/pkg/config"
	"github.com/gnames/gngb/pkg/templates"
)

// EnsureDirs creates config, cache and log directories if they do not
// exist yet.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the config.yaml template unless the file
// already exists.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.WriteFile(configPath, []byte(templates.ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// GenBankFile is an open GenBank file. Files with '.gz' suffix are
// decompressed on the fly.
type GenBankFile struct {
	io.Reader
	Path string
	// Size is the size of the file on disk.
	Size int64

	f  *os.File
	gz *gzip.Reader
}

// Close releases the file.
func (g *GenBankFile) Close() error {
	var err error
	if g.gz != nil {
		err = g.gz.Close()
	}
	return errors.Join(err, g.f.Close())
}

// OpenGenBank opens a GenBank file for reading.
func OpenGenBank(path string) (*GenBankFile, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, FileNotFoundError(path, err)
	}
	if err != nil {
		return nil, ReadFileError(path, err)
	}
	if info.IsDir() {
		return nil, ReadFileError(path, errors.New("path is a directory"))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ReadFileError(path, err)
	}

	res := &GenBankFile{Path: path, Size: info.Size(), f: f}
	if !strings.HasSuffix(strings.ToLower(path), ".gz") {
		res.Reader = bufio.NewReader(f)
		return res, nil
	}

	res.gz, err = gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, ReadFileError(path, err)
	}
	res.Reader = res.gz
	return res, nil
}
