// Package store persists query results as flat text files in the public static directory.
package store

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/AlexZinkM/substreams-relay/internal/common"
)

// StaticPrefix is the URL prefix the public directory is served under.
const StaticPrefix = "/static/"

// ResultStore writes <address>.txt files. Writes overwrite in place; concurrent writers
// for the same address race and the last one wins.
type ResultStore struct {
	dir string
}

// NewResultStore creates a store rooted at dir. The directory is created on first write.
func NewResultStore(dir string) *ResultStore {
	return &ResultStore{dir: dir}
}

// Save writes contents for a normalized wallet address and returns the public URL path of the file.
func (s *ResultStore) Save(address, contents string) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create result directory: %w", err)
	}

	name := common.ResultFileName(address)
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(contents), 0644); err != nil {
		return "", fmt.Errorf("failed to write result file: %w", err)
	}

	return PublicPath(address), nil
}

// Load reads the stored result for an address.
func (s *ResultStore) Load(address string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, common.ResultFileName(address)))
	if err != nil {
		return "", fmt.Errorf("failed to read result file: %w", err)
	}
	return string(data), nil
}

// FileSystem serves the stored result files. Directories are reported as missing so the
// list of queried wallets is never exposed.
func (s *ResultStore) FileSystem() http.FileSystem {
	return filesOnly{http.Dir(s.dir)}
}

type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}

// PublicPath returns the URL path a result file is served at.
func PublicPath(address string) string {
	return path.Join(StaticPrefix, common.ResultFileName(address))
}
