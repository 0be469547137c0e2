package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ImageStore keeps image bytes under the name they were requested by
type ImageStore interface {
	// Exists reports whether key is stored and its size
	Exists(key string) (exists bool, size int64, err error)
	Save(key string, reader io.Reader) error
	Open(key string) (io.ReadCloser, error)
	Delete(key string) error
}

// DiskStore implements ImageStore on the local filesystem
type DiskStore struct {
	dir string
}

// NewDiskStore creates the directory if it does not exist
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image cache directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (d *DiskStore) Exists(key string) (bool, int64, error) {
	info, err := os.Stat(d.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

// Save writes to a temporary file first so readers never see a partial image
func (d *DiskStore) Save(key string, reader io.Reader) error {
	tmp, err := os.CreateTemp(d.dir, ".partial-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path(key)); err != nil {
		return fmt.Errorf("failed to store file: %w", err)
	}
	return nil
}

func (d *DiskStore) Open(key string) (io.ReadCloser, error) {
	file, err := os.Open(d.path(key))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

func (d *DiskStore) Delete(key string) error {
	err := os.Remove(d.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// path maps a key to a flat file name; the extension is kept for inspection
func (d *DiskStore) path(key string) string {
	return filepath.Join(d.dir, encodeKey(key)+strings.ToLower(filepath.Ext(key)))
}

// encodeKey creates a filesystem-safe hash of the key
func encodeKey(key string) string {
	hash := sha256.Sum256([]byte(key))
	return hex.EncodeToString(hash[:16])
}
