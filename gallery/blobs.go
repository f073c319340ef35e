package gallery

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore reads and writes PNG payloads in a single directory.
type BlobStore struct {
	dir string
}

// NewBlobStore returns a BlobStore rooted at dir, creating the directory if
// it does not exist yet.
func NewBlobStore(dir string) (*BlobStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StorageError{Op: "create image dir", Filename: dir, Err: err}
	}
	return &BlobStore{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (b *BlobStore) Dir() string {
	return b.dir
}

// Path returns the on-disk location of filename.
func (b *BlobStore) Path(filename string) string {
	return filepath.Join(b.dir, filename)
}

// Write decodes a base64 payload and writes it to filename, replacing any
// existing blob. The data URL prefix must already be stripped.
func (b *BlobStore) Write(filename, payload string) error {
	data, err := decodeBase64(payload)
	if err != nil {
		return &StorageError{Op: "decode", Filename: filename, Err: err}
	}
	if err := os.WriteFile(b.Path(filename), data, 0o644); err != nil {
		return &StorageError{Op: "write", Filename: filename, Err: err}
	}
	return nil
}

// Read returns the raw bytes of filename.
func (b *BlobStore) Read(filename string) ([]byte, error) {
	data, err := os.ReadFile(b.Path(filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", filename, ErrNotFound)
		}
		return nil, &StorageError{Op: "read", Filename: filename, Err: err}
	}
	return data, nil
}

// List returns every entry whose name ends in ".png", in the order the
// directory listing produced them.
func (b *BlobStore) List() ([]string, error) {
	f, err := os.Open(b.dir)
	if err != nil {
		return nil, &StorageError{Op: "list", Filename: b.dir, Err: err}
	}
	defer f.Close()

	// File.ReadDir keeps the OS order; os.ReadDir would sort.
	entries, err := f.ReadDir(-1)
	if err != nil {
		return nil, &StorageError{Op: "list", Filename: b.dir, Err: err}
	}
	pngs := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".png") {
			continue
		}
		pngs = append(pngs, e.Name())
	}
	return pngs, nil
}

// Delete removes one blob. It returns ErrNotFound if the blob is absent.
func (b *BlobStore) Delete(filename string) error {
	if err := os.Remove(b.Path(filename)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", filename, ErrNotFound)
		}
		return &StorageError{Op: "delete", Filename: filename, Err: err}
	}
	return nil
}

// DeleteAll removes every entry in the directory: blobs, the metadata
// document and any stray files. It stops at the first entry it cannot remove.
func (b *BlobStore) DeleteAll() error {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		return &StorageError{Op: "list", Filename: b.dir, Err: err}
	}
	for _, e := range entries {
		if err := os.Remove(b.Path(e.Name())); err != nil {
			return &StorageError{Op: "delete", Filename: e.Name(), Err: err}
		}
	}
	return nil
}

// decodeBase64 accepts standard base64 with or without padding and ignores
// embedded whitespace.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
