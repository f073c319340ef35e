package gallery

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Record is the metadata kept for one drawing. Price is stored without a
// currency suffix.
type Record struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

// UnmarshalJSON accepts a numeric price, which older indexes stored as the
// raw request value.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name  string    `json:"name"`
		Price PriceText `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Name, r.Price = raw.Name, string(raw.Price)
	return nil
}

// PriceText is a price read from JSON as a string, a number or null.
// Numbers keep their literal digits.
type PriceText string

func (p *PriceText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceText(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = PriceText(n.String())
	return nil
}

// Index maps blob filenames to their metadata.
type Index map[string]Record

// MetadataStore persists the filename to Record mapping.
type MetadataStore interface {
	// LoadAll returns the whole index. A missing index is empty, not an error.
	LoadAll() (Index, error)
	// SaveAll replaces the whole index.
	SaveAll(Index) error
	Get(filename string) (Record, bool, error)
	Upsert(filename, name, price string) error
	// Remove deletes one entry. Removing an absent key is a no-op.
	Remove(filename string) error
	// Clear drops every entry.
	Clear() error
	Close() error
}

// FileIndex keeps the index as a single JSON document.
type FileIndex struct {
	path string
	mu   sync.Mutex
}

// NewFileIndex returns a FileIndex stored at dir/meta.json. The document is
// not created until the first write.
func NewFileIndex(dir string) *FileIndex {
	return &FileIndex{path: filepath.Join(dir, MetaFilename)}
}

// Path returns the location of the JSON document.
func (f *FileIndex) Path() string {
	return f.path
}

func (f *FileIndex) LoadAll() (Index, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load()
}

func (f *FileIndex) SaveAll(idx Index) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.save(idx)
}

func (f *FileIndex) Get(filename string) (Record, bool, error) {
	idx, err := f.LoadAll()
	if err != nil {
		return Record{}, false, err
	}
	rec, ok := idx[filename]
	return rec, ok, nil
}

func (f *FileIndex) Upsert(filename, name, price string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, err := f.load()
	if err != nil {
		return err
	}
	idx[filename] = Record{Name: name, Price: price}
	return f.save(idx)
}

func (f *FileIndex) Remove(filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := idx[filename]; !ok {
		return nil
	}
	delete(idx, filename)
	return f.save(idx)
}

// Clear deletes the JSON document if it exists.
func (f *FileIndex) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &StorageError{Op: "clear metadata", Err: err}
	}
	return nil
}

func (f *FileIndex) Close() error { return nil }

func (f *FileIndex) load() (Index, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Index{}, nil
		}
		return nil, &StorageError{Op: "read metadata", Err: err}
	}
	idx := Index{}
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, &StorageError{Op: "parse metadata", Err: err}
	}
	if idx == nil {
		// the document was a literal null
		idx = Index{}
	}
	return idx, nil
}

func (f *FileIndex) save(idx Index) error {
	if idx == nil {
		idx = Index{}
	}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode metadata", Err: err}
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return &StorageError{Op: "write metadata", Err: err}
	}
	return nil
}
