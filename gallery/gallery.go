package gallery

import (
	"fmt"
	"time"
)

// Response messages returned by Save.
const (
	MsgSaved   = "Image saved successfully"
	MsgUpdated = "Image updated successfully"
)

// Item is one entry of the externally visible gallery listing.
type Item struct {
	Filename string  `json:"filename"`
	Title    string  `json:"title"`
	Price    *string `json:"price"`
}

// SaveInput carries a create or update request. An empty Filename creates a
// new drawing; otherwise the blob at Filename is overwritten.
type SaveInput struct {
	Name     string
	Price    string
	Image    string // base64 payload without the data URL prefix
	Filename string
}

// SaveResult is returned by a successful Save.
type SaveResult struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Price    string `json:"price"`
}

// Gallery joins the blob store with a metadata store.
type Gallery struct {
	blobs *BlobStore
	meta  MetadataStore
	now   func() time.Time
}

// Option configures a Gallery.
type Option func(*Gallery)

// WithClock overrides the time source used for generated filenames.
func WithClock(now func() time.Time) Option {
	return func(g *Gallery) {
		g.now = now
	}
}

// New returns a Gallery over the given stores.
func New(blobs *BlobStore, meta MetadataStore, opts ...Option) *Gallery {
	g := &Gallery{blobs: blobs, meta: meta, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Open builds a Gallery rooted at imageDir. With an empty dbPath the index is
// the meta.json document inside imageDir; otherwise a SQLite database at dbPath.
func Open(imageDir, dbPath string, opts ...Option) (*Gallery, error) {
	blobs, err := NewBlobStore(imageDir)
	if err != nil {
		return nil, err
	}
	var meta MetadataStore
	if dbPath == "" {
		meta = NewFileIndex(imageDir)
	} else {
		idx, err := NewSQLiteIndex(dbPath)
		if err != nil {
			return nil, err
		}
		meta = idx
	}
	return New(blobs, meta, opts...), nil
}

// Close releases the metadata store.
func (g *Gallery) Close() error {
	return g.meta.Close()
}

// List returns one Item per PNG blob currently on disk. Metadata entries
// without a blob are never listed.
func (g *Gallery) List() ([]Item, error) {
	files, err := g.blobs.List()
	if err != nil {
		return nil, err
	}
	idx, err := g.meta.LoadAll()
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, len(files))
	for _, f := range files {
		item := Item{Filename: f, Title: DeriveTitle(f)}
		if rec, ok := idx[f]; ok {
			if rec.Name != "" {
				item.Title = rec.Name
			}
			if rec.Price != "" {
				p := FormatPrice(rec.Price)
				item.Price = &p
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// Save creates a new drawing or overwrites an existing one.
func (g *Gallery) Save(in SaveInput) (SaveResult, error) {
	if in.Name == "" {
		return SaveResult{}, &ValidationError{Message: "Name is required"}
	}
	if in.Image == "" {
		return SaveResult{}, &ValidationError{Message: "Image is required"}
	}

	if in.Filename != "" {
		if !ValidFilename(in.Filename) {
			return SaveResult{}, &ValidationError{Message: "Invalid filename"}
		}
		price := CleanPrice(in.Price)
		if err := g.blobs.Write(in.Filename, in.Image); err != nil {
			return SaveResult{}, err
		}
		if err := g.meta.Upsert(in.Filename, in.Name, price); err != nil {
			return SaveResult{}, fmt.Errorf("update %s: %w", in.Filename, err)
		}
		return SaveResult{
			Message:  MsgUpdated,
			Filename: in.Filename,
			Title:    in.Name,
			Price:    FormatPrice(price),
		}, nil
	}

	filename := NewFilename(in.Name, g.now())
	if err := g.blobs.Write(filename, in.Image); err != nil {
		return SaveResult{}, err
	}
	if err := g.meta.Upsert(filename, in.Name, in.Price); err != nil {
		return SaveResult{}, fmt.Errorf("save %s: %w", filename, err)
	}
	return SaveResult{
		Message:  MsgSaved,
		Filename: filename,
		Title:    in.Name,
		Price:    FormatPrice(in.Price),
	}, nil
}

// Delete removes a blob and then its metadata entry. If the blob is absent
// it returns ErrNotFound and leaves the index untouched.
func (g *Gallery) Delete(filename string) error {
	if err := g.blobs.Delete(filename); err != nil {
		return err
	}
	return g.meta.Remove(filename)
}

// DeleteAll wipes the image directory and then clears the index.
func (g *Gallery) DeleteAll() error {
	if err := g.blobs.DeleteAll(); err != nil {
		return err
	}
	return g.meta.Clear()
}

// Blob returns the raw bytes of one drawing.
func (g *Gallery) Blob(filename string) ([]byte, error) {
	return g.blobs.Read(filename)
}
