package gallery

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var pngHeader = base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\n"))

func newTestGallery(t *testing.T) (*Gallery, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "img")
	clock := time.UnixMilli(1700000000000)
	g, err := Open(dir, "", WithClock(func() time.Time { return clock }))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g, dir
}

func findItem(items []Item, filename string) (Item, bool) {
	for _, it := range items {
		if it.Filename == filename {
			return it, true
		}
	}
	return Item{}, false
}

func TestSaveCreateRoundTrip(t *testing.T) {
	g, _ := newTestGallery(t)

	res, err := g.Save(SaveInput{Name: "My Test Image", Price: "100", Image: pngHeader})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if res.Message != MsgSaved {
		t.Errorf("Message = %q", res.Message)
	}
	if res.Filename != "My_Test_Image-1700000000000.png" {
		t.Errorf("Filename = %q", res.Filename)
	}
	if res.Title != "My Test Image" || res.Price != "100 €" {
		t.Errorf("result = %+v", res)
	}

	items, err := g.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	it, ok := findItem(items, res.Filename)
	if !ok {
		t.Fatalf("saved image not listed: %v", items)
	}
	if it.Title != "My Test Image" || it.Price == nil || *it.Price != "100 €" {
		t.Errorf("listed item = %+v", it)
	}
}

func TestSaveCreateEmptyPrice(t *testing.T) {
	g, _ := newTestGallery(t)
	res, err := g.Save(SaveInput{Name: "free", Image: pngHeader})
	if err != nil {
		t.Fatal(err)
	}
	if res.Price != " €" {
		t.Errorf("Price = %q, want bare currency", res.Price)
	}
	items, _ := g.List()
	if len(items) != 1 || items[0].Price != nil {
		t.Errorf("empty stored price should list as null: %+v", items)
	}
}

func TestSaveUpdateKeepsFilename(t *testing.T) {
	g, _ := newTestGallery(t)
	created, err := g.Save(SaveInput{Name: "cat", Price: "5", Image: pngHeader})
	if err != nil {
		t.Fatal(err)
	}

	for _, price := range []string{"7 €", "8€", "9"} {
		res, err := g.Save(SaveInput{Name: "cat v2", Price: price, Image: pngHeader, Filename: created.Filename})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if res.Message != MsgUpdated {
			t.Errorf("Message = %q", res.Message)
		}
		if res.Filename != created.Filename {
			t.Errorf("Filename changed: %q -> %q", created.Filename, res.Filename)
		}
		want := CleanPrice(price) + " €"
		if res.Price != want {
			t.Errorf("Price(%q) = %q, want %q", price, res.Price, want)
		}
	}

	items, _ := g.List()
	if len(items) != 1 || items[0].Filename != created.Filename {
		t.Fatalf("List = %+v", items)
	}
	if items[0].Title != "cat v2" || *items[0].Price != "9 €" {
		t.Errorf("item = %+v", items[0])
	}
}

func TestSaveValidation(t *testing.T) {
	g, dir := newTestGallery(t)
	tests := []struct {
		in   SaveInput
		want string
	}{
		{SaveInput{Image: pngHeader, Price: "1"}, "Name is required"},
		{SaveInput{Name: "x"}, "Image is required"},
		{SaveInput{Name: "x", Image: pngHeader, Filename: "../escape.png"}, "Invalid filename"},
		{SaveInput{Name: "x", Image: pngHeader, Filename: MetaFilename}, "Invalid filename"},
	}
	for _, tt := range tests {
		_, err := g.Save(tt.in)
		if !IsValidation(err) {
			t.Fatalf("Save(%+v) = %v, want ValidationError", tt.in, err)
		}
		if err.Error() != tt.want {
			t.Errorf("message = %q, want %q", err.Error(), tt.want)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("failed saves left %d entries behind", len(entries))
	}
}

func TestListFallbackTitle(t *testing.T) {
	g, dir := newTestGallery(t)
	if err := os.WriteFile(filepath.Join(dir, "img_one-12345.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	items, err := g.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Fatalf("List = %+v", items)
	}
	if items[0].Title != "img one" || items[0].Price != nil {
		t.Errorf("item = %+v, want title %q and nil price", items[0], "img one")
	}
}

// An entry with an empty name still falls back to the derived title.
// Create never stores an empty name, so only hand-edited indexes hit this.
func TestListEmptyNameFallsBackToDerivedTitle(t *testing.T) {
	g, dir := newTestGallery(t)
	if err := os.WriteFile(filepath.Join(dir, "img_one-12345.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := g.meta.Upsert("img_one-12345.png", "", "7"); err != nil {
		t.Fatal(err)
	}
	items, err := g.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Title != "img one" {
		t.Fatalf("List = %+v, want derived title", items)
	}
	if items[0].Price == nil || *items[0].Price != "7 €" {
		t.Errorf("Price = %v, want 7 €", items[0].Price)
	}
}

func TestListNumericPriceInIndex(t *testing.T) {
	g, dir := newTestGallery(t)
	if err := os.WriteFile(filepath.Join(dir, "a-1.png"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc := `{"a-1.png":{"name":"A","price":100}}`
	if err := os.WriteFile(filepath.Join(dir, MetaFilename), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	items, err := g.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 || items[0].Title != "A" || items[0].Price == nil || *items[0].Price != "100 €" {
		t.Fatalf("List = %+v", items)
	}

	// The next write normalizes the price to a string.
	if _, err := g.Save(SaveInput{Name: "A", Price: "5", Image: pngHeader, Filename: "a-1.png"}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, MetaFilename))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"price": "5"`) {
		t.Errorf("meta.json = %s", data)
	}
}

func TestListIgnoresOrphanMetadata(t *testing.T) {
	g, _ := newTestGallery(t)
	if err := g.meta.Upsert("ghost-1.png", "ghost", "3"); err != nil {
		t.Fatal(err)
	}
	items, err := g.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("orphan entry surfaced: %+v", items)
	}
}

func TestDeleteRemovesBlobAndMetadata(t *testing.T) {
	g, dir := newTestGallery(t)
	res, err := g.Save(SaveInput{Name: "bye", Price: "1", Image: pngHeader})
	if err != nil {
		t.Fatal(err)
	}
	if err := g.Delete(res.Filename); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, res.Filename)); !os.IsNotExist(err) {
		t.Errorf("blob still on disk")
	}
	if _, ok, _ := g.meta.Get(res.Filename); ok {
		t.Errorf("metadata entry survived delete")
	}
	items, _ := g.List()
	if _, ok := findItem(items, res.Filename); ok {
		t.Errorf("deleted image still listed")
	}

	if err := g.Delete(res.Filename); !IsNotFound(err) {
		t.Fatalf("second Delete = %v, want ErrNotFound", err)
	}
}

func TestDeleteMissingLeavesMetadata(t *testing.T) {
	g, _ := newTestGallery(t)
	if err := g.meta.Upsert("orphan-1.png", "orphan", ""); err != nil {
		t.Fatal(err)
	}
	if err := g.Delete("orphan-1.png"); !IsNotFound(err) {
		t.Fatalf("Delete = %v, want ErrNotFound", err)
	}
	if _, ok, _ := g.meta.Get("orphan-1.png"); !ok {
		t.Errorf("metadata entry removed although blob delete failed")
	}
}

func TestDeleteAllEmptiesDirectory(t *testing.T) {
	g, dir := newTestGallery(t)
	if _, err := g.Save(SaveInput{Name: "a", Price: "1", Image: pngHeader}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "stray.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := g.DeleteAll(); err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("%d entries remain after DeleteAll", len(entries))
	}
	items, err := g.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 0 {
		t.Fatalf("List after DeleteAll = %+v", items)
	}
}

func TestGallerySQLiteBackend(t *testing.T) {
	root := t.TempDir()
	g, err := Open(filepath.Join(root, "img"), filepath.Join(root, "data", "gallery.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer g.Close()

	res, err := g.Save(SaveInput{Name: "sql", Price: "2", Image: pngHeader})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(root, "img", MetaFilename)); !os.IsNotExist(err) {
		t.Errorf("sqlite backend should not write meta.json")
	}
	items, _ := g.List()
	if len(items) != 1 || items[0].Title != "sql" {
		t.Fatalf("List = %+v", items)
	}

	if err := g.DeleteAll(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := g.meta.Get(res.Filename); ok {
		t.Errorf("sqlite index not cleared")
	}
}
