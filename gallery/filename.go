// Package gallery keeps a directory of PNG drawings and their metadata index
// consistent across create, update, delete and delete-all.
package gallery

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Currency is appended to every price shown to callers. It is never stored.
const Currency = "€"

// MetaFilename is the name of the JSON metadata document inside the image directory.
const MetaFilename = "meta.json"

var (
	unsafeNameChars = regexp.MustCompile(`[^\p{L}\p{N}_\-]`)
	timestampSuffix = regexp.MustCompile(`-(\d+)\.png$`)
)

// Sanitize replaces every rune that is not a letter, a number, an underscore
// or a hyphen with an underscore. The result has as many runes as raw.
func Sanitize(raw string) string {
	return unsafeNameChars.ReplaceAllLiteralString(raw, "_")
}

// NewFilename builds the blob name for a newly created drawing.
func NewFilename(name string, now time.Time) string {
	return Sanitize(name) + "-" + strconv.FormatInt(now.UnixMilli(), 10) + ".png"
}

// DeriveTitle turns a generated filename back into a readable title for blobs
// that have no metadata entry: "img_one-12345.png" -> "img one".
func DeriveTitle(filename string) string {
	base := timestampSuffix.ReplaceAllString(filename, "")
	return strings.ReplaceAll(base, "_", " ")
}

// CreatedAt recovers the creation time encoded in a generated filename.
func CreatedAt(filename string) (time.Time, bool) {
	m := timestampSuffix.FindStringSubmatch(filename)
	if m == nil {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// FormatPrice appends the currency sign to a stored price.
func FormatPrice(price string) string {
	return price + " " + Currency
}

// CleanPrice removes a currency suffix a client may have echoed back.
func CleanPrice(price string) string {
	if p, ok := strings.CutSuffix(price, " "+Currency); ok {
		return p
	}
	return strings.TrimSuffix(price, Currency)
}

// ValidFilename reports whether f names a plain file inside the image
// directory and is not the metadata document.
func ValidFilename(f string) bool {
	if f == "" || f == "." || f == ".." || f == MetaFilename {
		return false
	}
	if strings.ContainsAny(f, `/\`) {
		return false
	}
	return filepath.Base(f) == f
}
