package drawgallery

import (
	"net/url"
	"path"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/drawgallery/gallery"
)

const dataURLPrefix = "data:image/png;base64,"

// stripDataURL removes the PNG data URL prefix the editor sends. Payloads
// without the prefix pass through unchanged.
func stripDataURL(s string) string {
	return strings.TrimPrefix(s, dataURLPrefix)
}

// filenameParam returns the :filename path parameter and whether it names a
// plain file inside the image directory.
func filenameParam(c echo.Context) (string, bool) {
	raw := c.Param("filename")
	f, err := url.PathUnescape(raw)
	if err != nil {
		f = raw
	}
	return f, gallery.ValidFilename(f)
}

// BuildURL joins a base URL with path segments. Segments are escaped.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	return u.String()
}

// wantsHTML reports whether the client is a browser navigating to a page.
func wantsHTML(c echo.Context) bool {
	r := c.Request()
	if r.Method != "GET" {
		return false
	}
	return strings.Contains(r.Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
