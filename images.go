package drawgallery

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/eringen/drawgallery/gallery"
)

const (
	maxThumbnailWidth = 1024
	// maxSourcePixels caps the decoded size of a drawing before thumbnailing.
	maxSourcePixels = 16 << 20
)

var (
	errNotPNG      = errors.New("not a decodable png")
	errPNGTooLarge = errors.New("png dimensions too large")
)

// handleThumbnail serves a stored drawing scaled down to at most ?w= pixels
// wide. Thumbnails are rendered per request and never written to disk.
func (a *App) handleThumbnail(c echo.Context) error {
	filename, ok := filenameParam(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid filename")
	}
	width := a.Config.ThumbnailWidth
	if q := c.QueryParam("w"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid width")
		}
		width = min(n, maxThumbnailWidth)
	}

	key := filename + ":" + strconv.Itoa(width)
	v, err, _ := a.thumbs.Do(key, func() (any, error) {
		data, err := a.Gallery.Blob(filename)
		if err != nil {
			return nil, err
		}
		return thumbnail(data, width)
	})
	if err != nil {
		switch {
		case gallery.IsNotFound(err):
			return echo.ErrNotFound
		case errors.Is(err, errNotPNG):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Image is not a valid PNG").SetInternal(err)
		case errors.Is(err, errPNGTooLarge):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Image is too large").SetInternal(err)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render thumbnail").SetInternal(err)
	}
	return c.Blob(http.StatusOK, "image/png", v.([]byte))
}

// thumbnail decodes a PNG and, if it is wider than width, scales it down
// keeping the aspect ratio. Narrow images are returned as-is. The header is
// checked first so oversized images are rejected before any pixel is decoded.
func thumbnail(data []byte, width int) ([]byte, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotPNG, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxSourcePixels {
		return nil, fmt.Errorf("%w: %dx%d", errPNGTooLarge, cfg.Width, cfg.Height)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotPNG, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= width {
		return data, nil
	}

	newH := max(h*width/w, 1)
	dst := image.NewRGBA(image.Rect(0, 0, width, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
