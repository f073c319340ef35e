package drawgallery

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/drawgallery/gallery"
	"github.com/eringen/drawgallery/views"
)

func (a *App) handleEditor(c echo.Context) error {
	return Render(c, views.Editor(views.EditorPage{
		SiteName:       a.Config.Name,
		ThumbnailWidth: a.Config.ThumbnailWidth,
	}))
}

func (a *App) handleSave(c echo.Context) error {
	var req saveRequest
	if err := c.Bind(&req); err != nil {
		if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
			return echo.ErrStatusRequestEntityTooLarge
		}
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}

	res, err := a.Gallery.Save(gallery.SaveInput{
		Name:     req.Name,
		Price:    string(req.Price),
		Image:    stripDataURL(req.Image),
		Filename: req.Filename,
	})
	if err != nil {
		var ve *gallery.ValidationError
		if errors.As(err, &ve) {
			return echo.NewHTTPError(http.StatusBadRequest, ve.Message)
		}
		msg := "Failed to save image"
		if req.Filename != "" {
			msg = "Failed to update image"
		}
		return echo.NewHTTPError(http.StatusInternalServerError, msg).SetInternal(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (a *App) handleList(c echo.Context) error {
	items, err := a.Gallery.List()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list images").SetInternal(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (a *App) handleDelete(c echo.Context) error {
	filename, ok := filenameParam(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid filename")
	}
	if err := a.Gallery.Delete(filename); err != nil {
		if gallery.IsNotFound(err) {
			return echo.NewHTTPError(http.StatusNotFound, "Image not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete image").SetInternal(err)
	}
	a.log.Info().Str("filename", filename).Msg("image deleted")
	return JSONMessage(c, http.StatusOK, "Image deleted successfully")
}

func (a *App) handleDeleteAll(c echo.Context) error {
	if err := a.Gallery.DeleteAll(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete images").SetInternal(err)
	}
	a.log.Warn().Str("image_dir", a.Config.ImageDir).Msg("gallery wiped")
	return JSONMessage(c, http.StatusOK, "All images deleted successfully")
}

func (a *App) handleBlob(c echo.Context) error {
	filename, ok := filenameParam(c)
	if !ok || !strings.HasSuffix(filename, ".png") {
		return echo.ErrNotFound
	}
	data, err := a.Gallery.Blob(filename)
	if err != nil {
		if gallery.IsNotFound(err) {
			return echo.ErrNotFound
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read image").SetInternal(err)
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	cause := err
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
		if he.Internal != nil {
			cause = he.Internal
		}
	}

	if code >= http.StatusInternalServerError {
		a.log.Error().
			Err(cause).
			Int("status", code).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Str("uri", c.Request().RequestURI).
			Msg(msg)
	}

	var werr error
	switch {
	case code == http.StatusNotFound && wantsHTML(c):
		werr = RenderStatus(c, code, views.NotFound(a.Config.Name))
	case c.Request().Method == http.MethodHead:
		werr = c.NoContent(code)
	default:
		werr = JSONMessage(c, code, msg)
	}
	if werr != nil {
		a.log.Error().Err(werr).Msg("write error response")
	}
}
