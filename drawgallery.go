// Package drawgallery serves a browser drawing editor and the JSON API that
// stores, lists, updates and deletes its drawings.
//
// The storage rules live in the gallery package; this package wires them to
// an Echo server with logging, rate limiting, thumbnails and an RSS feed.
package drawgallery

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/eringen/drawgallery/gallery"
)

// App is the gallery server. It owns the Echo instance and, unless one was
// injected with WithGallery, the gallery it serves.
type App struct {
	Config  Config
	Echo    *echo.Echo
	Gallery *gallery.Gallery

	log         zerolog.Logger
	now         func() time.Time
	limiter     *RateLimiter
	thumbs      singleflight.Group
	ownsGallery bool
}

// New builds an App from cfg: it opens the gallery, installs middleware and
// registers routes. The server is not started.
func New(cfg Config, opts ...Option) (*App, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		log:    log.Logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.Gallery == nil {
		g, err := OpenGallery(cfg, gallery.WithClock(a.now))
		if err != nil {
			return nil, err
		}
		a.Gallery = g
		a.ownsGallery = true
	}
	if cfg.WriteRateLimit > 0 {
		a.limiter = NewRateLimiter(cfg.WriteRateLimit, time.Minute, a.now)
	}

	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	assets, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/public/*", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(assets)))))

	e.GET("/", a.handleEditor)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/img/:filename", a.handleBlob)
	e.GET("/thumbs/:filename", a.handleThumbnail)

	e.GET("/images", a.handleList)
	e.POST("/save", a.handleSave, a.rateLimit)
	e.DELETE("/images/:filename", a.handleDelete, a.rateLimit)
	e.DELETE("/images", a.handleDeleteAll, a.rateLimit)
}

// Start listens on Config.Addr and blocks until the server stops.
func (a *App) Start() error {
	a.log.Info().
		Str("addr", a.Config.Addr).
		Str("image_dir", a.Config.ImageDir).
		Str("meta_backend", a.Config.MetaBackend).
		Msg("starting server")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones until ctx is done.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close releases the gallery if the App opened it.
func (a *App) Close() error {
	if a.ownsGallery && a.Gallery != nil {
		return a.Gallery.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
