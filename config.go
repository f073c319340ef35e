package drawgallery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/eringen/drawgallery/gallery"
)

// Metadata backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds all configuration for a gallery server.
type Config struct {
	Name string `yaml:"name"` // Site name (default "Draw Gallery")
	URL  string `yaml:"url"`  // Canonical URL used in the feed (default "http://localhost:3000")

	Addr         string `yaml:"addr"`          // Listen address (default ":3000")
	ImageDir     string `yaml:"image_dir"`     // Blob directory (default "img")
	MetaBackend  string `yaml:"meta_backend"`  // "json" or "sqlite" (default "json")
	DatabasePath string `yaml:"database_path"` // SQLite path for the sqlite backend (default "data/gallery.db")

	BodyLimit      string `yaml:"body_limit"`       // Max request body, echo size syntax (default "10M")
	WriteRateLimit int    `yaml:"write_rate_limit"` // Mutating requests per minute per IP; negative disables (default 60)
	ThumbnailWidth int    `yaml:"thumbnail_width"`  // Default thumbnail width in pixels (default 240)

	LogLevel  string `yaml:"log_level"`  // zerolog level name (default "info")
	LogFormat string `yaml:"log_format"` // "console" or "json" (default "console")
}

func (c *Config) setDefaults() {
	if c.Name == "" {
		c.Name = "Draw Gallery"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ImageDir == "" {
		c.ImageDir = "img"
	}
	if c.MetaBackend == "" {
		c.MetaBackend = BackendJSON
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/gallery.db"
	}
	if c.BodyLimit == "" {
		c.BodyLimit = "10M"
	}
	if c.WriteRateLimit == 0 {
		c.WriteRateLimit = 60
	}
	if c.ThumbnailWidth == 0 {
		c.ThumbnailWidth = 240
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
}

func (c *Config) applyEnv() {
	c.Addr = EnvOr("DRAWGALLERY_ADDR", c.Addr)
	c.ImageDir = EnvOr("DRAWGALLERY_IMAGE_DIR", c.ImageDir)
	c.MetaBackend = EnvOr("DRAWGALLERY_META_BACKEND", c.MetaBackend)
	c.DatabasePath = EnvOr("DRAWGALLERY_DATABASE_PATH", c.DatabasePath)
	c.URL = EnvOr("DRAWGALLERY_URL", c.URL)
	c.LogLevel = EnvOr("DRAWGALLERY_LOG_LEVEL", c.LogLevel)
}

// Validate reports configuration values the server cannot run with.
func (c Config) Validate() error {
	switch c.MetaBackend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("drawgallery: unknown meta_backend %q (want %q or %q)", c.MetaBackend, BackendJSON, BackendSQLite)
	}
	if c.ThumbnailWidth < 1 || c.ThumbnailWidth > maxThumbnailWidth {
		return fmt.Errorf("drawgallery: thumbnail_width must be between 1 and %d", maxThumbnailWidth)
	}
	return nil
}

// LoadConfig reads a YAML config file, applies DRAWGALLERY_* environment
// overrides and fills defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("drawgallery: read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("drawgallery: parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	cfg.setDefaults()
	return cfg, cfg.Validate()
}

// OpenGallery builds the gallery described by cfg without starting a server.
func OpenGallery(cfg Config, opts ...gallery.Option) (*gallery.Gallery, error) {
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dbPath := ""
	if cfg.MetaBackend == BackendSQLite {
		dbPath = cfg.DatabasePath
	}
	return gallery.Open(cfg.ImageDir, dbPath, opts...)
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the logger used for request and error logging.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// WithClock overrides the time source for generated filenames and rate limiting.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithGallery serves an already opened gallery instead of opening one from Config.
// The App does not close it.
func WithGallery(g *gallery.Gallery) Option {
	return func(a *App) {
		a.Gallery = g
	}
}
