package drawgallery

import "embed"

// EmbeddedAssets holds the editor's script and stylesheet, served under /public/.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
