package rungen

import (
	internalLoader "github.com/LynkerIntel/nh-rungen/internal/config/loader"
	pkgconfig "github.com/LynkerIntel/nh-rungen/pkg/config"
)

// NewLoader constructs a template loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgconfig.LoaderOption) pkgconfig.Loader {
	cfg := pkgconfig.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}
