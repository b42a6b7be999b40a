// Package setup assembles the per-invocation I/O stack from
// configuration: output sinks first, then filesystem search paths, then
// the support-file bundle.
package setup

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/InkForge/inkforge/internal/backends"
	"github.com/InkForge/inkforge/internal/config"
	"github.com/InkForge/inkforge/internal/formats"
	"github.com/InkForge/inkforge/internal/resolver"
	"go.uber.org/zap"
)

// Setup is a ready-to-use I/O environment for one engine invocation.
type Setup struct {
	// Stack resolves every engine open.
	Stack *resolver.Stack

	// Memory is the in-memory sink; engine outputs are collected from
	// it after the run.
	Memory *backends.Memory

	// Bundle is the support-file bundle, if one is configured.
	Bundle resolver.Bundle

	// Formats is the derived-artifact cache, if enabled.
	Formats *formats.Cache

	closers []io.Closer
}

// Close releases backends that hold resources (e.g. an open zip archive).
// The stack must not be used afterwards.
func (s *Setup) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Builder accumulates the pieces of a Setup.
type Builder struct {
	logger        *zap.Logger
	searchPaths   []string
	bundlePath    string
	bundle        resolver.Bundle
	genuineStdout bool
	writableFS    bool
	formatDir     string
	metrics       *resolver.Metrics
}

// NewBuilder starts an empty builder.
func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger}
}

// FromConfig starts a builder preloaded from configuration.
func FromConfig(cfg *config.Config, logger *zap.Logger) *Builder {
	b := NewBuilder(logger)
	b.searchPaths = append(b.searchPaths, cfg.IO.SearchPaths...)
	b.bundlePath = cfg.IO.BundlePath
	b.genuineStdout = cfg.IO.UseGenuineStdout
	b.writableFS = cfg.IO.WritesToFilesystem
	b.formatDir = cfg.IO.FormatCacheDir
	if cfg.Metrics.Enabled {
		b.metrics = resolver.NewMetrics()
	}
	return b
}

// SearchPath appends a directory consulted for inputs before the bundle.
func (b *Builder) SearchPath(path string) *Builder {
	b.searchPaths = append(b.searchPaths, path)
	return b
}

// BundlePath points the builder at a bundle on disk: a .zip archive or an
// unpacked directory.
func (b *Builder) BundlePath(path string) *Builder {
	b.bundlePath = path
	return b
}

// Bundle supplies an already-constructed bundle, e.g. a cache-backed
// mirror. It takes precedence over BundlePath.
func (b *Builder) Bundle(bundle resolver.Bundle) *Builder {
	b.bundle = bundle
	return b
}

// GenuineStdout routes the stdout sink to the real process stdout.
func (b *Builder) GenuineStdout(enabled bool) *Builder {
	b.genuineStdout = enabled
	return b
}

// WritableFilesystem lets the first search path accept output opens.
func (b *Builder) WritableFilesystem(enabled bool) *Builder {
	b.writableFS = enabled
	return b
}

// FormatCacheDir enables the format cache in the given directory.
func (b *Builder) FormatCacheDir(dir string) *Builder {
	b.formatDir = dir
	return b
}

// WithMetrics instruments every provider in the stack.
func (b *Builder) WithMetrics(m *resolver.Metrics) *Builder {
	b.metrics = m
	return b
}

// Build assembles the setup. Provider order: genuine stdout (when
// enabled), the writable first search path (when enabled), the memory
// sink, the remaining search paths in the order given, then the bundle.
func (b *Builder) Build(ctx context.Context) (*Setup, error) {
	s := &Setup{Memory: backends.NewMemory(b.logger)}

	var providers []resolver.Provider
	add := func(name string, p resolver.Provider) {
		if b.metrics != nil {
			p = resolver.Instrument(name, p, b.metrics)
		}
		providers = append(providers, p)
	}

	if b.genuineStdout {
		add("stdout", backends.NewGenuineStdout())
	}

	// A writable first search path must sit ahead of the memory sink,
	// otherwise memory claims every named output before the
	// filesystem is asked.
	searchPaths := b.searchPaths
	if b.writableFS && len(searchPaths) > 0 {
		add(fmt.Sprintf("filesystem:%s", searchPaths[0]),
			backends.NewWritableFilesystem(searchPaths[0], b.logger))
		searchPaths = searchPaths[1:]
	}

	add("memory", s.Memory)

	for _, dir := range searchPaths {
		add(fmt.Sprintf("filesystem:%s", dir), backends.NewFilesystem(dir, b.logger))
	}

	bundle := b.bundle
	if bundle == nil && b.bundlePath != "" {
		var err error
		bundle, err = openBundle(b.bundlePath, b.logger)
		if err != nil {
			return nil, err
		}
	}
	if bundle != nil {
		s.Bundle = bundle
		if c, ok := bundle.(io.Closer); ok {
			s.closers = append(s.closers, c)
		}
		add("bundle", bundle)
	}

	if b.formatDir != "" {
		if s.Bundle == nil {
			return nil, fmt.Errorf("format cache requires a bundle")
		}
		digest, err := s.Bundle.GetDigest(ctx)
		if err != nil {
			return nil, fmt.Errorf("format cache digest: %w", err)
		}
		s.Formats, err = formats.NewCache(b.formatDir, digest, b.logger)
		if err != nil {
			return nil, err
		}
	}

	s.Stack = resolver.NewStack(b.logger, providers...)
	return s, nil
}

func openBundle(path string, logger *zap.Logger) (resolver.Bundle, error) {
	if strings.HasSuffix(path, ".zip") {
		return backends.OpenZipBundle(path, logger)
	}
	return backends.NewDirBundle(path, logger), nil
}
