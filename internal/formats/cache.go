// Package formats caches precompiled format files — the engine's
// expensive derived preprocessing artifacts — keyed by artifact name and
// bundle digest. A cached format is only valid for the exact bundle
// contents it was built from, which is what the digest key enforces.
package formats

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/InkForge/inkforge/internal/resolver"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"
)

// Cache stores format files gzip-compressed in a directory. It implements
// the provider contract so the engine reads cached formats and writes
// rebuilt ones through the same open calls it uses for everything else.
type Cache struct {
	root   string
	digest resolver.Digest
	logger *zap.Logger
}

// NewCache creates a format cache at root, scoped to the bundle with the
// given digest.
func NewCache(root string, digest resolver.Digest, logger *zap.Logger) (*Cache, error) {
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("create format cache root: %w", err)
	}
	return &Cache{root: root, digest: digest, logger: logger}, nil
}

func (c *Cache) path(name string) string {
	return filepath.Join(c.root, fmt.Sprintf("%s-%s.fmt.gz", name, c.digest))
}

// InputOpenName serves a cached format; a miss answers ErrNotAvailable so
// the engine knows to rebuild.
func (c *Cache) InputOpenName(ctx context.Context, name string) (*resolver.InputHandle, error) {
	path := c.path(resolver.Normalize(name))

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, resolver.ErrNotAvailable
		}
		return nil, fmt.Errorf("open cached format %s: %w", path, err)
	}

	zr, err := gzip.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("corrupted cached format %s: %w", path, err)
	}

	c.logger.Debug("format cache hit", zap.String("name", name))
	return resolver.NewInputHandle(name, &gzipFileReader{zr: zr, f: f}, resolver.OriginOther), nil
}

// OutputOpenName stores a freshly built format. The data is compressed
// into a temp file and renamed into place on close, so a crashed build
// never leaves a half-written format behind.
func (c *Cache) OutputOpenName(ctx context.Context, name string) (*resolver.OutputHandle, error) {
	final := c.path(resolver.Normalize(name))
	tmp := filepath.Join(c.root, "."+uuid.NewString()+".tmp")

	f, err := os.Create(tmp)
	if err != nil {
		return nil, fmt.Errorf("create format temp file: %w", err)
	}

	c.logger.Debug("format cache write", zap.String("name", name))
	return resolver.NewOutputHandle(name, &formatWriter{
		zw:    gzip.NewWriter(f),
		f:     f,
		tmp:   tmp,
		final: final,
	}), nil
}

// OutputOpenStdout never matches.
func (c *Cache) OutputOpenStdout(ctx context.Context) (*resolver.OutputHandle, error) {
	return nil, resolver.ErrNotAvailable
}

type gzipFileReader struct {
	zr *gzip.Reader
	f  *os.File
}

func (r *gzipFileReader) Read(p []byte) (int, error) { return r.zr.Read(p) }

func (r *gzipFileReader) Close() error {
	zerr := r.zr.Close()
	ferr := r.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

type formatWriter struct {
	zw    *gzip.Writer
	f     *os.File
	tmp   string
	final string
}

func (w *formatWriter) Write(p []byte) (int, error) { return w.zw.Write(p) }

func (w *formatWriter) Close() error {
	if err := w.zw.Close(); err != nil {
		_ = w.f.Close()
		_ = os.Remove(w.tmp)
		return err
	}
	if err := w.f.Close(); err != nil {
		_ = os.Remove(w.tmp)
		return err
	}
	if err := os.Rename(w.tmp, w.final); err != nil {
		_ = os.Remove(w.tmp)
		return err
	}
	return nil
}

var _ io.ReadCloser = (*gzipFileReader)(nil)
