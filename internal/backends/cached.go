package backends

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/InkForge/inkforge/internal/resolver"
	"github.com/golang/snappy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fetcher is the transport side of a cached bundle: it retrieves the
// bundle digest and individual files from wherever the bundle actually
// lives. Transport, authentication, and retry policy all belong to the
// Fetcher implementation; FetchFile answers ErrNotAvailable for names the
// bundle does not contain.
type Fetcher interface {
	FetchDigest(ctx context.Context) (resolver.Digest, error)
	FetchFile(ctx context.Context, name string) ([]byte, error)
}

const cachedDigestFile = "digest.txt"

// CachedBundle mirrors a remote bundle into a local cache directory.
// Files are fetched at most once, stored snappy-compressed under a
// per-digest subdirectory, and served from disk afterwards. The bundle
// digest is resolved once at construction and persisted, so GetDigest
// never goes back to the fetcher.
type CachedBundle struct {
	fetcher Fetcher
	root    string
	digest  resolver.Digest
	logger  *zap.Logger
}

// NewCachedBundle opens (or initializes) the cache at root for the bundle
// behind fetcher.
func NewCachedBundle(ctx context.Context, fetcher Fetcher, root string, logger *zap.Logger) (*CachedBundle, error) {
	b := &CachedBundle{fetcher: fetcher, root: root, logger: logger}

	digestPath := filepath.Join(root, cachedDigestFile)
	if raw, err := os.ReadFile(digestPath); err == nil {
		d, err := resolver.ParseDigest(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("corrupted cached digest at %s: %w", digestPath, err)
		}
		b.digest = d
		return b, nil
	}

	d, err := fetcher.FetchDigest(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch bundle digest: %w", err)
	}
	b.digest = d

	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("create cache root: %w", err)
	}
	if err := writeAtomic(digestPath, []byte(d.String()+"\n")); err != nil {
		return nil, fmt.Errorf("persist bundle digest: %w", err)
	}

	logger.Info("initialized bundle cache",
		zap.String("root", root),
		zap.String("digest", d.String()))
	return b, nil
}

func (b *CachedBundle) cachePath(key string) string {
	return filepath.Join(b.root, "files", b.digest.String(), filepath.FromSlash(key)+".sz")
}

// InputOpenName serves a bundle file, fetching and caching it on first
// access.
func (b *CachedBundle) InputOpenName(ctx context.Context, name string) (*resolver.InputHandle, error) {
	key := strings.TrimPrefix(resolver.Normalize(name), "/")
	path := b.cachePath(key)

	if compressed, err := os.ReadFile(path); err == nil {
		data, err := snappy.Decode(nil, compressed)
		if err != nil {
			return nil, fmt.Errorf("corrupted cache entry %s: %w", path, err)
		}
		b.logger.Debug("bundle cache hit", zap.String("name", key))
		return resolver.NewInputHandle(name, io.NopCloser(bytes.NewReader(data)), resolver.OriginOther), nil
	}

	data, err := b.fetcher.FetchFile(ctx, key)
	if err != nil {
		// ErrNotAvailable passes through so the stack keeps searching.
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	if err := writeAtomic(path, snappy.Encode(nil, data)); err != nil {
		return nil, fmt.Errorf("store cache entry: %w", err)
	}

	b.logger.Debug("bundle cache fill",
		zap.String("name", key),
		zap.Int("bytes", len(data)))
	return resolver.NewInputHandle(name, io.NopCloser(bytes.NewReader(data)), resolver.OriginOther), nil
}

// OutputOpenName never matches; bundles are read-only.
func (b *CachedBundle) OutputOpenName(ctx context.Context, name string) (*resolver.OutputHandle, error) {
	return nil, resolver.ErrNotAvailable
}

// OutputOpenStdout never matches.
func (b *CachedBundle) OutputOpenStdout(ctx context.Context) (*resolver.OutputHandle, error) {
	return nil, resolver.ErrNotAvailable
}

// GetDigest answers from the persisted record instead of the default
// manifest lookup, so validation never costs a fetch.
func (b *CachedBundle) GetDigest(ctx context.Context) (resolver.Digest, error) {
	return b.digest, nil
}

// writeAtomic writes data to a unique temp file in path's directory and
// renames it into place, so readers never observe a partial file.
func writeAtomic(path string, data []byte) error {
	tmp := filepath.Join(filepath.Dir(path), "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0640); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
