package backends

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/InkForge/inkforge/internal/resolver"
	"github.com/klauspost/compress/flate"
	"go.uber.org/zap"
)

// ZipBundle serves a bundle packed as a zip archive. It is read-only;
// entries are looked up by normalized name and streamed straight out of
// the archive. The bundle digest comes from the SHA256SUM manifest entry.
type ZipBundle struct {
	path   string
	zr     *zip.ReadCloser
	logger *zap.Logger
}

// OpenZipBundle opens the archive at path as a bundle.
func OpenZipBundle(path string, logger *zap.Logger) (*ZipBundle, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip bundle %s: %w", path, err)
	}
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})
	return &ZipBundle{path: path, zr: zr, logger: logger}, nil
}

// Close releases the underlying archive. Handles opened from the bundle
// must be closed first.
func (z *ZipBundle) Close() error {
	return z.zr.Close()
}

// InputOpenName opens an archive entry for reading.
func (z *ZipBundle) InputOpenName(ctx context.Context, name string) (*resolver.InputHandle, error) {
	key := strings.TrimPrefix(resolver.Normalize(name), "/")

	for _, f := range z.zr.File {
		if f.Name != key {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open zip entry %s: %w", key, err)
		}
		z.logger.Debug("zip bundle input open",
			zap.String("bundle", z.path),
			zap.String("entry", key))
		return resolver.NewInputHandle(name, rc, resolver.OriginOther), nil
	}
	return nil, resolver.ErrNotAvailable
}

// OutputOpenName never matches; archives are read-only.
func (z *ZipBundle) OutputOpenName(ctx context.Context, name string) (*resolver.OutputHandle, error) {
	return nil, resolver.ErrNotAvailable
}

// OutputOpenStdout never matches.
func (z *ZipBundle) OutputOpenStdout(ctx context.Context) (*resolver.OutputHandle, error) {
	return nil, resolver.ErrNotAvailable
}

// GetDigest reads the digest from the bundled SHA256SUM manifest.
func (z *ZipBundle) GetDigest(ctx context.Context) (resolver.Digest, error) {
	return resolver.ReadBundleDigest(ctx, z)
}
