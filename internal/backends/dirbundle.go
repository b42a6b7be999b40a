package backends

import (
	"context"

	"github.com/InkForge/inkforge/internal/resolver"
	"go.uber.org/zap"
)

// DirBundle treats an unpacked directory tree as a bundle: reads go
// through a read-only filesystem backend and the digest comes from the
// SHA256SUM manifest at the top of the tree. Useful when working on
// bundle contents without repacking the archive.
type DirBundle struct {
	fs *Filesystem
}

// NewDirBundle creates a bundle over the directory at root.
func NewDirBundle(root string, logger *zap.Logger) *DirBundle {
	return &DirBundle{fs: NewFilesystem(root, logger)}
}

// InputOpenName opens a file from the bundle directory. The origin is
// reported as Other: bundle contents are addressed by bundle semantics,
// not as user files.
func (d *DirBundle) InputOpenName(ctx context.Context, name string) (*resolver.InputHandle, error) {
	h, err := d.fs.InputOpenName(ctx, name)
	if err != nil {
		return nil, err
	}
	return resolver.NewInputHandle(h.Name(), h, resolver.OriginOther), nil
}

// OutputOpenName never matches; bundles are read-only.
func (d *DirBundle) OutputOpenName(ctx context.Context, name string) (*resolver.OutputHandle, error) {
	return nil, resolver.ErrNotAvailable
}

// OutputOpenStdout never matches.
func (d *DirBundle) OutputOpenStdout(ctx context.Context) (*resolver.OutputHandle, error) {
	return nil, resolver.ErrNotAvailable
}

// GetDigest reads the digest from the directory's SHA256SUM manifest.
func (d *DirBundle) GetDigest(ctx context.Context) (resolver.Digest, error) {
	return resolver.ReadBundleDigest(ctx, d)
}
