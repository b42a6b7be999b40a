package backends

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/InkForge/inkforge/internal/resolver"
	"go.uber.org/zap"
)

// Filesystem serves document names out of a directory tree. Names are
// normalized, converted from slash form to the host separator, and joined
// under the root; absolute names bypass the root. Missing files and
// directories answer ErrNotAvailable so the stack can keep searching.
type Filesystem struct {
	root          string
	writesAllowed bool
	logger        *zap.Logger
}

// NewFilesystem creates a read-only filesystem backend rooted at root.
func NewFilesystem(root string, logger *zap.Logger) *Filesystem {
	return &Filesystem{root: root, logger: logger}
}

// NewWritableFilesystem creates a filesystem backend that also accepts
// output opens, creating files (and parent directories) under root.
func NewWritableFilesystem(root string, logger *zap.Logger) *Filesystem {
	return &Filesystem{root: root, writesAllowed: true, logger: logger}
}

// hostPath translates a document name into a host filesystem path.
func (f *Filesystem) hostPath(name string) string {
	name = resolver.Normalize(name)
	p := filepath.FromSlash(name)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(f.root, p)
}

// InputOpenName opens a file under the root for reading.
func (f *Filesystem) InputOpenName(ctx context.Context, name string) (*resolver.InputHandle, error) {
	path := f.hostPath(name)

	f.logger.Debug("filesystem input open",
		zap.String("name", name),
		zap.String("path", path))

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, resolver.ErrNotAvailable
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		// A directory is not an openable document.
		_ = file.Close()
		return nil, resolver.ErrNotAvailable
	}

	return resolver.NewInputHandle(name, file, resolver.OriginFilesystem), nil
}

// OutputOpenName creates a file under the root for writing, if writes are
// enabled for this backend.
func (f *Filesystem) OutputOpenName(ctx context.Context, name string) (*resolver.OutputHandle, error) {
	if !f.writesAllowed {
		return nil, resolver.ErrNotAvailable
	}

	path := f.hostPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("create parent directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	f.logger.Debug("filesystem output open",
		zap.String("name", name),
		zap.String("path", path))

	return resolver.NewOutputHandle(name, file), nil
}

// OutputOpenStdout is not a filesystem concern.
func (f *Filesystem) OutputOpenStdout(ctx context.Context) (*resolver.OutputHandle, error) {
	return nil, resolver.ErrNotAvailable
}
