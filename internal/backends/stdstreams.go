package backends

import (
	"context"
	"io"
	"os"

	"github.com/InkForge/inkforge/internal/resolver"
)

// GenuineStdout hands out the real process stdout for the standard output
// sink and nothing else. Closing the handle does not close os.Stdout.
type GenuineStdout struct{}

// NewGenuineStdout creates the stdout-only backend.
func NewGenuineStdout() *GenuineStdout {
	return &GenuineStdout{}
}

// InputOpenName never matches; stdout is write-only.
func (g *GenuineStdout) InputOpenName(ctx context.Context, name string) (*resolver.InputHandle, error) {
	return nil, resolver.ErrNotAvailable
}

// OutputOpenName never matches; this backend serves only the stdout sink.
func (g *GenuineStdout) OutputOpenName(ctx context.Context, name string) (*resolver.OutputHandle, error) {
	return nil, resolver.ErrNotAvailable
}

// OutputOpenStdout opens the process standard output.
func (g *GenuineStdout) OutputOpenStdout(ctx context.Context) (*resolver.OutputHandle, error) {
	return resolver.NewOutputHandle(StdoutKey, nopWriteCloser{os.Stdout}), nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
