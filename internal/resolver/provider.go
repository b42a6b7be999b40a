package resolver

import (
	"context"
	"fmt"
	"io"
)

// Provider is the capability contract every storage backend implements.
// Names are slash-separated document paths; translating them to host
// paths, archive entry names, or map keys is the backend's business.
//
// Absence must be reported as ErrNotAvailable, never as a fatal error —
// the stack's fallback search depends on that distinction. Fatal errors
// are reserved for conditions that make the backend itself unusable, such
// as a corrupted archive.
type Provider interface {
	// InputOpenName opens the named resource for reading.
	InputOpenName(ctx context.Context, name string) (*InputHandle, error)

	// OutputOpenName opens the named resource for writing. Backends
	// that do not accept writes for the name answer ErrNotAvailable.
	OutputOpenName(ctx context.Context, name string) (*OutputHandle, error)

	// OutputOpenStdout opens the backend's standard output sink.
	OutputOpenStdout(ctx context.Context) (*OutputHandle, error)
}

// Bundle is a Provider that can vouch for its exact contents with a
// digest, letting the format cache validate derived artifacts without a
// rescan.
type Bundle interface {
	Provider

	// GetDigest returns the content digest of the whole bundle.
	GetDigest(ctx context.Context) (Digest, error)
}

// ReadBundleDigest is the default GetDigest implementation: it opens a
// manifest named SHA256SUM through the provider itself and decodes the
// first 64 bytes as a hex digest. Backends that already track a content
// hash skip this and answer from their own records.
func ReadBundleDigest(ctx context.Context, p Provider) (Digest, error) {
	h, err := p.InputOpenName(ctx, DigestName)
	if IsNotAvailable(err) {
		return Digest{}, fmt.Errorf("bundle does not provide needed %s file", DigestName)
	}
	if err != nil {
		return Digest{}, err
	}
	defer func() { _ = h.Close() }()

	raw, err := io.ReadAll(io.LimitReader(h, hexDigestLen))
	if err != nil {
		return Digest{}, fmt.Errorf("read %s: %w", DigestName, err)
	}

	d, err := ParseDigest(string(raw))
	if err != nil {
		return Digest{}, fmt.Errorf("corrupted SHA256 digest data: %w", err)
	}
	return d, nil
}
