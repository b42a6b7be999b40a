package resolver

import (
	"errors"
	"io"
)

// ErrNotAvailable signals that a backend does not have the requested name.
// It is the soft outcome of an open attempt: the stack responds by moving
// on to the next backend, and only a genuine I/O failure (any other error)
// aborts the request. Backends must return it, possibly wrapped, for plain
// absence and reserve other errors for conditions that make the backend
// itself unusable.
var ErrNotAvailable = errors.New("resource not available")

// IsNotAvailable reports whether err represents the soft "backend does not
// have it" outcome rather than a fatal failure.
func IsNotAvailable(err error) bool {
	return errors.Is(err, ErrNotAvailable)
}

// InputOrigin records where an opened input came from. Downstream logic
// may branch on it, e.g. only trusting filesystem modification times.
type InputOrigin int

const (
	// OriginFilesystem marks inputs backed by a real file on disk.
	OriginFilesystem InputOrigin = iota
	// OriginOther marks inputs from bundles, memory, caches, and
	// anything else without meaningful filesystem metadata.
	OriginOther
)

func (o InputOrigin) String() string {
	if o == OriginFilesystem {
		return "filesystem"
	}
	return "other"
}

// InputHandle is a readable byte stream bound to a name. The caller owns
// it exclusively and must close it when done.
type InputHandle struct {
	name   string
	origin InputOrigin
	r      io.ReadCloser
}

// NewInputHandle binds a reader to a name with a provenance tag.
func NewInputHandle(name string, r io.ReadCloser, origin InputOrigin) *InputHandle {
	return &InputHandle{name: name, origin: origin, r: r}
}

// Name returns the name the handle was opened under.
func (h *InputHandle) Name() string { return h.name }

// Origin returns the provenance tag attached at open time.
func (h *InputHandle) Origin() InputOrigin { return h.origin }

func (h *InputHandle) Read(p []byte) (int, error) { return h.r.Read(p) }

func (h *InputHandle) Close() error { return h.r.Close() }

// OutputHandle is a writable byte sink bound to a name. The backend that
// produced it decides durability: a file, a memory buffer, or a discard.
type OutputHandle struct {
	name string
	w    io.WriteCloser
}

// NewOutputHandle binds a writer to a name.
func NewOutputHandle(name string, w io.WriteCloser) *OutputHandle {
	return &OutputHandle{name: name, w: w}
}

// Name returns the name the handle was opened under.
func (h *OutputHandle) Name() string { return h.name }

func (h *OutputHandle) Write(p []byte) (int, error) { return h.w.Write(p) }

func (h *OutputHandle) Close() error { return h.w.Close() }
