package backends

import (
	"bytes"
	"context"
	"io"

	"github.com/InkForge/inkforge/internal/resolver"
	"go.uber.org/zap"
)

// StdoutKey is the map key the memory backend files standard output
// under. The empty string can never collide with a document name.
const StdoutKey = ""

// Memory keeps a complete set of files in RAM. It accepts any output
// name, which makes it the usual terminal sink in a stack: engine outputs
// land here and the caller collects them afterwards. An output becomes
// visible to readers when its handle is closed.
type Memory struct {
	files  map[string][]byte
	logger *zap.Logger
}

// NewMemory creates an empty in-memory backend.
func NewMemory(logger *zap.Logger) *Memory {
	return &Memory{
		files:  make(map[string][]byte),
		logger: logger,
	}
}

// SetFile seeds or replaces a file.
func (m *Memory) SetFile(name string, data []byte) {
	m.files[resolver.Normalize(name)] = data
}

// GetFile returns a stored file's contents.
func (m *Memory) GetFile(name string) ([]byte, bool) {
	data, ok := m.files[resolver.Normalize(name)]
	return data, ok
}

// Stdout returns whatever has been written through OutputOpenStdout.
func (m *Memory) Stdout() ([]byte, bool) {
	data, ok := m.files[StdoutKey]
	return data, ok
}

// Files returns the backing map. The caller must not retain it across
// further opens.
func (m *Memory) Files() map[string][]byte {
	return m.files
}

// InputOpenName serves a stored file for reading.
func (m *Memory) InputOpenName(ctx context.Context, name string) (*resolver.InputHandle, error) {
	name = resolver.Normalize(name)
	data, ok := m.files[name]
	if !ok {
		return nil, resolver.ErrNotAvailable
	}
	r := io.NopCloser(bytes.NewReader(data))
	return resolver.NewInputHandle(name, r, resolver.OriginOther), nil
}

// OutputOpenName opens a buffer that commits into the file map on close.
func (m *Memory) OutputOpenName(ctx context.Context, name string) (*resolver.OutputHandle, error) {
	name = resolver.Normalize(name)
	m.logger.Debug("memory output open", zap.String("name", name))
	return resolver.NewOutputHandle(name, &memoryWriter{backend: m, key: name}), nil
}

// OutputOpenStdout opens the in-memory stdout buffer.
func (m *Memory) OutputOpenStdout(ctx context.Context) (*resolver.OutputHandle, error) {
	return resolver.NewOutputHandle(StdoutKey, &memoryWriter{backend: m, key: StdoutKey}), nil
}

type memoryWriter struct {
	backend *Memory
	key     string
	buf     bytes.Buffer
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	w.backend.files[w.key] = w.buf.Bytes()
	return nil
}
