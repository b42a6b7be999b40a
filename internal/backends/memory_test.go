package backends

import (
	"context"
	"io"
	"testing"

	"github.com/InkForge/inkforge/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemory_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(zap.NewNop())

	h, err := m.OutputOpenName(ctx, "doc.log")
	require.NoError(t, err)
	_, err = h.Write([]byte("first"))
	require.NoError(t, err)
	_, err = h.Write([]byte(" second"))
	require.NoError(t, err)

	// Not visible until the handle is closed.
	_, err = m.InputOpenName(ctx, "doc.log")
	assert.True(t, resolver.IsNotAvailable(err))

	require.NoError(t, h.Close())

	in, err := m.InputOpenName(ctx, "doc.log")
	require.NoError(t, err)
	assert.Equal(t, resolver.OriginOther, in.Origin())
	data, err := io.ReadAll(in)
	require.NoError(t, err)
	assert.Equal(t, "first second", string(data))
	require.NoError(t, in.Close())
}

func TestMemory_Stdout(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(zap.NewNop())

	h, err := m.OutputOpenStdout(ctx)
	require.NoError(t, err)
	_, err = h.Write([]byte("This is InkForge\n"))
	require.NoError(t, err)
	require.NoError(t, h.Close())

	out, ok := m.Stdout()
	require.True(t, ok)
	assert.Equal(t, "This is InkForge\n", string(out))
}

func TestMemory_SeededFiles(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(zap.NewNop())
	m.SetFile("preloaded.tex", []byte("content"))

	t.Run("NormalizedLookup", func(t *testing.T) {
		h, err := m.InputOpenName(ctx, "./preloaded.tex")
		require.NoError(t, err)
		data, err := io.ReadAll(h)
		require.NoError(t, err)
		assert.Equal(t, "content", string(data))
		require.NoError(t, h.Close())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := m.InputOpenName(ctx, "absent.tex")
		assert.True(t, resolver.IsNotAvailable(err))
	})

	t.Run("GetFile", func(t *testing.T) {
		data, ok := m.GetFile("preloaded.tex")
		require.True(t, ok)
		assert.Equal(t, "content", string(data))
	})
}
