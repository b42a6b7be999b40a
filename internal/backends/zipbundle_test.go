package backends

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/InkForge/inkforge/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const zipTestDigest = "a665a45920422f9d417e4867efdc4fb8a04a1f3fff1fa07e998e86f7f7a27ae3"

func writeTestZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.zip")

	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestZipBundle(t *testing.T) {
	ctx := context.Background()
	path := writeTestZip(t, map[string]string{
		"plain.tex":         "\\def\\x{1}",
		"fonts/cmr10.tfm":   "binaryish",
		resolver.DigestName: zipTestDigest + "\n",
	})

	z, err := OpenZipBundle(path, zap.NewNop())
	require.NoError(t, err)
	defer func() { require.NoError(t, z.Close()) }()

	t.Run("OpenEntry", func(t *testing.T) {
		h, err := z.InputOpenName(ctx, "plain.tex")
		require.NoError(t, err)
		assert.Equal(t, resolver.OriginOther, h.Origin())
		data, err := io.ReadAll(h)
		require.NoError(t, err)
		assert.Equal(t, "\\def\\x{1}", string(data))
		require.NoError(t, h.Close())
	})

	t.Run("NestedEntryNormalized", func(t *testing.T) {
		h, err := z.InputOpenName(ctx, "./fonts//cmr10.tfm")
		require.NoError(t, err)
		require.NoError(t, h.Close())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := z.InputOpenName(ctx, "missing.sty")
		assert.True(t, resolver.IsNotAvailable(err))
	})

	t.Run("ReadOnly", func(t *testing.T) {
		_, err := z.OutputOpenName(ctx, "anything")
		assert.True(t, resolver.IsNotAvailable(err))
		_, err = z.OutputOpenStdout(ctx)
		assert.True(t, resolver.IsNotAvailable(err))
	})

	t.Run("Digest", func(t *testing.T) {
		d, err := z.GetDigest(ctx)
		require.NoError(t, err)
		assert.Equal(t, zipTestDigest, d.String())
	})
}

func TestZipBundle_NoManifest(t *testing.T) {
	path := writeTestZip(t, map[string]string{"plain.tex": "x"})

	z, err := OpenZipBundle(path, zap.NewNop())
	require.NoError(t, err)
	defer func() { require.NoError(t, z.Close()) }()

	_, err = z.GetDigest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not provide")
}

func TestOpenZipBundle_BadArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.zip")
	require.NoError(t, os.WriteFile(path, []byte("this is not a zip"), 0640))

	_, err := OpenZipBundle(path, zap.NewNop())
	assert.Error(t, err)
}
