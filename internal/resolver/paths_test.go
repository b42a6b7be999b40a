package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryNormalize_EdgeCases(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/", "/"},
		{"//", "/"},
		{".", "."},
		{"./", "."},
		{"..", ".."},
		{"././/./", "."},
		{"/././/.", "/"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := TryNormalize(tc.in)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTryNormalize_Paths(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"my/path/file.txt", "my/path/file.txt"},
		{"/my/path/file.txt", "/my/path/file.txt"},
		{"./my///path/././file.txt", "my/path/file.txt"},
		{"./../my/../../../file.txt", "../../../file.txt"},
		{"././my//../path/../here/file.txt", "here/file.txt"},
		{"./my/.././/path/../../here//file.txt", "../here/file.txt"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := TryNormalize(tc.in)
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTryNormalize_PreservesWhitespace(t *testing.T) {
	got, ok := TryNormalize("  my/pa  th/file .txt ")
	require.True(t, ok)
	assert.Equal(t, "  my/pa  th/file .txt ", got)
}

func TestTryNormalize_AscendingPastRootFails(t *testing.T) {
	for _, in := range []string{
		"/my/../../file.txt",
		"/my/./.././path//../../file.txt",
		"/..",
	} {
		t.Run(in, func(t *testing.T) {
			_, ok := TryNormalize(in)
			assert.False(t, ok)
		})
	}
}

func TestTryNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"/",
		".",
		"..",
		"my/path/file.txt",
		"/absolute/path",
		"./../my/../../../file.txt",
		"  spaced / segments ",
	}
	for _, in := range inputs {
		first, ok := TryNormalize(in)
		require.True(t, ok, "input %q", in)

		second, ok := TryNormalize(first)
		require.True(t, ok, "normalized %q", first)
		assert.Equal(t, first, second, "normalization of %q not a fixed point", in)
	}
}

func TestTryNormalize_AbsoluteNeverKeepsParentSegments(t *testing.T) {
	for _, in := range []string{
		"/a/b/../c",
		"/a/../b",
		"//x/./y/..",
	} {
		got, ok := TryNormalize(in)
		require.True(t, ok)
		assert.True(t, got == "/" || got[0] == '/')
		assert.NotContains(t, got, "..")
	}
}

func TestNormalize_FailsOpenToOriginal(t *testing.T) {
	// A path that ascends past the root has no canonical form; the
	// original string is handed through for the backend to judge.
	original := "/my/../../file.txt"
	assert.Equal(t, original, Normalize(original))

	// Normalizable paths come back canonical.
	assert.Equal(t, "here/file.txt", Normalize("././my//../path/../here/file.txt"))
}
