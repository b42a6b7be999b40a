package resolver

import "strings"

// TryNormalize canonicalizes a slash-separated document path without
// touching the filesystem: redundant separators and "." segments are
// dropped and ".." segments are resolved lexically. Whitespace inside
// segments is preserved byte for byte. The empty string normalizes to
// itself.
//
// Results look like
//
//	path/to/my/file.txt
//	../../path/to/parent/dir/file.txt
//	/absolute/path/to/file.txt
//
// The second return is false when the path tries to ascend above an
// absolute root, the one case with no canonical form. Leading ".."
// segments on a relative path are kept literally instead.
func TryNormalize(path string) (string, bool) {
	if path == "" {
		return "", true
	}

	var kept []string
	parentLevel := 0
	hasRoot := false

	for i, seg := range strings.Split(path, "/") {
		switch {
		case seg == "" && i == 0:
			hasRoot = true
			kept = append(kept, "")
		case seg == "" || seg == ".":
			// redundant separator or no-op segment
		case seg == "..":
			if n := len(kept); n > 0 {
				if kept[n-1] == "" {
					// ascending above the root
					return "", false
				}
				kept = kept[:n-1]
			} else {
				parentLevel++
			}
		default:
			kept = append(kept, seg)
		}
	}

	parts := make([]string, 0, parentLevel+len(kept))
	for i := 0; i < parentLevel; i++ {
		parts = append(parts, "..")
	}
	parts = append(parts, kept...)
	joined := strings.Join(parts, "/")

	if joined == "" {
		if hasRoot {
			return "/", true
		}
		return ".", true
	}
	return joined, true
}

// Normalize canonicalizes a path if possible and otherwise returns the
// original string unchanged. Normalization failure is deliberately not an
// error: the backend receiving the raw string decides whether to accept
// it.
func Normalize(path string) string {
	if n, ok := TryNormalize(path); ok {
		return n
	}
	return path
}
