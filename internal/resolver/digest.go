package resolver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DigestName is the manifest file a bundle stores its content digest in.
const DigestName = "SHA256SUM"

// hexDigestLen is the length of a hex-encoded SHA-256 digest.
const hexDigestLen = 2 * sha256.Size

// Digest is a 256-bit fingerprint of a bundle's exact contents. It is
// supplied by the bundle producer and trusted as-is; this layer never
// recomputes it from file contents.
type Digest [sha256.Size]byte

// ParseDigest decodes a 64-character hex string into a Digest.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	if len(s) != hexDigestLen {
		return d, fmt.Errorf("digest must be %d hex characters, got %d", hexDigestLen, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("decode digest: %w", err)
	}
	copy(d[:], raw)
	return d, nil
}

// String returns the lowercase hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
