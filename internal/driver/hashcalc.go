package driver

import (
	"crypto/sha256"
	"encoding/binary"

	"declfix/internal/version"
)

// Digest is a SHA-256 value.
type Digest [32]byte

// cacheKey: H(schema || tool version || config fingerprint || content hash).
func cacheKey(content [32]byte, fingerprint string) Digest {
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	_, _ = h.Write(schema[:])
	_, _ = h.Write([]byte(version.Version))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(fingerprint))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(content[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
