package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the SHA-256 hex digest of data.
// Used to derive filesystem-safe cache file names and stable cache keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
