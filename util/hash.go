package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentKey derives a stable cache key from an article id and its
// normalized text.
func ContentKey(prefix, articleID, content string) string {
	h := sha256.New()
	h.Write([]byte(articleID))
	h.Write([]byte{0})
	h.Write([]byte(content))
	return prefix + hex.EncodeToString(h.Sum(nil))
}
