package normalize

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// DedupKey derives the stable identity of a listing from its source URL.
// The same URL always yields the same key across runs and restarts, which
// is what makes repeated crawls land on the same document.
func DedupKey(sourceURL string) string {
	canonical := strings.TrimSpace(strings.ToLower(sourceURL))
	canonical = strings.TrimSuffix(canonical, "/")
	hash := sha256.Sum256([]byte(canonical))
	return fmt.Sprintf("%x", hash)
}

// KeyPrefix is the shortened form of a dedup key used for image directory
// names. 16 hex chars keep paths readable and are still unique in practice.
func KeyPrefix(key string) string {
	if len(key) <= 16 {
		return key
	}
	return key[:16]
}
