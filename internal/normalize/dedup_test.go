package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupKey(t *testing.T) {
	base := DedupKey("https://example.com/listing/42")

	assert.Len(t, base, 64)

	// Case and trailing slash differences yield the same identity.
	assert.Equal(t, base, DedupKey("https://Example.com/Listing/42"))
	assert.Equal(t, base, DedupKey("https://example.com/listing/42/"))
	assert.Equal(t, base, DedupKey("  https://example.com/listing/42  "))

	assert.NotEqual(t, base, DedupKey("https://example.com/listing/43"))
}

func TestKeyPrefix(t *testing.T) {
	key := DedupKey("https://example.com/listing/42")

	assert.Len(t, KeyPrefix(key), 16)
	assert.Equal(t, key[:16], KeyPrefix(key))
	assert.Equal(t, "short", KeyPrefix("short"))
}
