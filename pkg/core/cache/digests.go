package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// DigestCache remembers the content digest last seen per document so that
// rewrites with identical content can be skipped
type DigestCache struct {
	cache *Cache[string]
}

// NewDigestCache creates a digest cache holding up to maxItems documents.
// Digests do not expire.
func NewDigestCache(maxItems int) *DigestCache {
	return &DigestCache{
		cache: New[string](Config{MaxItems: maxItems, TTL: -1}),
	}
}

// Digest returns the hex SHA-256 of data
func Digest(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Changed reports whether data differs from the content last recorded for
// name, and records it. The first call for a name always reports true.
func (d *DigestCache) Changed(name string, data []byte) bool {
	digest := Digest(data)
	if last, ok := d.cache.Get(name); ok && last == digest {
		return false
	}
	d.cache.Set(name, digest)
	return true
}

// Forget drops the recorded digest for name
func (d *DigestCache) Forget(name string) {
	d.cache.Delete(name)
}

// Stats returns cache statistics
func (d *DigestCache) Stats() map[string]interface{} {
	hits, misses, rate := d.cache.Stats()
	return map[string]interface{}{
		"documents": d.cache.Size(),
		"hits":      hits,
		"misses":    misses,
		"hit_rate":  rate,
	}
}
