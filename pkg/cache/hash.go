package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a "namespace:digest" cache key from the given parts. The
// parts are JSON-encoded before hashing so composite queries (geometry hash
// plus placement mode, say) cannot collide by concatenation.
func hashKey(namespace string, parts ...any) string {
	encoded, _ := json.Marshal(parts)
	return namespace + ":" + Hash(encoded)
}

// Hash returns the hex SHA-256 digest of data. The full 256 bits are kept;
// truncated digests would make silent layout mix-ups possible.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
