package util

import (
	"github.com/OneOfOne/xxhash"
)

// HashCode returns the xxhash64 digest of key.
func HashCode(key []byte) uint64 {
	h := xxhash.New64()
	h.Write(key)
	return h.Sum64()
}
