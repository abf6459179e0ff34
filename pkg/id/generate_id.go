package id

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/google/uuid"
	"lukechampine.com/blake3"
)

// NewID32 returns a random v4 UUID as exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

// Derive returns a deterministic 32-char hex identity for the given seeds.
// Seeds are length-prefixed so ("ab","c") and ("a","bc") never collide.
func Derive(seeds ...[]byte) string {
	h := blake3.New(32, nil)
	var n [8]byte
	for _, s := range seeds {
		binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
		_, _ = h.Write(n[:])
		_, _ = h.Write(s)
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

// Uint64Seed encodes v as 8 little-endian bytes.
func Uint64Seed(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}
