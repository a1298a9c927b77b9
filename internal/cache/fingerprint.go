package cache

import (
	"encoding/hex"
	"strconv"

	"github.com/zeebo/blake3"
)

// Fingerprint computes a deterministic digest over an ordered tuple of
// strings. Each part is length-prefixed before hashing so that
// ("ab","c") and ("a","bc") produce different keys.
func Fingerprint(parts ...string) string {
	hasher := blake3.New()
	for _, part := range parts {
		hasher.Write([]byte(strconv.Itoa(len(part))))
		hasher.Write([]byte(":"))
		hasher.Write([]byte(part))
	}
	sum := hasher.Sum(nil)
	return hex.EncodeToString(sum[:16])
}

// UnitKey derives the cache key for a single translated text unit.
func UnitKey(text, sourceLang, targetLang, model string) string {
	return Fingerprint("unit", text, sourceLang, targetLang, model)
}

// RequestKey derives the cache key for a whole provider request.
func RequestKey(instruction, payload, model string) string {
	return Fingerprint("request", instruction, payload, model)
}
