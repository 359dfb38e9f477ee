// Package fingerprint derives the content-address used by the explanation
// cache: identical text modulo leading/trailing whitespace and letter case
// always lands in the same cache slot.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns the SHA-256 digest of the normalized text as a
// 64-character hex string.
func Fingerprint(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
