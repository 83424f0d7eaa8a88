// Package fingerprint derives stable session keys from network identity
// signals. An (ip, user-agent) pair is a best-effort identity: it is
// spoofable, shared across NATed clients, and must never be treated as a
// security boundary. It exists so returning visitors find their history
// without cookies or accounts.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// Derive maps a client IP and user-agent string to a session key. The
// function is pure: identical inputs always produce the same key, and no
// network or storage access occurs. An empty user-agent is a valid literal
// input, not an error. The output is a lowercase hex digest, compact and
// URL-safe, and not reversible to the raw inputs.
func Derive(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(ip))
	h.Write([]byte("|"))
	h.Write([]byte(userAgent))
	return hex.EncodeToString(h.Sum(nil))
}
