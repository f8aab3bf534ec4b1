package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
)

// ComputeHMAC256 returns the hex-encoded HMAC-SHA256 of toSign under secretKey.
func ComputeHMAC256(toSign []byte, secretKey string) string {
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write(toSign)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// VerifyHMAC256 compares the hex-encoded HMAC-SHA256 of toSign under secretKey
// against providedSignature in constant time. The comparison must never
// short-circuit on the first mismatching byte, so it goes through
// subtle.ConstantTimeCompare rather than ==.
func VerifyHMAC256(toSign []byte, secretKey string, providedSignature string) bool {
	expected := ComputeHMAC256(toSign, secretKey)
	if len(expected) != len(providedSignature) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(providedSignature)) == 1
}
