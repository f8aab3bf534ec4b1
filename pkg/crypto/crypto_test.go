package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeHMAC256(t *testing.T) {
	t.Run("matches known HMAC-SHA256 vector", func(t *testing.T) {
		// RFC-style reference vector
		signature := ComputeHMAC256([]byte("The quick brown fox jumps over the lazy dog"), "key")
		assert.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", signature)
	})

	t.Run("produces lowercase hex of 32 bytes", func(t *testing.T) {
		signature := ComputeHMAC256([]byte("1700000000sometoken"), "whsec_test")
		assert.Len(t, signature, 64)
		assert.Regexp(t, "^[0-9a-f]+$", signature)
	})

	t.Run("different keys produce different signatures", func(t *testing.T) {
		payload := []byte("1700000000sometoken")
		assert.NotEqual(t, ComputeHMAC256(payload, "key-a"), ComputeHMAC256(payload, "key-b"))
	})
}

func TestVerifyHMAC256(t *testing.T) {
	payload := []byte("1700000000sometoken")
	key := "whsec_test"

	t.Run("accepts matching signature", func(t *testing.T) {
		signature := ComputeHMAC256(payload, key)
		assert.True(t, VerifyHMAC256(payload, key, signature))
	})

	t.Run("rejects signature computed with another key", func(t *testing.T) {
		signature := ComputeHMAC256(payload, "other-key")
		assert.False(t, VerifyHMAC256(payload, key, signature))
	})

	t.Run("rejects tampered payload", func(t *testing.T) {
		signature := ComputeHMAC256(payload, key)
		assert.False(t, VerifyHMAC256([]byte("1700000001sometoken"), key, signature))
	})

	t.Run("rejects malformed signature", func(t *testing.T) {
		assert.False(t, VerifyHMAC256(payload, key, "not-a-hex-signature"))
	})
}
