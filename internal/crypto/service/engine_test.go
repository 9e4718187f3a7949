package service

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	apperrors "github.com/vaultshield/vaultshield/internal/errors"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestEngineEncryptDecrypt(t *testing.T) {
	eng := NewEngine()

	t.Run("round trip", func(t *testing.T) {
		key := randomKey(t)
		nonce, err := eng.GenerateNonce()
		require.NoError(t, err)
		plaintext := []byte("sensitive data")

		ciphertext, err := eng.Encrypt(plaintext, key, nonce)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, ciphertext)

		decrypted, err := eng.Decrypt(ciphertext, key, nonce)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("zero key and zero nonce round trip", func(t *testing.T) {
		key := make([]byte, cryptoDomain.KeySize)
		nonce := make([]byte, cryptoDomain.NonceSize)

		ciphertext, err := eng.Encrypt([]byte("test message"), key, nonce)
		require.NoError(t, err)

		decrypted, err := eng.Decrypt(ciphertext, key, nonce)
		require.NoError(t, err)
		assert.Equal(t, "test message", string(decrypted))
	})

	t.Run("empty plaintext round trip", func(t *testing.T) {
		key := randomKey(t)
		nonce, err := eng.GenerateNonce()
		require.NoError(t, err)

		ciphertext, err := eng.Encrypt(nil, key, nonce)
		require.NoError(t, err)
		// Ciphertext is just the Poly1305 tag
		assert.Len(t, ciphertext, 16)

		decrypted, err := eng.Decrypt(ciphertext, key, nonce)
		require.NoError(t, err)
		assert.Empty(t, decrypted)
	})

	t.Run("wrong key fails opaquely", func(t *testing.T) {
		key1 := randomKey(t)
		key2 := randomKey(t)
		nonce, err := eng.GenerateNonce()
		require.NoError(t, err)

		ciphertext, err := eng.Encrypt([]byte("secret"), key1, nonce)
		require.NoError(t, err)

		_, err = eng.Decrypt(ciphertext, key2, nonce)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("wrong nonce fails opaquely", func(t *testing.T) {
		key := randomKey(t)
		nonce1, err := eng.GenerateNonce()
		require.NoError(t, err)
		nonce2, err := eng.GenerateNonce()
		require.NoError(t, err)

		ciphertext, err := eng.Encrypt([]byte("secret"), key, nonce1)
		require.NoError(t, err)

		_, err = eng.Decrypt(ciphertext, key, nonce2)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("tampered ciphertext detected at every bit", func(t *testing.T) {
		key := randomKey(t)
		nonce, err := eng.GenerateNonce()
		require.NoError(t, err)

		ciphertext, err := eng.Encrypt([]byte("ab"), key, nonce)
		require.NoError(t, err)

		for i := range ciphertext {
			for bit := 0; bit < 8; bit++ {
				tampered := bytes.Clone(ciphertext)
				tampered[i] ^= 1 << bit

				_, err := eng.Decrypt(tampered, key, nonce)
				assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
			}
		}
	})

	t.Run("invalid key length", func(t *testing.T) {
		nonce := make([]byte, cryptoDomain.NonceSize)

		_, err := eng.Encrypt([]byte("data"), []byte("short"), nonce)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyLength)

		_, err = eng.Decrypt([]byte("data"), []byte("short"), nonce)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeyLength)
	})

	t.Run("invalid nonce length", func(t *testing.T) {
		key := make([]byte, cryptoDomain.KeySize)

		_, err := eng.Encrypt([]byte("data"), key, []byte("short"))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidNonceLength)

		_, err = eng.Decrypt([]byte("data"), key, []byte("short"))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidNonceLength)
	})
}

func TestEngineHMAC(t *testing.T) {
	eng := NewEngine()

	t.Run("deterministic", func(t *testing.T) {
		key := randomKey(t)
		message := []byte("the message")

		tag1 := eng.HMAC(message, key)
		tag2 := eng.HMAC(message, key)
		assert.Equal(t, tag1, tag2)
		assert.Len(t, tag1, cryptoDomain.TagSize)
	})

	t.Run("verify accepts matching tag", func(t *testing.T) {
		key := randomKey(t)
		message := []byte("the message")

		tag := eng.HMAC(message, key)
		assert.True(t, eng.VerifyHMAC(message, key, tag))
	})

	t.Run("verify rejects different message", func(t *testing.T) {
		key := randomKey(t)
		tag := eng.HMAC([]byte("message one"), key)
		assert.False(t, eng.VerifyHMAC([]byte("message two"), key, tag))
	})

	t.Run("verify rejects different key", func(t *testing.T) {
		tag := eng.HMAC([]byte("message"), randomKey(t))
		assert.False(t, eng.VerifyHMAC([]byte("message"), randomKey(t), tag))
	})

	t.Run("verify rejects truncated tag", func(t *testing.T) {
		key := randomKey(t)
		message := []byte("message")
		tag := eng.HMAC(message, key)
		assert.False(t, eng.VerifyHMAC(message, key, tag[:16]))
	})
}

func TestEngineDeriveKey(t *testing.T) {
	eng := NewEngine()
	salt := []byte("fixed salt value")

	t.Run("idempotent", func(t *testing.T) {
		k1, err := eng.DeriveKey("password", salt, 32, 100_000)
		require.NoError(t, err)
		k2, err := eng.DeriveKey("password", salt, 32, 100_000)
		require.NoError(t, err)
		assert.Equal(t, k1, k2)
		assert.Len(t, k1, 32)
	})

	t.Run("changed password changes key", func(t *testing.T) {
		k1, err := eng.DeriveKey("password", salt, 32, 100_000)
		require.NoError(t, err)
		k2, err := eng.DeriveKey("Password", salt, 32, 100_000)
		require.NoError(t, err)
		assert.NotEqual(t, k1, k2)
	})

	t.Run("changed salt changes key", func(t *testing.T) {
		k1, err := eng.DeriveKey("password", salt, 32, 100_000)
		require.NoError(t, err)
		k2, err := eng.DeriveKey("password", []byte("other salt"), 32, 100_000)
		require.NoError(t, err)
		assert.NotEqual(t, k1, k2)
	})

	t.Run("changed iterations changes key", func(t *testing.T) {
		k1, err := eng.DeriveKey("password", salt, 32, 100_000)
		require.NoError(t, err)
		k2, err := eng.DeriveKey("password", salt, 32, 100_001)
		require.NoError(t, err)
		assert.NotEqual(t, k1, k2)
	})

	t.Run("custom length", func(t *testing.T) {
		k, err := eng.DeriveKey("password", salt, 64, 100_000)
		require.NoError(t, err)
		assert.Len(t, k, 64)
	})

	t.Run("iterations below floor rejected", func(t *testing.T) {
		_, err := eng.DeriveKey("password", salt, 32, 99_999)
		assert.ErrorIs(t, err, cryptoDomain.ErrWeakIterations)
	})

	t.Run("non-positive length rejected", func(t *testing.T) {
		_, err := eng.DeriveKey("password", salt, 0, 100_000)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestEngineSign(t *testing.T) {
	eng := NewEngine()

	t.Run("sign then verify", func(t *testing.T) {
		key := randomKey(t)
		sig := eng.Sign("content-id-123", key)
		assert.NotEmpty(t, sig)
		assert.True(t, eng.VerifySignature("content-id-123", sig, key))
	})

	t.Run("wrong key rejected", func(t *testing.T) {
		sig := eng.Sign("content-id-123", randomKey(t))
		assert.False(t, eng.VerifySignature("content-id-123", sig, randomKey(t)))
	})

	t.Run("wrong identifier rejected", func(t *testing.T) {
		key := randomKey(t)
		sig := eng.Sign("content-id-123", key)
		assert.False(t, eng.VerifySignature("content-id-456", sig, key))
	})

	t.Run("malformed base64 fails closed", func(t *testing.T) {
		key := randomKey(t)
		assert.False(t, eng.VerifySignature("content-id-123", "not base64!!!", key))
	})
}

func TestEngineGenerate(t *testing.T) {
	eng := NewEngine()

	t.Run("keys are distinct and sized", func(t *testing.T) {
		k1, err := eng.GenerateKey()
		require.NoError(t, err)
		k2, err := eng.GenerateKey()
		require.NoError(t, err)
		assert.Len(t, k1, cryptoDomain.KeySize)
		assert.NotEqual(t, k1, k2)
	})

	t.Run("nonces are distinct and sized", func(t *testing.T) {
		n1, err := eng.GenerateNonce()
		require.NoError(t, err)
		n2, err := eng.GenerateNonce()
		require.NoError(t, err)
		assert.Len(t, n1, cryptoDomain.NonceSize)
		assert.NotEqual(t, n1, n2)
	})
}
