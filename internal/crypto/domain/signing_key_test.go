package domain

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSigningKeyFromEnv(t *testing.T) {
	t.Run("valid key", func(t *testing.T) {
		raw := make([]byte, KeySize)
		for i := range raw {
			raw[i] = byte(i)
		}
		t.Setenv("SHIELD_SIGNING_KEY", base64.StdEncoding.EncodeToString(raw))

		sk, err := LoadSigningKeyFromEnv()
		require.NoError(t, err)
		assert.Equal(t, raw, sk.Key)

		sk.Close()
		assert.Nil(t, sk.Key)
	})

	t.Run("not set", func(t *testing.T) {
		t.Setenv("SHIELD_SIGNING_KEY", "")

		_, err := LoadSigningKeyFromEnv()
		assert.ErrorIs(t, err, ErrSigningKeyNotSet)
	})

	t.Run("invalid base64", func(t *testing.T) {
		t.Setenv("SHIELD_SIGNING_KEY", "not base64!!!")

		_, err := LoadSigningKeyFromEnv()
		assert.ErrorIs(t, err, ErrInvalidSigningKeyBase64)
	})

	t.Run("wrong key size", func(t *testing.T) {
		t.Setenv("SHIELD_SIGNING_KEY", base64.StdEncoding.EncodeToString([]byte("short")))

		_, err := LoadSigningKeyFromEnv()
		assert.ErrorIs(t, err, ErrInvalidKeyLength)
	})
}

func TestLoadWrappedSigningKeyFromEnv(t *testing.T) {
	t.Run("returns decoded ciphertext", func(t *testing.T) {
		wrapped := []byte("kms wrapped ciphertext, any length")
		t.Setenv("SHIELD_SIGNING_KEY", base64.StdEncoding.EncodeToString(wrapped))

		got, err := LoadWrappedSigningKeyFromEnv()
		require.NoError(t, err)
		assert.Equal(t, wrapped, got)
	})

	t.Run("not set", func(t *testing.T) {
		t.Setenv("SHIELD_SIGNING_KEY", "")

		_, err := LoadWrappedSigningKeyFromEnv()
		assert.ErrorIs(t, err, ErrSigningKeyNotSet)
	})
}

func TestZero(t *testing.T) {
	t.Run("wipes slice", func(t *testing.T) {
		b := []byte{1, 2, 3}
		Zero(b)
		assert.Equal(t, []byte{0, 0, 0}, b)
	})

	t.Run("nil slice", func(t *testing.T) {
		assert.NotPanics(t, func() { Zero(nil) })
	})
}
