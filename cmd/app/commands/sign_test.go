package commands

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	cryptoService "github.com/vaultshield/vaultshield/internal/crypto/service"
)

func TestRunSignIdentifier(t *testing.T) {
	engine := cryptoService.NewEngine()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	keyHex := hex.EncodeToString(bytes.Repeat([]byte{0x11}, 32))

	t.Run("text-output", func(t *testing.T) {
		var out bytes.Buffer
		err := RunSignIdentifier(engine, logger, &out, "user-12345", keyHex, "text")
		require.NoError(t, err)
		require.Contains(t, out.String(), "identifier: user-12345")
		require.Contains(t, out.String(), "signature:")
	})

	t.Run("json-output", func(t *testing.T) {
		var out bytes.Buffer
		err := RunSignIdentifier(engine, logger, &out, "user-12345", keyHex, "json")
		require.NoError(t, err)

		var result map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		require.Equal(t, "user-12345", result["identifier"])

		key, err := hex.DecodeString(keyHex)
		require.NoError(t, err)
		require.True(t, engine.VerifySignature("user-12345", result["signature"], key))
	})

	t.Run("deterministic", func(t *testing.T) {
		var first, second bytes.Buffer
		require.NoError(t, RunSignIdentifier(engine, logger, &first, "user-12345", keyHex, "json"))
		require.NoError(t, RunSignIdentifier(engine, logger, &second, "user-12345", keyHex, "json"))
		require.Equal(t, first.String(), second.String())
	})

	t.Run("empty-identifier", func(t *testing.T) {
		err := RunSignIdentifier(engine, logger, io.Discard, "", keyHex, "text")
		require.Error(t, err)
		require.Contains(t, err.Error(), "identifier")
	})

	t.Run("invalid-key-hex", func(t *testing.T) {
		err := RunSignIdentifier(engine, logger, io.Discard, "user-12345", "zz", "text")
		require.Error(t, err)
		require.Contains(t, err.Error(), "hex")
	})

	t.Run("wrong-key-length", func(t *testing.T) {
		shortKey := strings.Repeat("ab", 16)
		err := RunSignIdentifier(engine, logger, io.Discard, "user-12345", shortKey, "text")
		require.Error(t, err)
		require.Contains(t, err.Error(), "32 bytes")
	})
}
