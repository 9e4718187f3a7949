package commands

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	cryptoService "github.com/vaultshield/vaultshield/internal/crypto/service"
)

// RunDeriveKey derives a key from a password using PBKDF2-SHA256 and prints
// it in hex. The iteration count must meet the engine's floor; the same
// password, salt, and iterations always produce the same key.
func RunDeriveKey(
	engine cryptoService.Engine,
	logger *slog.Logger,
	writer io.Writer,
	password, saltHex string,
	iterations int,
	format string,
) error {
	if password == "" {
		return fmt.Errorf("password must not be empty")
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return fmt.Errorf("invalid salt: must be hex encoded: %w", err)
	}
	if len(salt) == 0 {
		return fmt.Errorf("salt must not be empty")
	}

	key, err := engine.DeriveKey(password, salt, cryptoDomain.KeySize, iterations)
	if err != nil {
		return fmt.Errorf("failed to derive key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	keyHex := hex.EncodeToString(key)

	if format == "json" {
		result := map[string]any{
			"key_hex":    keyHex,
			"iterations": iterations,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(writer, string(jsonBytes))
	} else {
		fmt.Fprintln(writer, "# Derived 256-bit key")
		fmt.Fprintf(writer, "KEY_HEX=%s\n", keyHex)
		fmt.Fprintf(writer, "ITERATIONS=%d\n", iterations)
	}

	logger.Info("key derived", slog.Int("iterations", iterations))
	return nil
}
