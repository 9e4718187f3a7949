package commands

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	cryptoService "github.com/vaultshield/vaultshield/internal/crypto/service"
)

// RunGenerateKey generates a cryptographically secure 32-byte key and prints
// it in hex (the vault wire format) and base64 (the SHIELD_SIGNING_KEY
// format). Key material is zeroed from memory after encoding.
func RunGenerateKey(
	engine cryptoService.Engine,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	key, err := engine.GenerateKey()
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	defer cryptoDomain.Zero(key)

	keyHex := hex.EncodeToString(key)
	keyBase64 := base64.StdEncoding.EncodeToString(key)

	if format == "json" {
		result := map[string]string{
			"key_hex":    keyHex,
			"key_base64": keyBase64,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(writer, string(jsonBytes))
	} else {
		fmt.Fprintln(writer, "# Generated 256-bit key")
		fmt.Fprintf(writer, "KEY_HEX=%s\n", keyHex)
		fmt.Fprintf(writer, "SHIELD_SIGNING_KEY=%s\n", keyBase64)
	}

	logger.Info("key generated")
	return nil
}
