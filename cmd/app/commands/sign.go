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

// RunSignIdentifier produces a base64 HMAC-SHA256 signature over an
// identifier using a hex-encoded 32-byte key.
func RunSignIdentifier(
	engine cryptoService.Engine,
	logger *slog.Logger,
	writer io.Writer,
	identifier, keyHex string,
	format string,
) error {
	if identifier == "" {
		return fmt.Errorf("identifier must not be empty")
	}

	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return fmt.Errorf("invalid key: must be hex encoded: %w", err)
	}
	defer cryptoDomain.Zero(key)

	if len(key) != cryptoDomain.KeySize {
		return fmt.Errorf("invalid key: must be %d bytes, got %d", cryptoDomain.KeySize, len(key))
	}

	signature := engine.Sign(identifier, key)

	if format == "json" {
		result := map[string]string{
			"identifier": identifier,
			"signature":  signature,
		}
		jsonBytes, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(writer, string(jsonBytes))
	} else {
		fmt.Fprintf(writer, "identifier: %s\n", identifier)
		fmt.Fprintf(writer, "signature:  %s\n", signature)
	}

	logger.Info("identifier signed")
	return nil
}
