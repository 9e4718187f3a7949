// Package http provides HTTP handlers for vault cryptographic operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/vaultshield/vaultshield/internal/crypto/codec"
	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	cryptoService "github.com/vaultshield/vaultshield/internal/crypto/service"
	"github.com/vaultshield/vaultshield/internal/httputil"
	shieldUseCase "github.com/vaultshield/vaultshield/internal/shield/usecase"
	"github.com/vaultshield/vaultshield/internal/vault/http/dto"
	vaultUseCase "github.com/vaultshield/vaultshield/internal/vault/usecase"
	customValidation "github.com/vaultshield/vaultshield/internal/validation"
)

// VaultHandler handles HTTP requests for encryption, decryption, HMAC
// verification, and identifier signing.
//
// Encrypt and decrypt go through the shield: nothing reaches the cipher
// without passing the verification pipeline. Verify and sign are pure
// computations over caller-supplied material and are not gated.
type VaultHandler struct {
	shield shieldUseCase.ShieldUseCase
	vault  vaultUseCase.VaultUseCase
	engine cryptoService.Engine
	logger *slog.Logger
}

// NewVaultHandler creates a new vault handler with required dependencies.
func NewVaultHandler(
	shield shieldUseCase.ShieldUseCase,
	vault vaultUseCase.VaultUseCase,
	engine cryptoService.Engine,
	logger *slog.Logger,
) *VaultHandler {
	return &VaultHandler{
		shield: shield,
		vault:  vault,
		engine: engine,
		logger: logger,
	}
}

// userContext builds the caller context recorded with each verification.
func userContext(c *gin.Context) map[string]any {
	return map[string]any{
		"request_id":  requestid.Get(c),
		"remote_addr": c.ClientIP(),
	}
}

// EncryptHandler encrypts plaintext through the shield.
// POST /v1/vault/encrypt
// Returns 200 OK with the package fields in lowercase hex.
func (h *VaultHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	key, err := codec.DecodeKey(req.Key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	keyCtx := &cryptoDomain.KeyContext{Key: key}
	defer keyCtx.Close()

	var pkg *cryptoDomain.EncryptedPackage
	if req.Nonce != "" {
		// Explicit opt-in: the caller owns nonce freshness on this path.
		nonce, decodeErr := codec.DecodeNonce(req.Nonce)
		if decodeErr != nil {
			httputil.HandleErrorGin(c, decodeErr, h.logger)
			return
		}
		pkg, err = h.shield.EncryptDataWithNonce(c.Request.Context(), []byte(req.Plaintext), keyCtx, nonce, userContext(c))
	} else {
		pkg, err = h.shield.EncryptData(c.Request.Context(), []byte(req.Plaintext), keyCtx, userContext(c))
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncryptResponse{
		Ciphertext: codec.EncodeHex(pkg.Ciphertext),
		Nonce:      codec.EncodeHex(pkg.Nonce),
		Hmac:       codec.EncodeHex(pkg.IntegrityTag),
		CreatedAt:  pkg.CreatedAt,
	})
}

// DecryptHandler decrypts a package through the shield.
// POST /v1/vault/decrypt
// Returns 200 OK with the plaintext; integrity or authentication failures
// are client errors (422), never server errors.
func (h *VaultHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	key, err := codec.DecodeKey(req.Key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	keyCtx := &cryptoDomain.KeyContext{Key: key}
	defer keyCtx.Close()

	ciphertext, err := codec.DecodeHex("ciphertext", req.Ciphertext)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	nonce, err := codec.DecodeNonce(req.Nonce)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	var tag []byte
	if req.Hmac != "" {
		tag, err = codec.DecodeTag(req.Hmac)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
	} else {
		// No detached tag supplied: recompute it so the AEAD tag alone
		// decides authenticity.
		tag = h.engine.HMAC(ciphertext, keyCtx.Key)
	}

	pkg := &cryptoDomain.EncryptedPackage{
		Ciphertext:   ciphertext,
		Nonce:        nonce,
		IntegrityTag: tag,
	}

	plaintext, err := h.shield.DecryptData(c.Request.Context(), pkg, keyCtx, userContext(c))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptResponse{Plaintext: string(plaintext)})
}

// VerifyHandler checks a detached HMAC tag.
// POST /v1/vault/verify
// Always returns 200 OK; the valid boolean carries the result.
func (h *VaultHandler) VerifyHandler(c *gin.Context) {
	var req dto.VerifyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	key, err := codec.DecodeKey(req.Key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	keyCtx := &cryptoDomain.KeyContext{Key: key}
	defer keyCtx.Close()

	tag, err := codec.DecodeTag(req.Hmac)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	valid, err := h.vault.Verify(c.Request.Context(), []byte(req.Message), keyCtx, tag)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{Valid: valid})
}

// SignHandler produces a base64 HMAC signature for an identifier.
// POST /v1/vault/sign
func (h *VaultHandler) SignHandler(c *gin.Context) {
	var req dto.SignRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	key, err := codec.DecodeKey(req.Key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	keyCtx := &cryptoDomain.KeyContext{Key: key}
	defer keyCtx.Close()

	signature, err := h.vault.Sign(c.Request.Context(), req.Identifier, keyCtx)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SignResponse{Signature: signature})
}

// VerifySignatureHandler checks a signature produced by SignHandler.
// POST /v1/vault/verify-signature
// Always returns 200 OK; malformed signatures fail closed as valid=false.
func (h *VaultHandler) VerifySignatureHandler(c *gin.Context) {
	var req dto.VerifySignatureRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	key, err := codec.DecodeKey(req.Key)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	keyCtx := &cryptoDomain.KeyContext{Key: key}
	defer keyCtx.Close()

	valid, err := h.vault.VerifySignature(c.Request.Context(), req.Identifier, req.Signature, keyCtx)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.VerifyResponse{Valid: valid})
}
