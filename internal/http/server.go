// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vaultshield/vaultshield/internal/config"
	shieldHTTP "github.com/vaultshield/vaultshield/internal/shield/http"
	vaultHTTP "github.com/vaultshield/vaultshield/internal/vault/http"
)

// Server represents the HTTP server exposing the vault and shield APIs.
type Server struct {
	db                *sql.DB
	cfg               *config.Config
	logger            *slog.Logger
	vaultHandler      *vaultHTTP.VaultHandler
	shieldHandler     *shieldHTTP.ShieldHandler
	metricsMiddleware gin.HandlerFunc
	rateLimiter       *RateLimiter
	server            *http.Server
}

// NewServer creates a new HTTP server. The database may be nil when the
// verification log runs on the in-memory backend, and metricsMiddleware may
// be nil when metrics are disabled.
func NewServer(
	db *sql.DB,
	cfg *config.Config,
	logger *slog.Logger,
	vaultHandler *vaultHTTP.VaultHandler,
	shieldHandler *shieldHTTP.ShieldHandler,
	metricsMiddleware gin.HandlerFunc,
) *Server {
	return &Server{
		db:                db,
		cfg:               cfg,
		logger:            logger,
		vaultHandler:      vaultHandler,
		shieldHandler:     shieldHandler,
		metricsMiddleware: metricsMiddleware,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the Gin router with all middleware and routes.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if s.metricsMiddleware != nil {
		router.Use(s.metricsMiddleware)
	}

	if corsMiddleware := createCORSMiddleware(s.cfg.CORSEnabled, s.cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	vault := v1.Group("/vault")
	if s.cfg.RateLimitEnabled {
		if s.rateLimiter == nil {
			s.rateLimiter = NewRateLimiter(s.cfg.RateLimitRequestsPerSec, s.cfg.RateLimitBurst, s.logger)
		}
		vault.Use(s.rateLimiter.Middleware())
	}
	vault.POST("/encrypt", s.vaultHandler.EncryptHandler)
	vault.POST("/decrypt", s.vaultHandler.DecryptHandler)
	vault.POST("/verify", s.vaultHandler.VerifyHandler)
	vault.POST("/sign", s.vaultHandler.SignHandler)
	vault.POST("/verify-signature", s.vaultHandler.VerifySignatureHandler)

	shield := v1.Group("/shield")
	shield.GET("/status", s.shieldHandler.StatusHandler)
	shield.GET("/verifications", s.shieldHandler.ListVerificationsHandler)

	return router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can take traffic. The
// verification log backend is the only external dependency: a SQL-backed
// log must answer a ping, the in-memory backend is always ready.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}

	ready := true
	if s.cfg.LogBackend == "memory" {
		components["verification_log"] = "ok"
	} else if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.SetupRouter()

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server and stops the rate
// limiter's cleanup goroutine.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	return s.server.Shutdown(ctx)
}
