package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Layr-Labs/bubble-allowlist-go/pkg/allowlist"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/metrics"
	"github.com/Layr-Labs/bubble-allowlist-go/pkg/types"
)

/*
Server answers allowlist questions for minting frontends and operators.

Public endpoints:
  GET  /root              active root, version and tree shape
  GET  /proof?address=0x  leaf and sibling path for an address (404 when not eligible)
  POST /verify            { address, proof, root? } -> { valid }
  GET  /versions          every stored version without address lists
  GET  /snapshot          root plus every member's proof, for static hosting
  GET  /healthz           store health and, when configured, the on-chain root check
  GET  /metrics           prometheus exposition

Operator endpoints (Authorization: Bearer <admin token>):
  POST /allowlist         { addresses, label } publishes a new version
  POST /versions/activate { version } switches back to a stored version
  POST /versions/commit   { version, txHash } records the setRoot transaction

A published root only gates minting once the contract owner calls setRoot
with it; the server never sends transactions.
*/

// RootReader reads the root currently stored in the BubbleToken contract.
type RootReader interface {
	Root(ctx context.Context) (types.Digest, error)
}

// Config holds the HTTP settings of the allowlist server.
type Config struct {
	Port       int
	AdminToken string
	// RateLimit is requests per second per client; 0 disables limiting.
	RateLimit float64
	RateBurst int
	// TrustProxy keys rate limiting on the first X-Forwarded-For hop. Only
	// safe behind a reverse proxy that overwrites the header.
	TrustProxy bool
}

// Server handles HTTP requests for the allowlist service
type Server struct {
	registry   *allowlist.Registry
	recorder   *metrics.Recorder
	rootReader RootReader
	logger     *zap.Logger
	config     *Config
	limiter    *clientRateLimiter
	httpServer *http.Server
	listener   net.Listener

	metricsHandler http.Handler
}

// Option customises a Server.
type Option func(*Server)

// WithRootReader enables comparing the served root with the contract's.
func WithRootReader(reader RootReader) Option {
	return func(s *Server) {
		s.rootReader = reader
	}
}

// WithMetrics records request metrics and exposes reg on /metrics.
func WithMetrics(recorder *metrics.Recorder, reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.recorder = recorder
		if reg != nil {
			s.metricsHandler = metrics.Handler(reg)
		}
	}
}

// NewServer creates a new server instance
func NewServer(registry *allowlist.Registry, cfg *Config, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		registry: registry,
		logger:   logger,
		config:   cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	if cfg.RateLimit > 0 {
		s.limiter = newClientRateLimiter(cfg.RateLimit, cfg.RateBurst, defaultLimiterCacheSize, defaultLimiterTTL)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/root", s.handleGetRoot)
	mux.HandleFunc("/proof", s.handleGetProof)
	mux.HandleFunc("/verify", s.handleVerify)
	mux.HandleFunc("/versions", s.handleListVersions)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/healthz", s.handleHealth)

	mux.HandleFunc("/allowlist", s.requireAdmin(s.handlePublish))
	mux.HandleFunc("/versions/activate", s.requireAdmin(s.handleActivate))
	mux.HandleFunc("/versions/commit", s.requireAdmin(s.handleCommit))

	if s.metricsHandler != nil {
		mux.Handle("/metrics", s.metricsHandler)
	}

	handler := s.middlewareRateLimit(mux)
	handler = s.middlewareLogging(handler)
	handler = s.middlewareRequestID(handler)
	handler = s.middlewarePanicRecovery(handler)

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Start binds the listen address and serves in the background. Bind errors
// such as a port already in use are returned before any request is served.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln

	s.logger.Sugar().Infow("Starting allowlist HTTP server", "addr", ln.Addr().String())
	go func() {
		if err := s.httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			s.logger.Sugar().Errorw("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Addr returns the bound address once Start succeeded, empty before.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop gracefully drains in-flight requests until ctx expires
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// GetHandler returns the HTTP handler (for testing)
func (s *Server) GetHandler() http.Handler {
	return s.httpServer.Handler
}
