package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"whalecopy/whalegate/pkg/config"
	"whalecopy/whalegate/pkg/limits"
	"whalecopy/whalegate/pkg/normalize"
	"whalecopy/whalegate/pkg/polymarket"
	"whalecopy/whalegate/pkg/proxy"
	"whalecopy/whalegate/pkg/proxy/handlers"
	"whalecopy/whalegate/pkg/proxy/middleware"
	"whalecopy/whalegate/pkg/security/auth"
	"whalecopy/whalegate/pkg/telemetry/health"
	"whalecopy/whalegate/pkg/telemetry/metrics"
	"whalecopy/whalegate/pkg/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus"
)

// Server is the whalegate HTTP server. It owns the listener, the operational
// endpoints and the request pipeline, which can be replaced at runtime by
// Reload. config is the boot configuration; the listener, timeouts and
// operational routes are fixed to it.
type Server struct {
	config     *config.Config
	logger     *slog.Logger
	version    health.VersionInfo
	collector  *metrics.Collector
	checker    *health.Checker
	pipeline   atomic.Pointer[pipeline]
	httpServer *http.Server

	reloadMu     sync.Mutex
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// pipeline is the part of the request path that is rebuilt from each
// configuration snapshot: origin check, bearer check, rate limit and gateway.
type pipeline struct {
	config  *config.Config
	handler http.Handler
	client  *polymarket.Client
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithVersion sets the build information reported on the version endpoint.
func WithVersion(info health.VersionInfo) Option {
	return func(s *Server) { s.version = info }
}

// WithRegistry registers metrics on registry instead of a private one.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(s *Server) {
		s.collector = metrics.NewCollector(&s.config.Telemetry.Metrics, registry)
	}
}

// New creates a server from a validated configuration.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	s := &Server{
		config:       cfg,
		logger:       slog.Default(),
		version:      health.NewVersionInfo("dev", "unknown", "unknown"),
		checker:      health.New(cfg.Telemetry.Health.CheckTimeout),
		shutdownChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.collector == nil {
		s.collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	p, err := s.build(cfg)
	if err != nil {
		return nil, err
	}
	s.pipeline.Store(p)
	s.syncUpstreamChecks(p)

	return s, nil
}

// build assembles the reloadable part of the request path for cfg.
func (s *Server) build(cfg *config.Config) (*pipeline, error) {
	client := polymarket.NewClient(cfg.Upstreams,
		polymarket.WithObserver(s.collector),
		polymarket.WithLogger(s.logger),
		polymarket.WithMaxBodyLog(cfg.Telemetry.Logging.MaxBodyLog),
	)

	normalizer := normalize.New(normalize.Options{
		CanonicalTraders: cfg.Normalize.CanonicalTraders,
		CanonicalMarkets: cfg.Normalize.CanonicalMarkets,
	})

	var handler http.Handler = handlers.NewGateway(client, normalizer,
		handlers.WithMaxBodyBytes(cfg.Proxy.MaxBodyBytes),
		handlers.WithLogger(s.logger),
	)

	if limiter := limits.NewManager(cfg.Security.RateLimit); limiter != nil {
		handler = middleware.RateLimitMiddleware(limiter, proxy.WriteError)(handler)
	}

	verifier, err := auth.NewVerifier(cfg.Security.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create verifier: %w", err)
	}
	if verifier != nil {
		handler = auth.NewMiddleware(verifier, proxy.WriteError, s.logger).Handle(handler)
	} else {
		s.logger.Warn("bearer authentication is disabled")
	}

	handler = middleware.CORSMiddleware(middleware.NewCORSConfig(cfg.Security.Origin), proxy.WriteError)(handler)

	return &pipeline{config: cfg, handler: handler, client: client}, nil
}

// syncUpstreamChecks points the upstream readiness checks at p's client, or
// removes them when p's configuration turns them off.
func (s *Server) syncUpstreamChecks(p *pipeline) {
	if p.config.Telemetry.Health.CheckUpstreams {
		s.checker.RegisterUpstreams(p.client, s.collector)
		return
	}
	s.checker.UnregisterUpstreams()
}

// Reload swaps in a pipeline built from cfg. Requests already in flight
// finish on the previous pipeline. Listener and timeout settings only take
// effect on restart.
func (s *Server) Reload(cfg *config.Config) error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	p, err := s.build(cfg)
	if err != nil {
		s.logger.Error("configuration reload rejected", "error", err)
		return err
	}

	prev := s.pipeline.Swap(p).config
	if cfg.Proxy.ListenAddress != prev.Proxy.ListenAddress || cfg.Proxy.Path != prev.Proxy.Path {
		s.logger.Warn("listener changes require a restart",
			"listen_address", s.config.Proxy.ListenAddress,
			"path", s.config.Proxy.Path,
		)
	}
	s.syncUpstreamChecks(p)

	s.logger.Info("request pipeline reloaded",
		"auth_mode", cfg.Security.Auth.Mode,
		"allowed_origins", len(cfg.Security.Origin.AllowedOrigins),
		"upstream_checks", cfg.Telemetry.Health.CheckUpstreams,
	)
	return nil
}

// Config returns the configuration the active pipeline was built from.
func (s *Server) Config() *config.Config {
	return s.pipeline.Load().config
}

// Handler returns the complete HTTP handler: operational endpoints plus the
// proxy entry point behind the origin and bearer checks.
//
//	Recovery -> RequestID -> trace extraction -> mux
//	  /health, /ready, /version, /metrics
//	  proxy path: Logging -> Metrics -> CORS -> Auth -> RateLimit -> Gateway
func (s *Server) Handler() http.Handler {
	cfg := s.config
	mux := http.NewServeMux()

	health.Register(mux, &cfg.Telemetry.Health, s.checker, s.version)

	if cfg.Telemetry.Metrics.Enabled {
		mux.Handle(cfg.Telemetry.Metrics.Path, s.collector.Handler())
	}

	var proxyHandler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.pipeline.Load().handler.ServeHTTP(w, r)
	})
	proxyHandler = middleware.MetricsMiddleware(s.collector)(proxyHandler)
	proxyHandler = middleware.LoggingMiddleware(proxyHandler)
	mux.Handle(cfg.Proxy.Path, proxyHandler)

	var handler http.Handler = mux
	handler = tracing.HTTPMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.RecoveryMiddleware(handler)
	return handler
}

// Start listens on the configured address and serves until ctx is
// cancelled, SIGINT or SIGTERM is received, or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Proxy.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Proxy.ListenAddress, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.httpServer = &http.Server{
		Handler:        s.Handler(),
		ReadTimeout:    s.config.Proxy.ReadTimeout,
		WriteTimeout:   s.config.Proxy.WriteTimeout,
		IdleTimeout:    s.config.Proxy.IdleTimeout,
		MaxHeaderBytes: s.config.Proxy.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	s.mu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting whalegate",
			"address", ln.Addr().String(),
			"path", s.config.Proxy.Path,
			"auth_mode", s.config.Security.Auth.Mode,
		)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		s.logger.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Stop asks a running Start or Serve to shut down.
func (s *Server) Stop() {
	select {
	case <-s.shutdownChan:
	default:
		close(s.shutdownChan)
	}
}

// Shutdown gracefully shuts down the server, waiting up to the configured
// shutdown timeout for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.logger.Info("initiating graceful shutdown", "timeout", s.config.Proxy.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Proxy.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("whalegate stopped")
	})

	return shutdownErr
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Collector returns the metrics collector.
func (s *Server) Collector() *metrics.Collector {
	return s.collector
}
