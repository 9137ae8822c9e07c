package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"fredagsliga-service/internal/clock"
	"fredagsliga-service/internal/config"
	"fredagsliga-service/internal/history"
	httpserver "fredagsliga-service/internal/http"
	"fredagsliga-service/internal/logging"
	"fredagsliga-service/internal/metrics"
	"fredagsliga-service/internal/notify"
	"fredagsliga-service/internal/session"
	"fredagsliga-service/internal/storage"
	boltstore "fredagsliga-service/internal/storage/bbolt"
	"fredagsliga-service/internal/storage/memory"
	"fredagsliga-service/internal/teams"
)

var metricsSetup = metrics.Setup

// Server owns the wired components: storage, the session engine, and the
// HTTP and metrics listeners.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	engine        *session.Engine
	registry      *teams.Registry
	history       *history.Store
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	storeClose    func() error
}

// New constructs a fully wired server from the configuration.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	kv, storeClose := openStorage(cfg, logger)
	registry := teams.NewRegistry(kv, logger)
	historyStore := history.NewStore(kv, logger, recorder)

	scheduler := notify.NewTimerScheduler(logger)
	feedback := notify.NewLogFeedback(logger)

	// The clock and the engine reference each other; the relay breaks the
	// construction cycle.
	relay := &clockRelay{}
	clk := clock.New(relay)
	engine := session.NewWithDefaultDuration(registry, historyStore, clk, scheduler, feedback, logger, recorder, cfg.MatchMinutes)
	relay.engine = engine

	httpSrv := buildHTTPServer(cfg, engine, registry, historyStore, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		engine:        engine,
		registry:      registry,
		history:       historyStore,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		storeClose:    storeClose,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, engine *session.Engine, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		engine:     engine,
		httpServer: httpSrv,
	}
}

// clockRelay forwards clock signals to the engine assigned after construction.
type clockRelay struct {
	engine *session.Engine
}

func (r *clockRelay) Tick(remaining int) {
	if r.engine != nil {
		r.engine.Tick(remaining)
	}
}

func (r *clockRelay) Expire() {
	if r.engine != nil {
		r.engine.Expire()
	}
}

// openStorage opens the durable store, degrading to in-memory storage when
// the file cannot be opened. The session keeps working either way.
func openStorage(cfg config.Config, logger *slog.Logger) (storage.KV, func() error) {
	if cfg.DataPath == "" {
		return memory.New(), nil
	}

	path := filepath.Clean(cfg.DataPath)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logging.Warn(logger, "failed to create storage directory, continuing in memory",
				"error", err, "path", dir)
			return memory.New(), nil
		}
	}

	store, err := boltstore.Open(path)
	if err != nil {
		logging.Warn(logger, "failed to open durable storage, continuing in memory",
			"error", err, "path", cfg.DataPath)
		return memory.New(), nil
	}
	return store, store.Close
}

func buildHTTPServer(cfg config.Config, engine *session.Engine, registry *teams.Registry, historyStore *history.Store, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := httpserver.NewHandler(engine, registry, historyStore, logger)
	router := httpserver.NewRouter(handler)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := httpserver.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return stdHTTPServer{inner: srv}
}

// Run starts the listeners and waits for context cancellation to shut down
// gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.storeClose != nil {
		if err := s.storeClose(); err != nil && s.logger != nil {
			s.logger.Warn("failed to close storage", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = stdHTTPServer{
			inner: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
