package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/justresults/hirepay-console/pkg/audit"
	"github.com/justresults/hirepay-console/pkg/auth"
	"github.com/justresults/hirepay-console/pkg/config"
	"github.com/justresults/hirepay-console/pkg/crypto"
	"github.com/justresults/hirepay-console/pkg/handlers"
	"github.com/justresults/hirepay-console/pkg/hirepay"
	"github.com/justresults/hirepay-console/pkg/logging"
	"github.com/justresults/hirepay-console/pkg/middleware"
	"github.com/justresults/hirepay-console/pkg/retry"
	"github.com/justresults/hirepay-console/pkg/services"
	"github.com/justresults/hirepay-console/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("hirepay_api", logging.SanitizeURL(cfg.HirePay.BaseURL)),
		zap.Duration("hirepay_timeout", cfg.HirePay.Timeout),
		zap.String("session_store", cfg.Session.Store),
		zap.Int64("upload_max_bytes", cfg.Uploads.MaxBytes))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	auditor := audit.NewSecurityAuditor(logger)

	cookies := auth.NewCookieStore(cfg.Session.Secret, cfg.Session.MaxAge,
		auth.DeriveCookieSettings(cfg.BaseURL, cfg.CookieDomain))

	var store auth.TokenStore
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err := auth.OpenRedis(ctx, auth.RedisOptions{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, retry.DefaultConfig(), logger)
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()

		sealer, err := crypto.NewTokenSealer(cfg.Session.TokenKey)
		if err != nil {
			return fmt.Errorf("invalid session token key: %w", err)
		}
		store = auth.NewRedisTokenStore(redisClient, sealer, cookies, cfg.Session.MaxAge, logger)
		logger.Info("Session store connected", zap.String("store", store.Kind()), zap.String("redis", cfg.Redis.Addr()))
	default:
		store = auth.NewCookieTokenStore(cookies)
	}

	api, err := hirepay.NewClient(cfg.HirePay.BaseURL, cfg.HirePay.Timeout, hirepay.NewMetrics(reg), logger)
	if err != nil {
		return err
	}

	sessionMW := auth.NewSessionMiddleware(store, auditor, logger)
	throttle := middleware.NewLoginThrottle(cfg.LoginThrottle.PerMinute, cfg.LoginThrottle.Burst, auditor)

	sessionService := services.NewSessionService(api, auditor, logger)
	userService := services.NewUserService(api, logger)
	scopeService := services.NewScopeService(api, logger)
	documentService := services.NewDocumentService(api, cfg.Uploads.MaxBytes, logger)

	mux := http.NewServeMux()

	// Register handlers
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewSessionHandler(sessionService, store, logger).RegisterRoutes(mux, sessionMW, throttle.Wrap)
	handlers.NewUsersHandler(userService, logger).RegisterRoutes(mux, sessionMW)
	handlers.NewScopesHandler(scopeService, logger).RegisterRoutes(mux, sessionMW)
	handlers.NewDocumentsHandler(documentService, cfg.Uploads.MaxBytes, logger).RegisterRoutes(mux, sessionMW)
	mux.Handle("GET /metrics", middleware.MetricsHandler(reg))

	// Serve the embedded browser shell
	shell, err := ui.DistFS()
	if err != nil {
		return fmt.Errorf("failed to open ui: %w", err)
	}
	mux.Handle("GET /", ui.Handler(shell))

	// Metrics sit directly on the mux so the matched route pattern is visible.
	var handler http.Handler = middleware.NewHTTPMetrics(reg).Instrument(mux)
	handler = sessionMW.Load(handler)
	handler = middleware.RequestLogger(logger)(handler)
	handler = middleware.RequestID(handler)

	server := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  2 * cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting hirepay-console",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version),
			zap.Bool("tls", cfg.TLSCertPath != ""))
		var err error
		if cfg.TLSCertPath != "" {
			err = server.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
