// Command admin serves the store management console.
package main

import (
	"context"
	"crypto/rand"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"eshoplabs.dev/eshop-web/internal/admin/customers"
	"eshoplabs.dev/eshop-web/internal/admin/dashboard"
	"eshoplabs.dev/eshop-web/internal/admin/httpserver"
	adminorders "eshoplabs.dev/eshop-web/internal/admin/orders"
	adminproducts "eshoplabs.dev/eshop-web/internal/admin/products"
	"eshoplabs.dev/eshop-web/internal/admin/session"
	"eshoplabs.dev/eshop-web/internal/api"
	"eshoplabs.dev/eshop-web/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := api.NewClient(cfg.API.BaseURL, &http.Client{Timeout: 15 * time.Second})
	if err != nil {
		logger.Fatal("api client", zap.Error(err))
	}

	sessions, err := session.NewManager(session.Config{
		HashKey:      hashKey(cfg.Admin.HashKey, logger),
		BlockKey:     blockKey(cfg.Admin.BlockKey),
		CookieSecure: cfg.Prod(),
	})
	if err != nil {
		logger.Fatal("session manager", zap.Error(err))
	}

	srv, err := httpserver.New(httpserver.Config{
		Address:       cfg.Admin.Addr,
		BasePath:      cfg.Admin.BasePath,
		Currency:      cfg.Store.Currency,
		Sessions:      sessions,
		Authenticator: httpserver.NewAPIAuthenticator(client),
		Logger:        logger,
		Products:      adminproducts.NewHTTPService(client),
		Orders:        adminorders.NewHTTPService(client),
		Customers:     customers.NewHTTPService(client),
		Dashboard:     dashboard.NewHTTPService(client),
	})
	if err != nil {
		logger.Fatal("build server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("admin console listening",
		zap.String("addr", cfg.Admin.Addr),
		zap.String("base_path", cfg.Admin.BasePath),
		zap.String("api", cfg.API.BaseURL),
		zap.String("env", cfg.Env))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}
}

func buildLogger(cfg config.Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if err := level.Set(cfg.LogLevel); err != nil {
		level = zapcore.InfoLevel
	}
	var zc zap.Config
	if cfg.Prod() {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// An empty block key disables cookie encryption, which is fine for local runs
// but not for production.
func blockKey(key string) []byte {
	if key == "" {
		return nil
	}
	return []byte(key)
}

// hashKey generates a process-ephemeral key when none is configured. Sessions
// then reset on restart, so production deployments must set
// ESHOP_ADMIN_SESSION_HASH_KEY.
func hashKey(key string, logger *zap.Logger) []byte {
	if key != "" {
		return []byte(key)
	}
	ephemeral := make([]byte, 32)
	if _, err := rand.Read(ephemeral); err != nil {
		logger.Fatal("generate session key", zap.Error(err))
	}
	logger.Warn("using ephemeral admin session key, set ESHOP_ADMIN_SESSION_HASH_KEY for production")
	return ephemeral
}
