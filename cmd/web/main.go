package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"eshoplabs.dev/eshop-web/internal/config"
	mw "eshoplabs.dev/eshop-web/internal/middleware"
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

	app, err := newApplication(cfg, logger)
	if err != nil {
		logger.Fatal("bootstrap failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              cfg.Web.Addr,
		Handler:           app.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("storefront listening",
		zap.String("addr", cfg.Web.Addr),
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

func (app *application) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session)
	r.Use(mw.CSRF)
	r.Use(app.loadUser)
	r.Use(mw.Logger(app.log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", app.homePage)
	r.Get("/category/{category}", app.categoryPage)
	r.Get("/product/{id}", app.productPage)
	r.Get("/search", app.searchPage)
	r.Get("/pages/{slug}", app.contentPage)

	r.Get("/cart", app.cartPage)
	r.Post("/cart/add", app.cartAdd)
	r.Post("/cart/update", app.cartUpdate)
	r.Post("/cart/remove", app.cartRemove)
	r.Post("/cart/clear", app.cartClear)

	r.Get("/wishlist", app.wishlistPage)
	r.Post("/wishlist/add", app.wishlistAdd)
	r.Post("/wishlist/remove", app.wishlistRemove)
	r.Post("/wishlist/move", app.wishlistMoveToCart)

	r.Get("/login", app.loginPage)
	r.Post("/login", app.loginSubmit)
	r.Get("/register", app.registerPage)
	r.Post("/register", app.registerSubmit)
	r.Post("/logout", app.logout)

	r.Group(func(r chi.Router) {
		r.Use(app.requireAuth)
		r.Get("/account", app.accountPage)
		r.Get("/account/orders", app.ordersPage)
		r.Get("/account/orders/{id}", app.orderPage)
		r.Post("/account/orders/{id}/cancel", app.orderCancel)
		r.Get("/checkout", app.checkoutPage)
		r.Post("/checkout", app.checkoutSubmit)
		r.Get("/checkout/pay/{id}", app.checkoutPay)
		r.Get("/checkout/success", app.checkoutSuccess)
		r.Get("/checkout/cancel", app.checkoutCancel)
	})

	return r
}
