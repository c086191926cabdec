package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/dbhs-alumni/merchstore/internal/config"
	dbRedis "github.com/dbhs-alumni/merchstore/internal/db/redis"
	"github.com/dbhs-alumni/merchstore/internal/domain/region"
	logpkg "github.com/dbhs-alumni/merchstore/internal/logger"
	"github.com/dbhs-alumni/merchstore/internal/metrics"
	cartrepo "github.com/dbhs-alumni/merchstore/internal/repository/cart"
	memberrepo "github.com/dbhs-alumni/merchstore/internal/repository/member"
	orderrepo "github.com/dbhs-alumni/merchstore/internal/repository/order"
	productrepo "github.com/dbhs-alumni/merchstore/internal/repository/product"
	salesrepo "github.com/dbhs-alumni/merchstore/internal/repository/sales"
	sessionrepo "github.com/dbhs-alumni/merchstore/internal/repository/session"
	chiTransport "github.com/dbhs-alumni/merchstore/internal/transport/chi"
	adminuc "github.com/dbhs-alumni/merchstore/internal/usecase/admin"
	authuc "github.com/dbhs-alumni/merchstore/internal/usecase/auth"
	cataloguc "github.com/dbhs-alumni/merchstore/internal/usecase/catalog"
	checkoutuc "github.com/dbhs-alumni/merchstore/internal/usecase/checkout"
	healthuc "github.com/dbhs-alumni/merchstore/internal/usecase/health"
	salesuc "github.com/dbhs-alumni/merchstore/internal/usecase/sales"
	searchuc "github.com/dbhs-alumni/merchstore/internal/usecase/search"
	wishlistuc "github.com/dbhs-alumni/merchstore/internal/usecase/wishlist"
	"github.com/dbhs-alumni/merchstore/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting merchstore API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Redis and Valkey speak the same protocol; rueidis serves both.
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Password:   cfg.Database.Password,
		ClientName: "merchstore",
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterStoreMetrics()

	// Repositories
	productRepo := productrepo.New(store)
	orderRepo := orderrepo.New(store)
	memberRepo := memberrepo.New(store)
	sessionRepo := sessionrepo.New(store)
	cartStore := cartrepo.New(store, cfg.Store.CartTTL(), logger)
	salesStore := salesrepo.New(store, cfg.Store.SalesRetention())

	// Use case services
	catalogSvc := cataloguc.New(productRepo)
	wishlistSvc := wishlistuc.New(catalogSvc, memberRepo)
	searchSvc := searchuc.New(catalogSvc)
	salesSvc := salesuc.New(salesStore)
	checkoutSvc := checkoutuc.New(catalogSvc, cartStore, orderRepo, salesSvc, checkoutuc.Config{
		ShippingFee:   cfg.Store.ShippingFee(),
		DefaultRegion: region.Region(cfg.Store.DefaultRegion),
	})
	authSvc := authuc.New(memberRepo, sessionRepo, authuc.NewLogSender(logger), authuc.Config{
		SessionTTL:  cfg.Auth.SessionTTL(),
		CodeTTL:     cfg.Auth.CodeTTL(),
		MaxAttempts: cfg.Auth.MaxCodeAttempts,
	})
	adminSvc := adminuc.New(productRepo, orderRepo, salesSvc, adminuc.Config{
		OrderLimit:        cfg.Store.OrderListLimit,
		LowStockThreshold: cfg.Store.LowStockThreshold,
	})
	healthSvc := healthuc.New(store, catalogSvc)

	if err := authSvc.SeedAdmins(ctx, cfg.Auth.AdminEmails); err != nil {
		logger.Fatal("Failed to seed admin allow-list", zap.Error(err))
	}

	// Create chi server
	server := chiTransport.NewServer(catalogSvc, searchSvc, checkoutSvc, wishlistSvc, authSvc, adminSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	handler := chiTransport.Handler(server, r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
