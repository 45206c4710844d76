package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_content/internal/adapters/audit"
	"hotel_content/internal/adapters/auth"
	server "hotel_content/internal/adapters/http_server"
	"hotel_content/internal/adapters/observability"
	redisad "hotel_content/internal/adapters/redis"
	"hotel_content/internal/adapters/suppliers"
	"hotel_content/internal/app"
	"hotel_content/internal/normalize"
	"hotel_content/internal/reference"
	"hotel_content/internal/shared"
	mysqlrepo "hotel_content/internal/storage/mysql"
	"hotel_content/internal/storage/rawfs"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := mysqlrepo.Open(ctx, cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("mysql open failed")
	}
	defer db.Close()
	log.Info().Msg("database connection ok")
	repo := mysqlrepo.New(db)

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cache.Close()
	if err := cache.Ping(ctx); err != nil {
		// details fall back to direct normalization while redis is down
		log.Warn().Err(err).Msg("redis ping failed")
	}

	store, err := rawfs.New(cfg.RawBaseDir)
	if err != nil {
		log.Fatal().Err(err).Msg("raw store init failed")
	}

	jwtv, err := auth.NewJWTValidator(cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("jwt validator init failed")
	}
	rbac, err := auth.NewEnforcer()
	if err != nil {
		log.Fatal().Err(err).Msg("casbin enforcer init failed")
	}

	auditLog := audit.New(repo, cfg.AuditBuffer)
	defer auditLog.Close()

	registry := suppliers.NewRegistry(cfg.SupplierCredentials())
	engine := normalize.New(reference.New(cfg.ReferencePaths()))

	// http
	srv := server.New(server.Options{
		RequestTimeout: 30 * time.Second,
		RateLimit:      cfg.RateLimit,
		TrustedProxies: cfg.TrustedProxies,
	})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Push:    app.NewPushService(registry, store, cache, cfg.Workers),
		Raw:     app.NewRawService(store),
		Details: app.NewDetailsService(store, engine, cache, cfg.CacheTTL),
		Access:  app.NewAccessService(repo, rbac, auditLog),
		JWT:     jwtv,
		RBAC:    rbac,
		Audit:   auditLog,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Strs("suppliers", registry.Codes()).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
