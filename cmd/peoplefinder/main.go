package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/peoplefinder/internal/config"
	dbRedis "github.com/kailas-cloud/peoplefinder/internal/db/redis"
	logpkg "github.com/kailas-cloud/peoplefinder/internal/logger"
	"github.com/kailas-cloud/peoplefinder/internal/metrics"
	"github.com/kailas-cloud/peoplefinder/internal/repository/cache"
	employeerepo "github.com/kailas-cloud/peoplefinder/internal/repository/employee"
	"github.com/kailas-cloud/peoplefinder/internal/repository/locations"
	"github.com/kailas-cloud/peoplefinder/internal/repository/modelcache"
	chiTransport "github.com/kailas-cloud/peoplefinder/internal/transport/chi"
	openaiModel "github.com/kailas-cloud/peoplefinder/internal/transport/openai"
	healthuc "github.com/kailas-cloud/peoplefinder/internal/usecase/health"
	"github.com/kailas-cloud/peoplefinder/internal/usecase/interpret"
	searchuc "github.com/kailas-cloud/peoplefinder/internal/usecase/search"
	"github.com/kailas-cloud/peoplefinder/internal/version"
)

// clientName identifies the API server's Redis connections.
const clientName = "peoplefinder-api"

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

	logger.Info("Starting peoplefinder API server",
		zap.String("version", version.Version),
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.Bool("cache_enabled", cfg.Cache.Enabled()),
		zap.String("llm_model", cfg.LLM.Model),
	)

	ctx := context.Background()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Password:   cfg.Database.Password,
		ClientName: clientName,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterPipelineMetrics()
	metrics.RegisterHTTPMetrics()

	// An unreachable cache at startup disables caching for the process lifetime.
	// Keep cacheStore an untyped nil in that case: a nil *dbRedis.Store in an
	// interface is not nil.
	cacheStore := connectCache(ctx, cfg.Cache, logger)
	var bestEffort *cache.BestEffort
	var cachePinger healthuc.Pinger
	if cacheStore != nil {
		defer cacheStore.Close()
		bestEffort = cache.New(cacheStore, cfg.Cache.KeyPrefix, metrics.CacheResultsTotal, logger)
		cachePinger = cacheStore
	} else {
		bestEffort = cache.New(nil, cfg.Cache.KeyPrefix, metrics.CacheResultsTotal, logger)
	}

	// Repositories
	employees := employeerepo.New(store, cfg.Database.KeyPrefix)
	if err := employees.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure employee index", zap.Error(err))
	}
	universe := locations.New(
		employees, bestEffort,
		time.Duration(cfg.Search.LocationTTLSec)*time.Second, logger,
	)

	// Filter model chain: OpenAI-compatible client -> response cache
	base := openaiModel.NewFilterModel(&openaiModel.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		RateRPS:     cfg.LLM.RateRPS,
		RateBurst:   cfg.LLM.RateBurst,
		Logger:      logger,
	})
	var cacheable func(string) bool
	if !cfg.LLM.CacheMalformed {
		cacheable = interpret.HasJSONBlock
	}
	model := modelcache.New(base, bestEffort, time.Duration(cfg.LLM.CacheTTLSec)*time.Second, cacheable, logger)

	// Use cases
	builder := interpret.NewBuilder(
		interpret.NewLocationResolver(cfg.Search.LocationFloor, metrics.LocationResolutionTotal),
	)
	searchSvc := searchuc.New(employees, universe, model, builder, metrics.SearchPathTotal)
	healthSvc := healthuc.New(store, cachePinger, base)

	// HTTP
	server := chiTransport.NewServer(searchSvc, healthSvc, chiTransport.PageSizes{
		Default: cfg.Search.DefaultPageSize,
		Max:     cfg.Search.MaxPageSize,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

// connectCache returns a ready cache store, or nil when the cache is not
// configured or not reachable.
func connectCache(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) *dbRedis.Store {
	if !cfg.Enabled() {
		logger.Info("Filter cache disabled")
		return nil
	}

	s, err := dbRedis.NewStore(dbRedis.Config{Addrs: cfg.Addrs, Password: cfg.Password, ClientName: clientName})
	if err != nil {
		logger.Warn("Filter cache unavailable, continuing without cache", zap.Error(err))
		return nil
	}
	if err := s.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		s.Close()
		logger.Warn("Filter cache not ready, continuing without cache", zap.Error(err))
		return nil
	}
	logger.Info("Connected to filter cache", zap.Strings("addrs", cfg.Addrs))
	return s
}
