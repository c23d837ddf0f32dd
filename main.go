package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/seo-optimizer/articleseo/analyzer"
	"github.com/seo-optimizer/articleseo/api"
	"github.com/seo-optimizer/articleseo/audit"
	"github.com/seo-optimizer/articleseo/cache"
	"github.com/seo-optimizer/articleseo/checker"
	"github.com/seo-optimizer/articleseo/config"
	"github.com/seo-optimizer/articleseo/history"
	"github.com/seo-optimizer/articleseo/logging"
	"github.com/seo-optimizer/articleseo/metadata"
	"github.com/seo-optimizer/articleseo/metrics"
	"github.com/seo-optimizer/articleseo/middleware"
	"github.com/seo-optimizer/articleseo/sitemap"
	"github.com/seo-optimizer/articleseo/stats"
)

// statsRetainMonths keeps the current and the previous month.
const statsRetainMonths = 1

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Setup("info", true)
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logging.Setup(cfg.Server.LogLevel, cfg.Server.DevMode)
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	// Statistics
	storage, err := stats.NewStorage(cfg.Server.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Server.DataDir).Msg("failed to open statistics storage")
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error().Err(err).Msg("failed to flush statistics")
		}
	}()

	scheduler, err := stats.ScheduleCleanup(storage, cfg.Server.StatsSchedule, statsRetainMonths)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to schedule statistics cleanup")
	}
	defer scheduler.Stop()

	// Report cache
	reportCache := newCache(ctx, cfg)
	defer reportCache.Close()

	// Score history
	recorder, closeHistory, err := newRecorder(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open score history")
	}
	defer closeHistory()

	// Services
	seoAnalyzer := analyzer.New(cfg.SEO)
	seoChecker := checker.New()
	metaGenerator := metadata.New(cfg.Site)

	auditor := audit.New(seoAnalyzer, seoChecker, metaGenerator, audit.Options{
		Cache:    reportCache,
		CacheTTL: cfg.Cache.TTL,
		Stats:    storage,
		Metrics:  m,
		History:  recorder,
	})

	router := api.NewRouter(api.Deps{
		Analyzer:    seoAnalyzer,
		Checker:     seoChecker,
		Metadata:    metaGenerator,
		Sitemap:     sitemap.New(cfg.Site),
		Auditor:     auditor,
		Stats:       storage,
		Traffic:     stats.NewTraffic(),
		Metrics:     m,
		History:     recorder,
		RateLimiter: middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst),
		DevMode:     cfg.Server.DevMode,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msgf("Server starting on http://localhost:%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// newRecorder picks the score history backend: Postgres when a DSN is set,
// the in-memory recorder in dev mode, and none otherwise.
func newRecorder(ctx context.Context, cfg *config.Config) (history.Recorder, func(), error) {
	switch {
	case cfg.Postgres.DSN != "":
		pg, err := history.NewPostgres(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, func() {}, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, func() {}, err
		}
		log.Info().Msg("score history enabled")
		return pg, pg.Close, nil
	case cfg.Server.DevMode:
		log.Info().Msg("score history kept in memory")
		return history.NewMemory(), func() {}, nil
	default:
		return nil, func() {}, nil
	}
}

func newCache(ctx context.Context, cfg *config.Config) cache.Cache {
	switch cfg.Cache.Backend {
	case "redis":
		rc := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, falling back to memory cache")
			rc.Close()
			return cache.NewMemory(cfg.Cache.MaxSize, 5*time.Minute)
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis report cache")
		return rc
	case "none":
		return cache.Nop{}
	default:
		return cache.NewMemory(cfg.Cache.MaxSize, 5*time.Minute)
	}
}
