package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"articles-gateway/api"
	"articles-gateway/articles"
	"articles-gateway/articles/application"
	articlesinfra "articles-gateway/articles/infra"
	"articles-gateway/logging"
	"articles-gateway/middleware/ratelimit"
	"articles-gateway/middleware/ratelimit/domain"
	"articles-gateway/middleware/ratelimit/infra"
)

func main() {
	loadDotenv(".env")

	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	root, err := logging.New(logging.Config{Level: cfg.logLevel, Format: cfg.logFormat})
	if err != nil {
		log.Fatalf("logging error: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, root); err != nil {
		root.Error("gateway stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, root *logging.Root) error {
	var rdb *redis.Client
	if cfg.needsRedis() {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
	}

	events := eventSink(cfg, rdb)

	h := api.NewRouter(api.Options{
		Admission: admission(ctx, cfg, rdb, events, root.Named("ratelimit")),
		Articles:  catalogHandler(cfg, root.Named("articles")),
	})

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	root.Info("gateway listening", "addr", cfg.listenAddr, "route", articles.Route)
	root.Info("articles source", "owner", cfg.githubOwner, "repo", cfg.githubRepo, "branch", cfg.githubBranch,
		"dir", cfg.articlesDir, "token", cfg.githubToken != "", "fetchConcurrency", cfg.fetchMax)
	root.Info("rate", "enabled", cfg.rateEnabled, "backend", cfg.rateBackend, "keyHeader", cfg.keyHeader,
		"trustXFF", cfg.trustXFF, "stats", cfg.rateStatsEnabled, "statsBackend", cfg.rateStatsBackend)

	err := srv.ListenAndServe()
	logStats(root, events)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// eventSink escolhe onde ficam as estatísticas de admissão. Em memória,
// os contadores só aparecem no log de shutdown.
func eventSink(cfg config, rdb *redis.Client) domain.EventSink {
	if !cfg.rateEnabled || !cfg.rateStatsEnabled {
		return nil
	}
	if cfg.rateStatsBackend == backendRedis {
		return infra.NewRedisEventSink(
			rdb,
			infra.WithEventsPrefix(cfg.rateStatsPrefix),
			infra.WithEventsTTL(cfg.rateStatsTTL),
			infra.WithEventsBucket(cfg.rateStatsBucket),
			infra.WithEventsTrackKeys(cfg.rateStatsTrackKeys),
		)
	}
	return infra.NewMemoryEventSink(infra.WithTrackKeys(cfg.rateStatsTrackKeys))
}

func logStats(logger logging.Logger, events domain.EventSink) {
	mem, ok := events.(*infra.MemoryEventSink)
	if !ok {
		return
	}
	total := mem.Total()
	logger.Info("admission stats", "admitted", total.Admitted, "rejected", total.Rejected)
	for route, c := range mem.ByRoute() {
		logger.Info("admission stats by route", "route", route, "admitted", c.Admitted, "rejected", c.Rejected)
	}
}

// admission monta o gate; com RATE_ENABLED=false todas as requests passam.
func admission(ctx context.Context, cfg config, rdb *redis.Client, events domain.EventSink, logger logging.Logger) func(http.Handler) http.Handler {
	if !cfg.rateEnabled {
		return nil
	}

	var checker domain.Checker
	switch cfg.rateBackend {
	case backendRedis:
		checker = infra.NewRedisWindow(rdb, cfg.rateLimit, cfg.ratePeriod)
	default:
		store := infra.NewBucketStore(cfg.rateRPS, cfg.rateBurst)
		store.StartJanitor(ctx)
		checker = store
	}

	return ratelimit.Middleware(ratelimit.Options{
		Checker: checker,
		Events:  events,
		Key: ratelimit.KeyOptions{
			Header:             cfg.keyHeader,
			TrustXForwardedFor: cfg.trustXFF,
		},
		RetryAfter:          cfg.retryAfter,
		AddRateLimitHeaders: cfg.addHeaders,
		Logger:              logger,
	})
}

func catalogHandler(cfg config, logger logging.Logger) http.Handler {
	catalog := application.Catalog{
		Source: &articlesinfra.GitHubSource{
			HTTP:    &http.Client{},
			BaseURL: cfg.githubAPIURL,
			Owner:   cfg.githubOwner,
			Repo:    cfg.githubRepo,
			Branch:  cfg.githubBranch,
			Token:   cfg.githubToken,
		},
		Extract: articlesinfra.ExtractMetadata,
		Dir:     cfg.articlesDir,
		Logger:  logger,
	}
	if cfg.fetchMax > 0 {
		catalog.Pool = infra.NewChanPool(cfg.fetchMax)
	}
	return articles.Handler{Catalog: catalog, Logger: logger}
}
