package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"job-calendar-feed/internal/api"
	"job-calendar-feed/internal/cache"
	"job-calendar-feed/internal/config"
	"job-calendar-feed/internal/feed"
	"job-calendar-feed/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := buildLogger(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	sugar := logger.Sugar()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		<-ch
		cancel()
	}()

	client := upstream.New(cfg, sugar)
	opCache := cache.NewOperationCache(cfg.OperationCacheTTL, cfg.OperationCacheMax)
	enricher := feed.NewEnricher(client, opCache, cfg.EnrichConcurrency, sugar)

	var respCache cache.ResponseCache = cache.NewMemoryResponseCache(cfg.ResponseCacheTTL)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		respCache = cache.NewRedisResponseCache(rdb, cfg.ResponseCacheTTL)
		sugar.Infow("using redis response cache", "addr", cfg.RedisAddr)
	}

	server := api.New(cfg, client, enricher, respCache, sugar)
	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: server.Router(),
	}

	sugar.Infow("feed listening", "port", cfg.HTTPPort)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("listen", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = httpServer.Shutdown(shutdownCtx)
}

func buildLogger(env string) (*zap.Logger, error) {
	if env == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
