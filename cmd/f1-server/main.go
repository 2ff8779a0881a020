package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/f1stats/f1-stats-server/internal/server"
	"github.com/f1stats/f1-stats-server/pkg/cache"
	"github.com/f1stats/f1-stats-server/pkg/client"
	"github.com/f1stats/f1-stats-server/pkg/logging"
	"github.com/f1stats/f1-stats-server/pkg/pagination"
	"github.com/f1stats/f1-stats-server/pkg/season"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	logger := logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnvBool("LOG_PRETTY", false),
		Output: os.Stderr,
	})

	// Configuration from environment
	port := getEnv("PORT", "8080")
	baseURL := getEnv("JOLPICA_BASE_URL", client.DefaultBaseURL)
	userAgent := getEnv("USER_AGENT", "f1-race-results-app/1.0.0")
	pageSize := getEnvInt("PAGE_SIZE", pagination.DefaultPageSize)
	httpTimeout := getEnvDuration("HTTP_TIMEOUT", client.DefaultTimeout)
	cacheCapacity := getEnvInt("CACHE_CAPACITY", cache.DefaultCapacity)
	cacheTTL := getEnvDuration("CACHE_TTL", time.Hour)
	redisURL := os.Getenv("REDIS_URL")

	apiClient, err := client.New(client.Config{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Timeout:   httpTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Jolpica client")
	}

	// Cache backend: redis when configured, in-process LRU otherwise.
	var store cache.Store
	var ready func(context.Context) error
	if redisURL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr: redisURL,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Fatal().Err(err).Str("redis_url", redisURL).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		store = cache.NewRedisStore(redisClient, cacheTTL)
		ready = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
		logger.Info().Str("redis_url", redisURL).Msg("Using redis cache backend")
	} else {
		store = cache.NewMemoryStore(cacheCapacity, cacheTTL)
		logger.Info().Int("capacity", cacheCapacity).Msg("Using in-memory cache backend")
	}

	svc := season.New(apiClient, pageSize)
	srv := server.New(svc, store, ready, logger)

	httpServer := &http.Server{
		Addr:              ":" + port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().
			Str("addr", httpServer.Addr).
			Str("upstream", baseURL).
			Str("user_agent", userAgent).
			Msg("Starting F1 stats server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
