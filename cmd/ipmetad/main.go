package main

import (
	"net/http"

	ipmeta "github.com/ipmeta/ipmeta-go"
	"github.com/ipmeta/ipmeta-go/cache"
	"github.com/ipmeta/ipmeta-go/internal/config"
	"github.com/ipmeta/ipmeta-go/internal/handler"
	"github.com/ipmeta/ipmeta-go/internal/logger"
	"github.com/ipmeta/ipmeta-go/internal/router"
	"github.com/ipmeta/ipmeta-go/internal/service"
	"github.com/ipmeta/ipmeta-go/metrics"
)

// ipmetad is a caching lookup proxy: it exposes the ipmeta client library
// over HTTP so that many local consumers share one upstream quota and one
// response cache.
func main() {
	appConfig := config.Load()

	appLogger := setupLogger(appConfig)
	metricsCollector := metrics.New()

	ipHandler := setupHandler(appConfig, appLogger, metricsCollector)
	lookupService := service.NewLookupService(ipHandler, appLogger)
	lookupHandler := handler.NewLookupHandler(lookupService)
	appRouter := router.SetupRouter(lookupHandler, metricsCollector, appLogger)

	startServer(appConfig, appRouter, appLogger)
}

// setupLogger initializes the structured logger.
func setupLogger(appConfig *config.Config) *logger.Logger {
	appLogger := logger.New(logger.Config{
		Level:  appConfig.LogLevel,
		Pretty: appConfig.LogPretty,
	})

	appLogger.Info().Msg("Starting ipmetad...")
	appLogger.Info().
		Str("port", appConfig.Port).
		Str("cache_backend", appConfig.CacheBackend).
		Int("cache_maxsize", appConfig.CacheMaxSize).
		Dur("cache_ttl", appConfig.CacheTTL).
		Dur("request_timeout", appConfig.RequestTimeout).
		Bool("token_configured", appConfig.AccessToken != "").
		Msg("Configuration loaded")

	return appLogger
}

// setupHandler builds the library Handler with the configured cache backend.
func setupHandler(appConfig *config.Config, log *logger.Logger, m *metrics.Metrics) *ipmeta.Handler {
	opts := []ipmeta.Option{
		ipmeta.WithLogger(*log.WithComponent("ipmeta").Logger),
		ipmeta.WithMetrics(m),
		ipmeta.WithRequestOptions(ipmeta.RequestOptions{
			Timeout: appConfig.RequestTimeout,
			BaseURL: appConfig.BaseURL,
		}),
	}

	switch appConfig.CacheBackend {
	case "memory":
		opts = append(opts, ipmeta.WithCacheOptions(cache.Options{
			MaxSize: appConfig.CacheMaxSize,
			TTL:     appConfig.CacheTTL,
		}))

	case "redis":
		redisCache, err := cache.NewRedis(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB, appConfig.CacheTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Redis cache")
		}
		log.Info().Str("addr", appConfig.RedisAddr).Msg("Redis cache initialized")
		opts = append(opts, ipmeta.WithCache(redisCache))

	default:
		log.Fatal().Str("backend", appConfig.CacheBackend).Msg("Unknown cache backend")
	}

	ipHandler, err := ipmeta.New(appConfig.AccessToken, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize lookup handler")
	}
	return ipHandler
}

// startServer starts the HTTP server and blocks.
func startServer(appConfig *config.Config, appRouter http.Handler, log *logger.Logger) {
	serverAddr := ":" + appConfig.Port

	log.Info().
		Str("port", appConfig.Port).
		Str("api_endpoint", "http://localhost:"+appConfig.Port+"/v1/lookup?ip=<ip>").
		Str("health_check", "http://localhost:"+appConfig.Port+"/health").
		Str("metrics", "http://localhost:"+appConfig.Port+"/metrics").
		Msg("Server is running")

	log.Fatal().Err(http.ListenAndServe(serverAddr, appRouter)).Msg("Server failed")
}
