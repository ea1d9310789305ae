package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/XavierGabriel92/velt-booking/internal/booking"
	"github.com/XavierGabriel92/velt-booking/internal/handler"
	"github.com/XavierGabriel92/velt-booking/internal/ratelimit"
	"github.com/XavierGabriel92/velt-booking/internal/search"
	"github.com/XavierGabriel92/velt-booking/internal/upstream"
)

type Config struct {
	Port            string
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
	PollInterval    time.Duration
	PollTimeout     time.Duration
	Provider        string
	RedisEnabled    bool
	RedisHost       string
	RedisPort       string
	RedisPassword   string
}

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewEndpointLimiterWithDefaults()
	// Polling dominates the call volume; spread the rest thinner.
	rateLimiter.SetEndpointLimit("session", 10, 20)
	rateLimiter.SetEndpointLimit("trigger", 2, 5)
	rateLimiter.SetEndpointLimit("return-flights", 2, 5)
	rateLimiter.SetEndpointLimit("confirm", 1, 3)

	client := upstream.NewHTTPClient(upstream.HTTPConfig{
		BaseURL: cfg.UpstreamBaseURL,
		Timeout: cfg.UpstreamTimeout,
		Limiter: rateLimiter,
	})

	poller := search.NewPoller(client, search.Config{
		Interval: cfg.PollInterval,
		Timeout:  cfg.PollTimeout,
		Provider: cfg.Provider,
	})
	returns := search.NewReturnFetcher(client)

	var sessions booking.SessionStore
	var lastSearches booking.LastSearchStore
	if cfg.RedisEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisHost + ":" + cfg.RedisPort,
			Password: cfg.RedisPassword,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		sessions = booking.NewRedisSessionStore(rdb)
		lastSearches = booking.NewRedisLastSearchStore(rdb)
		log.Printf("Redis stores enabled (host: %s:%s)", cfg.RedisHost, cfg.RedisPort)
	} else {
		sessions = booking.NewMemorySessionStore()
		lastSearches = booking.NewMemoryLastSearchStore()
		log.Println("Redis disabled, using in-memory stores")
	}

	searchHandler := handler.NewSearchHandler(poller, returns, lastSearches)
	bookingHandler := handler.NewBookingHandler(sessions, client)

	api := e.Group("/api/v1", handler.RequireAuth)
	api.POST("/flights/search", searchHandler.Search)
	api.POST("/flights/return", searchHandler.ReturnFlights)
	api.GET("/searches/recent", searchHandler.RecentSearches)
	api.PUT("/booking/session", bookingHandler.SaveSession)
	api.GET("/booking/session", bookingHandler.GetSession)
	api.DELETE("/booking/session", bookingHandler.ClearSession)
	api.POST("/booking/confirm", bookingHandler.Confirm)
	e.GET("/health", handler.HealthHandler)

	log.Printf("Starting velt booking server on port %s (upstream: %s)", cfg.Port, cfg.UpstreamBaseURL)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		UpstreamBaseURL: getEnv("UPSTREAM_API_URL", "http://localhost:5000"),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		PollInterval:    getEnvDuration("POLL_INTERVAL", search.DefaultPollInterval),
		PollTimeout:     getEnvDuration("POLL_TIMEOUT", search.DefaultPollTimeout),
		Provider:        getEnv("SEARCH_PROVIDER", "railway"),
		RedisEnabled:    getEnvBool("REDIS_ENABLED", true),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
