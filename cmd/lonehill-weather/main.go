package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/pwelgemoed-sys/lonehill-weather/internal/api/http"
	"github.com/pwelgemoed-sys/lonehill-weather/internal/config"
	"github.com/pwelgemoed-sys/lonehill-weather/internal/ecowitt"
	"github.com/pwelgemoed-sys/lonehill-weather/internal/kv"
	"github.com/pwelgemoed-sys/lonehill-weather/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.ApplicationKey == "" || cfg.APIKey == "" || cfg.DeviceMAC == "" {
		log.Printf("WARN: station api credentials incomplete; /api/weather will answer 500 until they are set")
	}

	// Shared HTTP client for outbound station API calls.
	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	client := ecowitt.NewClient(ecowitt.Config{
		BaseURL:        cfg.BaseURL,
		ApplicationKey: cfg.ApplicationKey,
		APIKey:         cfg.APIKey,
		DeviceMAC:      cfg.DeviceMAC,
		Timezone:       cfg.Timezone,
		HTTPClient:     httpClient,
	})

	// Trend persistence is optional: without Redis the report carries
	// an empty trend history rather than failing requests.
	var trends *weather.TrendStore
	if cfg.RedisAddr != "" {
		redisStore := kv.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer redisStore.Close()
		trends = weather.NewTrendStore(redisStore, cfg.TrendKey, cfg.TrendWindow)
	} else {
		log.Printf("INFO: REDIS_ADDR not set; trend history disabled")
	}

	service := weather.NewService(client, trends)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "lonehill-weather",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "lonehill-weather",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
