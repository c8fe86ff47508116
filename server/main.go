package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/weakestcomrade/dexviewcinema-sub000/api/routes"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/bookings"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/holds"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/notifications"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/config"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/database"
	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/cache"
	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/logger"
	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/ratelimit"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to initialize database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Cache service rides on the same Redis connection as the holds
	var cacheService cache.Service
	if db.GetRedisClient() != nil {
		cacheService = cache.NewService(db.GetRedisClient())
	}

	// Seat hold store: Redis with atomic Lua scripts, or the in-process
	// store when Redis is unavailable
	var holdStore holds.Store
	if db.GetRedisClient() != nil {
		redisStore := holds.NewRedisStore(db.GetRedisClient())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := redisStore.PreloadScripts(ctx); err != nil {
			appLogger.Error("Failed to preload Redis Lua scripts", slog.Any("error", err))
			// Scripts fall back to Eval on first use
		}
		cancel()
		holdStore = redisStore
	} else {
		appLogger.Info("Redis unavailable, using in-memory seat hold store")
		holdStore = holds.NewMemoryStore()
	}

	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), &ratelimit.Config{
			Enabled:                 cfg.RateLimit.Enabled,
			WindowDuration:          cfg.RateLimit.WindowDuration,
			DefaultRequests:         cfg.RateLimit.DefaultRequests,
			PublicRequests:          cfg.RateLimit.PublicRequests,
			AuthRequests:            cfg.RateLimit.AuthRequests,
			BookingRequests:         cfg.RateLimit.BookingRequests,
			BookingCriticalRequests: cfg.RateLimit.BookingCriticalRequests,
			AdminRequests:           cfg.RateLimit.AdminRequests,
			AnalyticsRequests:       cfg.RateLimit.AnalyticsRequests,
			HealthRequests:          cfg.RateLimit.HealthRequests,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	notificationCtx, notificationCancel := context.WithCancel(context.Background())
	defer notificationCancel()

	notificationService := setupNotifications(notificationCtx, cfg, appLogger)
	defer func() {
		if err := notificationService.Close(); err != nil {
			appLogger.Error("Error closing notification service", slog.Any("error", err))
		}
	}()

	engine := setupEngine(cfg, rateLimiter, appLogger)
	appRouter := routes.NewRouter(cfg, db, cacheService, holdStore, notificationService)
	appRouter.SetupRoutes(engine)

	// Background sweep releases pending bookings whose payment window lapsed
	sweeper, err := bookings.NewSweeper(appRouter.BookingService(), cfg.Booking.SweepInterval)
	if err != nil {
		appLogger.Error("failed to create booking sweeper", slog.Any("error", err))
		os.Exit(1)
	}
	if err := sweeper.Start(); err != nil {
		appLogger.Error("failed to start booking sweeper", slog.Any("error", err))
		os.Exit(1)
	}
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("version", cfg.APIVersion),
			slog.Bool("redis", db.GetRedisClient() != nil),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
			slog.Bool("kafka", cfg.Kafka.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

// setupNotifications wires the Kafka producer and, when SMTP is configured,
// the consumer workers that deliver booking emails. Without Kafka the service
// runs in log-only mode.
func setupNotifications(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) *notifications.Service {
	if !cfg.Kafka.Enabled {
		appLogger.Info("Kafka disabled, booking notifications run in log-only mode")
		return notifications.NewService(nil)
	}

	producer, err := notifications.NewKafkaProducer(notifications.ProducerConfig{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
	})
	if err != nil {
		appLogger.Error("Failed to create Kafka producer, notifications run in log-only mode", slog.Any("error", err))
		return notifications.NewService(nil)
	}

	if cfg.Email.SMTPHost != "" {
		emailService, err := notifications.NewSMTPEmailService(cfg.Email)
		if err != nil {
			appLogger.Error("Failed to create email service, booking emails disabled", slog.Any("error", err))
		} else {
			consumer, err := notifications.NewKafkaConsumer(notifications.ConsumerConfig{
				Brokers: cfg.Kafka.Brokers,
				GroupID: cfg.Kafka.GroupID,
				Topic:   cfg.Kafka.Topic,
			}, emailService)
			if err != nil {
				appLogger.Error("Failed to create Kafka consumer, booking emails disabled", slog.Any("error", err))
			} else if err := consumer.Start(ctx, 3); err != nil {
				appLogger.Error("Failed to start notification workers", slog.Any("error", err))
			}
		}
	} else {
		appLogger.Info("SMTP not configured, booking emails disabled")
	}

	return notifications.NewService(producer)
}

func setupEngine(cfg *config.Config, rateLimiter *ratelimit.RateLimiter, appLogger *logger.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(requestLoggerMiddleware(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "x-paystack-signature"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
	}

	return engine
}

func requestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}
