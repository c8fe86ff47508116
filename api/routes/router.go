// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/analytics"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/auth"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/bookings"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/events"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/halls"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/holds"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/payments"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/reports"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/config"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/database"
	"github.com/weakestcomrade/dexviewcinema-sub000/pkg/cache"
)

// Router holds all route dependencies
type Router struct {
	config       *config.Config
	db           *database.DB
	cacheService cache.Service
	holdStore    holds.Store
	notifier     bookings.Notifier

	// services shared across modules after wiring
	bookingService bookings.Service
}

// NewRouter creates a new router instance. cacheService, holdStore and
// notifier may be nil; the modules degrade gracefully without them.
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, holdStore holds.Store, notifier bookings.Notifier) *Router {
	return &Router{
		config:       cfg,
		db:           db,
		cacheService: cacheService,
		holdStore:    holdStore,
		notifier:     notifier,
	}
}

// BookingService exposes the wired booking service so main can hand it to the
// pending-payment sweeper. Only valid after SetupRoutes.
func (r *Router) BookingService() bookings.Service {
	return r.bookingService
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		// Auth
		authRepo := auth.NewRepository(r.db.GetPostgreSQL())
		authService := auth.NewService(authRepo, r.config)
		auth.SetupAuthRoutes(api, auth.NewController(authService))

		// Halls
		hallRepo := halls.NewRepository(r.db.GetPostgreSQL())
		hallService := halls.NewService(hallRepo)
		if r.cacheService != nil {
			hallService.SetCacheService(r.cacheService)
		}
		halls.SetupHallRoutes(api, halls.NewController(hallService))

		// Events, fed by the halls service and the booking claim index
		eventRepo := events.NewRepository(r.db.GetPostgreSQL())
		eventService := events.NewService(eventRepo, hallService)
		if r.cacheService != nil {
			eventService.SetCacheService(r.cacheService)
		}

		// Bookings
		bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
		bookingService := bookings.NewService(bookingRepo, eventService, r.config.Booking)
		if r.cacheService != nil {
			bookingService.SetCacheService(r.cacheService)
		}
		if r.notifier != nil {
			bookingService.SetNotifier(r.notifier)
		}
		r.bookingService = bookingService

		// Seat maps need the live claim index before routes go up
		eventService.SetClaimSource(bookingRepo)
		events.SetupEventRoutes(api, events.NewController(eventService))

		// Seat holds
		holdService := holds.NewService(r.holdStore, eventService, r.config.Redis.SeatHoldTTL)
		bookingService.SetHoldValidator(holdService)
		holds.SetupHoldRoutes(api, holds.NewController(holdService))

		bookings.SetupBookingRoutes(api, bookings.NewController(bookingService))

		// Payments
		paystackClient := payments.NewPaystackClient(r.config.Paystack.SecretKey, r.config.Paystack.BaseURL)
		paymentService := payments.NewService(paystackClient, bookingService, r.config.Paystack, r.config.Monnify)
		payments.SetupPaymentRoutes(api, payments.NewController(paymentService))

		// Reports
		reportService := reports.NewService(bookingRepo, eventService)
		reports.SetupReportRoutes(api, reports.NewController(reportService))

		// Analytics
		analyticsRepo := analytics.NewRepository(r.db.GetPostgreSQL())
		analyticsService := analytics.NewService(analyticsRepo)
		if r.cacheService != nil {
			analyticsService.SetCacheService(r.cacheService)
		}
		analytics.SetupAnalyticsRoutes(api, analytics.NewController(analyticsService))
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "dexviewcinema-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "dexviewcinema-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}
