package bookings

import (
	"github.com/gin-gonic/gin"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/middleware"
)

func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Guest checkout: customers book without an account, so creation and
	// code lookup are public. The rate limiter's booking tier throttles both.
	public := rg.Group("/bookings")
	{
		public.POST("", controller.CreateBooking)
		public.GET("/code/:code", controller.GetBookingByCode)
	}

	// Admin booking management
	admin := rg.Group("/admin/bookings")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("", controller.GetBookings)
		admin.GET("/:id", controller.GetBooking)
		admin.POST("/:id/cancel", controller.CancelBooking)
	}
}
