package events

import (
	"github.com/gin-gonic/gin"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/middleware"
)

func SetupEventRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Public browsing and seat map reads
	public := rg.Group("/events")
	{
		public.GET("", controller.GetEvents)
		public.GET("/:id", controller.GetEvent)
		public.GET("/slug/:slug", controller.GetEventBySlug)
		public.GET("/:id/seatmap", controller.GetSeatmap)
	}

	// Admin management routes
	admin := rg.Group("/admin/events")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateEvent)
		admin.PUT("/:id", controller.UpdateEvent)
		admin.DELETE("/:id", controller.DeleteEvent)
	}
}
