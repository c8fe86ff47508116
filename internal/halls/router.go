package halls

import (
	"github.com/gin-gonic/gin"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/middleware"
)

func SetupHallRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Public reads: the booking page needs hall details without auth
	public := rg.Group("/halls")
	{
		public.GET("", controller.GetHalls)
		public.GET("/:id", controller.GetHall)
	}

	// Admin management routes
	admin := rg.Group("/admin/halls")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.POST("", controller.CreateHall)
		admin.PUT("/:id", controller.UpdateHall)
		admin.DELETE("/:id", controller.DeleteHall)
	}
}
