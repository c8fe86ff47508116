package analytics

import (
	"github.com/gin-gonic/gin"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/middleware"
)

func SetupAnalyticsRoutes(rg *gin.RouterGroup, controller *Controller) {
	admin := rg.Group("/admin/analytics")
	admin.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", controller.GetDashboard)
		admin.GET("/revenue", controller.GetRevenueBreakdown)
		admin.GET("/occupancy", controller.GetHallOccupancy)
	}
}
