package reports

import (
	"github.com/gin-gonic/gin"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/middleware"
)

func SetupReportRoutes(rg *gin.RouterGroup, controller *Controller) {
	reports := rg.Group("/reports")
	reports.Use(middleware.JWTAuth(), middleware.RequireAdmin())
	{
		reports.GET("", controller.GetReport)
		reports.GET("/occupancy/:eventId", controller.GetOccupancy)
		reports.GET("/export/pdf", controller.ExportPDF)
	}
}
