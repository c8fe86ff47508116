package holds

import (
	"github.com/gin-gonic/gin"
)

func SetupHoldRoutes(rg *gin.RouterGroup, controller *Controller) {
	// Holds are taken before checkout, so no auth; the rate limiter's
	// booking-critical tier throttles abuse.
	seats := rg.Group("/seats")
	{
		seats.POST("/hold", controller.HoldSeats)
		seats.GET("/hold/:id", controller.GetHold)
		seats.DELETE("/hold/:id", controller.ReleaseHold)
	}
}
