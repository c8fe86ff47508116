package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) GetDashboard(ctx *gin.Context) {
	dashboard, err := c.service.GetDashboardAnalytics(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get dashboard analytics", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Dashboard analytics retrieved successfully", dashboard, nil)
}

func (c *Controller) GetRevenueBreakdown(ctx *gin.Context) {
	breakdown, err := c.service.GetRevenueBreakdown(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get revenue breakdown", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Revenue breakdown retrieved successfully", breakdown, nil)
}

func (c *Controller) GetHallOccupancy(ctx *gin.Context) {
	occupancy, err := c.service.GetHallOccupancy(ctx.Request.Context())
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get hall occupancy", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hall occupancy retrieved successfully", occupancy, nil)
}
