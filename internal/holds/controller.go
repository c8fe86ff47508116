package holds

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/events"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) HoldSeats(ctx *gin.Context) {
	var req HoldSeatsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	hold, err := c.service.HoldSeats(ctx.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrSeatHeld):
			statusCode = http.StatusConflict
		case errors.Is(err, events.ErrEventNotFound):
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to hold seats", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Seats held successfully", hold, nil)
}

func (c *Controller) GetHold(ctx *gin.Context) {
	holdID := ctx.Param("id")
	if holdID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Hold ID is required", nil, "missing hold ID")
		return
	}

	hold, err := c.service.GetHold(ctx.Request.Context(), holdID)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrHoldNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get hold", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hold retrieved successfully", hold, nil)
}

func (c *Controller) ReleaseHold(ctx *gin.Context) {
	holdID := ctx.Param("id")
	if holdID == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Hold ID is required", nil, "missing hold ID")
		return
	}

	if err := c.service.ReleaseHold(ctx.Request.Context(), holdID); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrHoldNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to release hold", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hold released successfully", nil, nil)
}
