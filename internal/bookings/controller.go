package bookings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/events"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/holds"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/seatmap"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) CreateBooking(ctx *gin.Context) {
	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusBadRequest
		switch {
		case errors.Is(err, ErrSeatAlreadyBooked), errors.Is(err, seatmap.ErrSeatBooked):
			statusCode = http.StatusConflict
		case errors.Is(err, events.ErrEventNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, holds.ErrHoldNotFound), errors.Is(err, holds.ErrHoldMismatch):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to create booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

func (c *Controller) GetBooking(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking ID is required", nil, "missing booking ID")
		return
	}

	booking, err := c.service.GetBookingByID(ctx.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrBookingNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (c *Controller) GetBookingByCode(ctx *gin.Context) {
	code := ctx.Param("code")
	if code == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking code is required", nil, "missing booking code")
		return
	}

	booking, err := c.service.GetBookingByCode(ctx.Request.Context(), code)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrBookingNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (c *Controller) GetBookings(ctx *gin.Context) {
	var query BookingListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetBookings(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get bookings", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", result, nil)
}

func (c *Controller) CancelBooking(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Booking ID is required", nil, "missing booking ID")
		return
	}

	booking, err := c.service.CancelBooking(ctx.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrBookingNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrAlreadyCancelled):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to cancel booking", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}
