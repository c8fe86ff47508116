package payments

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weakestcomrade/dexviewcinema-sub000/internal/bookings"
	"github.com/weakestcomrade/dexviewcinema-sub000/internal/shared/utils/response"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

type initializeRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

type verifyRequest struct {
	Reference string `json:"reference" binding:"required,max=64"`
}

func (c *Controller) InitializePayment(ctx *gin.Context) {
	var req initializeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	result, err := c.service.InitializePayment(ctx.Request.Context(), req.BookingID)
	if err != nil {
		statusCode := http.StatusBadGateway
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, bookings.ErrNotPending):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to initialize payment", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment initialized successfully", result, nil)
}

func (c *Controller) VerifyPayment(ctx *gin.Context) {
	var req verifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	booking, err := c.service.VerifyPayment(ctx.Request.Context(), req.Reference)
	if err != nil {
		statusCode := http.StatusBadGateway
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrPaymentNotSuccessful), errors.Is(err, ErrAmountMismatch), errors.Is(err, bookings.ErrNotPending):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to verify payment", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Payment verified successfully", booking, nil)
}

func (c *Controller) MonnifyKeys(ctx *gin.Context) {
	response.RespondJSON(ctx, "success", http.StatusOK, "Monnify keys retrieved successfully", c.service.MonnifyKeys(), nil)
}

// PaystackWebhook acknowledges signed deliveries from the gateway. The raw
// body is read before any parsing because the signature covers the exact
// bytes sent.
func (c *Controller) PaystackWebhook(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, 1<<20))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to read webhook body", nil, err.Error())
		return
	}

	signature := ctx.GetHeader("x-paystack-signature")
	if err := c.service.HandlePaystackWebhook(ctx.Request.Context(), body, signature); err != nil {
		if errors.Is(err, ErrBadSignature) {
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid webhook signature", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Failed to process webhook", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Webhook processed", nil, nil)
}
