package halls

import (
	"errors"
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

func (c *Controller) CreateHall(ctx *gin.Context) {
	var req CreateHallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	hall, err := c.service.CreateHall(ctx.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusBadRequest
		if errors.Is(err, ErrNameTaken) {
			statusCode = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to create hall", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Hall created successfully", hall, nil)
}

func (c *Controller) GetHall(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Hall ID is required", nil, "missing hall ID")
		return
	}

	hall, err := c.service.GetHallByID(ctx.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrHallNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to get hall", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hall retrieved successfully", hall, nil)
}

func (c *Controller) GetHalls(ctx *gin.Context) {
	var query HallListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	result, err := c.service.GetHalls(ctx.Request.Context(), query)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to get halls", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Halls retrieved successfully", result, nil)
}

func (c *Controller) UpdateHall(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Hall ID is required", nil, "missing hall ID")
		return
	}

	var req UpdateHallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	hall, err := c.service.UpdateHall(ctx.Request.Context(), id, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, ErrHallNotFound) {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to update hall", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hall updated successfully", hall, nil)
}

func (c *Controller) DeleteHall(ctx *gin.Context) {
	id := ctx.Param("id")
	if id == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Hall ID is required", nil, "missing hall ID")
		return
	}

	if err := c.service.DeleteHall(ctx.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		switch {
		case errors.Is(err, ErrHallNotFound):
			statusCode = http.StatusNotFound
		case errors.Is(err, ErrHallInUse):
			statusCode = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", statusCode, "Failed to delete hall", nil, err.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Hall deleted successfully", nil, nil)
}
