package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes the standard envelope with the given HTTP status code.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, Envelope{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
		ServedAt:   time.Now().UTC(),
	})
}
