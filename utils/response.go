package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body returned by the query endpoints
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorJSON sends {"error": message} with the given status
func ErrorJSON(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	ErrorJSON(c, http.StatusNotFound, message)
}

// InternalServerError sends a 500 response without leaking details
func InternalServerError(c *gin.Context) {
	ErrorJSON(c, http.StatusInternalServerError, ErrServerError)
}

// EmptyStatus sends a status code with an empty body
func EmptyStatus(c *gin.Context, statusCode int) {
	c.Status(statusCode)
	c.Writer.WriteHeaderNow()
}
