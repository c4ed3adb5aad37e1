package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the standard JSON envelope for every API reply.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a standard success response.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created sends a standard resource created response.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standard error response. detail is only surfaced to the
// caller while gin runs in debug mode; production callers get the message
// alone.
func Error(c *gin.Context, statusCode int, message string, detail string) {
	resp := Response{
		Success: false,
		Message: message,
	}
	if gin.IsDebugging() {
		resp.Error = detail
	}
	c.JSON(statusCode, resp)
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message, "")
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, "")
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, "")
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, "")
}

// InternalServerError sends a 500 response with a generic message; the
// underlying detail is only exposed in debug mode.
func InternalServerError(c *gin.Context, message string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	Error(c, http.StatusInternalServerError, message, detail)
}
