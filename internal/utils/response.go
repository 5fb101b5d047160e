package utils

import "github.com/gin-gonic/gin"

// APIResponse is the envelope returned by every endpoint.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// Respond writes a success envelope with an optional payload.
func Respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, APIResponse{Success: true, Message: message, Data: data})
}

// RespondError writes a failure envelope with error details.
func RespondError(c *gin.Context, status int, message string, errs any) {
	c.JSON(status, APIResponse{Success: false, Message: message, Errors: errs})
}

// AbortError writes a failure envelope and stops the handler chain.
func AbortError(c *gin.Context, status int, message string, errs any) {
	c.AbortWithStatusJSON(status, APIResponse{Success: false, Message: message, Errors: errs})
}
