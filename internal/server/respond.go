package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// envelope is the uniform response shape: success carries data, failure
// carries error; never both.
type envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Error      any    `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func respondCreated(c *gin.Context, message string, data any) {
	respond(c, http.StatusCreated, message, data)
}

func respondOK(c *gin.Context, message string, data any) {
	respond(c, http.StatusOK, message, data)
}
