package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the response shape every endpoint returns. Data never
// carries a password hash; the user type excludes it from JSON.
type Envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Token   string            `json:"token,omitempty"`
}

func RespondSuccess(ctx *gin.Context, status int, message string, data any, token string) {
	ctx.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Token:   token,
	})
}

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, Envelope{
		Success: false,
		Message: message,
	})
}

func RespondValidation(ctx *gin.Context, fieldErrors map[string]string) {
	ctx.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation failed",
		Errors:  fieldErrors,
	})
}

func RespondInternal(ctx *gin.Context) {
	RespondError(ctx, http.StatusInternalServerError, "Internal server error")
}
