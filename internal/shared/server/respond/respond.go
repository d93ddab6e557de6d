package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-ats/internal/shared/apperr"
	"smart-ats/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Error sends a standardized error response.
func Error(c *gin.Context, status int, code, message string, details any) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// FromError maps a classified pipeline error to a status and code and sends
// it. The error message is shown to the user as is.
func FromError(c *gin.Context, err error) {
	status, code := Classify(err)
	Error(c, status, code, err.Error(), nil)
}

// Classify returns the HTTP status and error code for err.
func Classify(err error) (int, string) {
	switch kind := apperr.KindOf(err); {
	case errors.Is(kind, apperr.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(kind, apperr.ErrExtraction):
		return http.StatusUnprocessableEntity, "extraction_error"
	case errors.Is(kind, apperr.ErrRemote):
		return http.StatusBadGateway, "llm_error"
	case errors.Is(kind, apperr.ErrConfig):
		return http.StatusServiceUnavailable, "configuration_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
