package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meddesk/frontdesk-api/pkg/errors"
)

// Response wraps all API responses. The success flag and message mirror
// the result values the engine returns, so the presentation layer can
// surface them verbatim.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithCreated sends a success response for a newly created record
func RespondWithCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	c.JSON(statusFor(err), Response{
		Success: false,
		Message: messageFor(err),
	})
}

func statusFor(err error) int {
	switch errors.CodeOf(err) {
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrDuplicate:
		return http.StatusConflict
	case errors.ErrValidation, errors.ErrInvalidRange, errors.ErrInvalidSelection:
		return http.StatusBadRequest
	case errors.ErrInvalidState:
		return http.StatusUnprocessableEntity
	case errors.ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func messageFor(err error) string {
	if errors.CodeOf(err) == errors.ErrInternal {
		return "internal error"
	}
	return err.Error()
}
