package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Stable error kinds returned by the service layer. Handlers map these to
// HTTP statuses; clients branch on the kind string, so renaming one is a
// breaking API change.
const (
	ErrNotFound     = "not_found"
	ErrInvalidState = "invalid_state"
	ErrForbidden    = "forbidden"
	ErrValidation   = "validation"
	ErrConflict     = "conflict"
)

// ServiceError carries a machine-readable kind alongside the human message.
type ServiceError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError builds a ServiceError of the given kind.
func NewServiceError(kind, message string) *ServiceError {
	return &ServiceError{Kind: kind, Message: message}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	GetLogger().Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError maps a service error to its HTTP status. Anything that is not
// a ServiceError is a 500.
func RespondError(c *gin.Context, err error) {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		GetLogger().Error("Unexpected service failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal Server Error"})
		return
	}

	status := http.StatusInternalServerError
	switch svcErr.Kind {
	case ErrNotFound:
		status = http.StatusNotFound
	case ErrInvalidState:
		status = http.StatusConflict
	case ErrForbidden:
		status = http.StatusForbidden
	case ErrValidation:
		status = http.StatusBadRequest
	case ErrConflict:
		status = http.StatusConflict
	}
	c.JSON(status, ErrorResponse{Message: svcErr.Message, Kind: svcErr.Kind})
}
