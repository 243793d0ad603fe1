// api/middleware/error_handler.go
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10" // Import validator for binding errors
	"github.com/sirupsen/logrus"

	"github.com/Annany2002/cafe-api/api/models"
	"github.com/Annany2002/cafe-api/internal/auth"
	"github.com/Annany2002/cafe-api/internal/core"
	"github.com/Annany2002/cafe-api/internal/logger"
	"github.com/Annany2002/cafe-api/internal/storage"
)

var (
	customLog = logger.NewLogger()
)

// StatusFor maps an error to its HTTP status and the key used inside the JSON envelope.
func StatusFor(err error) (int, string) {
	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, storage.ErrCafeNotFound):
		return http.StatusNotFound, "Not Found"
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, storage.ErrCafeExists):
		return http.StatusConflict, "Conflict"
	case errors.Is(err, core.ErrBadRequest),
		errors.As(err, &validationErrs),
		errors.Is(err, auth.ErrTokenMalformed),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenInvalid),
		errors.Is(err, auth.ErrUnexpectedSigningMethod):
		return http.StatusBadRequest, "Bad Request"
	default:
		return http.StatusInternalServerError, "Internal Server Error"
	}
}

// ErrorHandler creates a Gin middleware for centralized error handling.
// Handlers attach errors with c.Error; every attached error is logged, and when the
// handler wrote no response a JSON envelope is written from the last one.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, ginErr := range c.Errors {
			status, _ := StatusFor(ginErr.Err)
			entry := customLog.WithFields(logrus.Fields{
				"method": c.Request.Method,
				"path":   c.FullPath(),
				"status": status,
			})
			if status >= http.StatusInternalServerError {
				entry.Errorf("[ErrorHandler] Detected error: %v | Type: %T", ginErr.Err, ginErr.Err)
			} else {
				entry.Infof("[ErrorHandler] Request rejected: %v", ginErr.Err)
			}
		}

		if c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, key := StatusFor(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			message = "An unexpected internal server error occurred."
		}
		c.AbortWithStatusJSON(status, models.Envelope(models.EnvelopeError, key, message))
	}
}
