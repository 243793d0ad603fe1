// api/middleware/auth_middleware.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Annany2002/cafe-api/api/models"
	"github.com/Annany2002/cafe-api/internal/auth" // Import internal auth logic and errors
)

// APIKeyQueryParam is the query parameter carrying the admin key.
const APIKeyQueryParam = "api-key"

const msgForbidden = "Sorry, that's not allowed. Make sure you have the correct api-key."

// APIKeyMiddleware creates a gin middleware that rejects requests without the admin api key.
// It runs before the handler, so a wrong key is answered with 403 whether or not the target exists.
func APIKeyMiddleware(keys *auth.APIKeyVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := keys.Verify(c.Query(APIKeyQueryParam)); err != nil {
			customLog.Warnf("APIKeyMiddleware: Rejected %s %s from %s: %v", c.Request.Method, c.Request.URL.Path, c.ClientIP(), err)
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusForbidden, models.Envelope(models.EnvelopeResponse, "Forbidden", msgForbidden))
			return
		}

		c.Next() // Continue to the next handler
	}
}
