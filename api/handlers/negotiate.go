// api/handlers/negotiate.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// isBrowserCall reports whether the client asked for HTML.
// Browsers list text/html in Accept; API clients send application/json, */* or nothing.
func isBrowserCall(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}

// parseCafeID reads the :id path parameter. Only positive integers name a cafe.
func parseCafeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
