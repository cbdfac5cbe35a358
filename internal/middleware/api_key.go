package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "opportunityrisks/internal/errors"
	"opportunityrisks/internal/logger"
)

// APIKeyHeader carries the shared secret for write endpoints.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth guards mutating routes with a shared key compared in constant
// time. An empty configured key disables the check, which is how local
// development runs.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	if apiKey == "" {
		logger.Named("http").Warn("API_KEY not set; write endpoints are unauthenticated")
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWithAppError(c, apperrors.ErrUnauthorized)
			return
		}
		c.Next()
	}
}
