package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "opportunityrisks/internal/errors"
	"opportunityrisks/internal/logger"
)

func abortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}

// ErrorHandler converts errors attached with c.Error into the JSON error
// body used across the API. Handlers that already wrote a response are left
// alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log := logger.Named("http").With("request_id", c.GetString(requestIDKey), "path", c.Request.URL.Path)

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				log.Errorw("app error", "code", appErr.Code, "internal", appErr.Internal.Error())
			}
			abortWithAppError(c, appErr)
			return
		}

		log.Errorw("unexpected error", "error", err.Error(), "method", c.Request.Method)
		abortWithAppError(c, apperrors.ErrInternalServer)
	}
}

// Recovery turns a panic in a handler into a 500 with the standard error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Named("http").Errorw("panic recovered",
			"request_id", c.GetString(requestIDKey),
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		abortWithAppError(c, apperrors.ErrInternalServer)
	})
}
