package middleware

import (
	"errors"
	"net/http"

	"go-candidate-backend/internal/delivery/http/response"
	"go-candidate-backend/pkg/apperror"
	"go-candidate-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors attached to the gin context into the JSON
// envelope. AppError carries its own status and caller-safe message;
// anything else is logged server-side and collapsed to a generic 500 so no
// internal detail leaks to the caller.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code >= http.StatusInternalServerError {
					reqID, _ := c.Get("RequestID")
					logger.Log.Error("request failed", "path", c.FullPath(), "requestID", reqID, "error", appErr.Unwrap())
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
				return
			}

			reqID, _ := c.Get("RequestID")
			logger.Log.Error("unhandled error", "path", c.FullPath(), "requestID", reqID, "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
