package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Charlesbasis/portfolio-app-sub000/pkg/apperror"
	"github.com/Charlesbasis/portfolio-app-sub000/pkg/logger"
)

// ErrorMiddleware renders the first error a handler pushed via c.Error.
// AppErrors map to their HTTP status and JSON shape; anything else is a 500.
// Outside production the body carries the error details and the wrapped
// cause so a failing request is debuggable from the response alone.
func ErrorMiddleware(log logger.Logger, isProduction bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors[0].Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status := apperror.ToHTTPStatus(appErr)
			if status >= http.StatusInternalServerError {
				log.Error("Request failed", appErr,
					zap.String("path", c.Request.URL.Path),
					zap.String("details", appErr.Details),
				)
			}
			body := appErr.ToJSON()
			if !isProduction {
				if appErr.Details != "" {
					body["details"] = appErr.Details
				}
				if appErr.Err != nil {
					body["cause"] = appErr.Err.Error()
				}
			}
			c.JSON(status, body)
			return
		}

		log.Error("Unhandled error", err, zap.String("path", c.Request.URL.Path))
		body := gin.H{
			"success": false,
			"error":   "internal server error",
			"message": "An internal server error occurred",
		}
		if !isProduction {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusInternalServerError, body)
	}
}
