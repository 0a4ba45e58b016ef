package deeplink

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/kbukum/navkit/errors"
	"github.com/kbukum/navkit/logger"
	"github.com/kbukum/navkit/validation"
)

// HeaderRequestID carries the deep-link request id.
const HeaderRequestID = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID keeps a valid UUID from the X-Request-ID header, or generates a
// new one, and echoes it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := requestID(c)
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id.String())
		c.Next()
	}
}

// requestID returns the id set by RequestID, or derives one from the header.
func requestID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(requestIDKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	if id, err := validation.ValidateUUID(HeaderRequestID, c.GetHeader(HeaderRequestID)); err == nil {
		return id
	}
	return uuid.New()
}

// Recovery turns a panic into a 500 AppError response. Navigation failures
// reported through the default failure handler end up here.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error("Panic recovered", logger.Fields(
					logger.FieldError, fmt.Sprintf("%v", err),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					apperrors.Internal(fmt.Errorf("%v", err)).ToResponse())
			}
		}()
		c.Next()
	}
}

// RequestLogger logs every request with method, path, status and latency.
// The health endpoint is skipped.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == healthPath {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := logger.Fields(
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			logger.FieldStatus, status,
			"latency", time.Since(start).String(),
		)
		if v, ok := c.Get(requestIDKey); ok {
			fields[logger.FieldRequestID] = fmt.Sprint(v)
		}

		switch {
		case status >= 500:
			log.Error("Request completed", fields)
		case status >= 400:
			log.Warn("Request completed", fields)
		default:
			log.Debug("Request completed", fields)
		}
	}
}
