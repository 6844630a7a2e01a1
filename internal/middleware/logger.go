package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/taskboard/taskboard/internal/modules/model"
)

// ZapLogger returns a middleware that logs HTTP requests using zap logger.
// API paths are logged at a level chosen by status, everything else at debug.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		dur := time.Since(start)

		path := c.Request.URL.Path
		status := c.Writer.Status()
		kv := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"latency", dur.String(),
			"clientIP", c.ClientIP(),
		}
		if u, ok := c.Get("user"); ok {
			if user, ok := u.(*model.User); ok {
				kv = append(kv, "user_id", user.ID.String())
			}
		}
		if sc := trace.SpanFromContext(c.Request.Context()).SpanContext(); sc.IsValid() {
			kv = append(kv, "trace_id", sc.TraceID().String())
		}
		if len(c.Errors) > 0 {
			kv = append(kv, "errors", c.Errors.String())
		}

		sugar := log.Sugar()
		switch {
		case !strings.HasPrefix(path, "/api/"):
			sugar.Debugw("HTTP", kv...)
		case status >= http.StatusInternalServerError:
			sugar.Errorw("HTTP", kv...)
		case status >= http.StatusBadRequest:
			sugar.Warnw("HTTP", kv...)
		default:
			sugar.Infow("HTTP", kv...)
		}
	}
}
