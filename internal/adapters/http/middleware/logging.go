package middleware

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/smartpantry/internal/core/logger"
)

// Error bodies are small JSON envelopes; anything bigger is truncated.
const maxLoggedBodySize = 4 * 1024

// Probes hit these routes constantly, so they only log at debug level.
var quietRoutes = map[string]bool{
	"/api/v1/health":  true,
	"/api/v1/metrics": true,
}

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// errorBodyWriter keeps a bounded copy of the response so failed requests
// can be logged with the error message the client saw.
type errorBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *errorBodyWriter) capture(n int) int {
	return min(n, maxLoggedBodySize-w.body.Len())
}

func (w *errorBodyWriter) Write(b []byte) (int, error) {
	if n := w.capture(len(b)); n > 0 {
		w.body.Write(b[:n])
	}
	return w.ResponseWriter.Write(b)
}

func (w *errorBodyWriter) WriteString(s string) (int, error) {
	if n := w.capture(len(s)); n > 0 {
		w.body.WriteString(s[:n])
	}
	return w.ResponseWriter.WriteString(s)
}

func requestLevel(route string, status int) logger.LogLevel {
	switch {
	case status >= 500:
		return logger.LogLevelError
	case status >= 400:
		return logger.LogLevelWarn
	case quietRoutes[route]:
		return logger.LogLevelDebug
	default:
		return logger.LogLevelInfo
	}
}

func logHTTPRequest(ctx context.Context, c *gin.Context, duration time.Duration, body *bytes.Buffer) {
	status := c.Writer.Status()
	route := c.FullPath()

	attrs := map[string]any{
		"http.method":      c.Request.Method,
		"http.path":        c.Request.URL.Path,
		"http.route":       route,
		"http.status_code": status,
		"http.duration_ms": duration.Milliseconds(),
		"http.client_ip":   c.ClientIP(),
	}
	if c.Request.ContentLength > 0 {
		attrs["http.request_size"] = c.Request.ContentLength
	}
	if requestID := GetRequestID(c); requestID != "" {
		attrs["http.request_id"] = requestID
	}
	if callerID := CallerID(c); callerID != "" {
		attrs["user.id"] = string(callerID)
	}
	if status >= 400 && body.Len() > 0 && strings.Contains(c.Writer.Header().Get("Content-Type"), "application/json") {
		attrs["http.response_body"] = body.String()
	}
	if len(c.Errors) > 0 {
		attrs["gin.errors"] = c.Errors.String()
	}

	logger.Log(ctx, logger.LogEntry{
		Level:      requestLevel(route, status),
		Message:    "HTTP Request",
		Attributes: attrs,
	})
}

func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		buf := bufferPool.Get().(*bytes.Buffer)
		buf.Reset()
		defer bufferPool.Put(buf)
		c.Writer = &errorBodyWriter{ResponseWriter: c.Writer, body: buf}

		c.Next()

		logHTTPRequest(c.Request.Context(), c, time.Since(start), buf)
	}
}
