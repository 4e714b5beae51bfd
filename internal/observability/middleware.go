package observability

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const parseOutcomeKey = "fixlex.parse_outcome"

// ParseOutcome summarises what a parse handler produced for one request.
type ParseOutcome struct {
	Messages    int
	FieldErrors int
}

// SetParseOutcome attaches the handler's result counts to c so the
// request logger and metrics can report them.
func SetParseOutcome(c *gin.Context, messages, fieldErrors int) {
	c.Set(parseOutcomeKey, ParseOutcome{Messages: messages, FieldErrors: fieldErrors})
}

func parseOutcome(c *gin.Context) (ParseOutcome, bool) {
	v, ok := c.Get(parseOutcomeKey)
	if !ok {
		return ParseOutcome{}, false
	}
	out, ok := v.(ParseOutcome)
	return out, ok
}

// RequestLogger logs one line per request. Parse requests also carry
// their message and field-error counts.
func RequestLogger(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		switch {
		case status >= 500:
			event = logger.Error()
		case status >= 400:
			event = logger.Warn()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("path", routePath(c)).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int64("bytes_in", c.Request.ContentLength)

		if out, ok := parseOutcome(c); ok {
			event.
				Int("messages", out.Messages).
				Int("field_errors", out.FieldErrors).
				Msg("parse_request")
			return
		}
		event.Msg("http_request")
	}
}

// RequestMetricsMiddleware records request counts and latency for service.
func RequestMetricsMiddleware(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		RecordHTTPRequest(service, c.Request.Method, routePath(c), c.Writer.Status(), time.Since(start))
	}
}

// routePath prefers the registered route so metrics labels stay bounded.
func routePath(c *gin.Context) string {
	if path := c.FullPath(); path != "" {
		return path
	}
	return "unmatched"
}
