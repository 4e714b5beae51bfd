package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/danmuck/fixlex/internal/batch"
	"github.com/danmuck/fixlex/internal/config"
	"github.com/danmuck/fixlex/internal/observability"
	"github.com/danmuck/fixlex/internal/protocol/frame"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"service": s.ID,
			"version": Version,
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.POST("/parse", s.handleParse)
}

func (s *Server) handleParse(c *gin.Context) {
	sep := s.cfg.Separator
	if raw := c.Query("separator"); raw != "" {
		parsed, err := config.ParseSeparator(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sep = parsed
	}

	maxBody := s.cfg.MaxRequestBytes
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBody+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if int64(len(body)) > maxBody {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": frame.ErrMessageTooLarge.Error()})
		return
	}

	msgs, err := frame.Split(body, s.limits(), sep)
	truncated := errors.Is(err, frame.ErrTruncated)
	switch {
	case err == nil, truncated:
	case errors.Is(err, frame.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, frame.ErrMessageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	observability.SetParseOutcome(c, len(msgs), 0)
	results, err := batch.ParseAll(c.Request.Context(), msgs, batch.Options{
		Workers: s.cfg.Workers,
		Source:  "http",
	})
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	fieldErrors := 0
	for _, res := range results {
		fieldErrors += len(res.Errors)
	}
	observability.SetParseOutcome(c, len(results), fieldErrors)
	c.JSON(http.StatusOK, gin.H{
		"messages":  results,
		"truncated": truncated,
	})
}
