package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func newLoggedRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(zerolog.New(buf)), RequestMetricsMiddleware("fixlex-mw"))
	return r
}

func TestRequestLoggerReportsParseOutcome(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf)
	r.POST("/parse", func(c *gin.Context) {
		SetParseOutcome(c, 3, 2)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/parse", strings.NewReader("8=a"))
	r.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	for _, want := range []string{`"message":"parse_request"`, `"messages":3`, `"field_errors":2`, `"bytes_in":3`, `"path":"/parse"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %s in request log: %s", want, line)
		}
	}
}

func TestRequestLoggerLevelsByStatus(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf)
	r.POST("/parse", func(c *gin.Context) { c.Status(http.StatusRequestEntityTooLarge) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/parse", nil))

	line := buf.String()
	if !strings.Contains(line, `"level":"warn"`) || !strings.Contains(line, `"message":"http_request"`) {
		t.Fatalf("unexpected request log: %s", line)
	}
}

func TestRequestMetricsUseRouteNotRawPath(t *testing.T) {
	var buf bytes.Buffer
	r := newLoggedRouter(&buf)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/no/such/path", nil))

	got := testutil.ToFloat64(httpRequests.WithLabelValues("fixlex-mw", "GET", "unmatched", "404"))
	if got != 1 {
		t.Fatalf("expected one unmatched request, got %v", got)
	}
}
