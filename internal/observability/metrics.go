package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fixlex",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fixlex",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
	messagesParsed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fixlex",
			Subsystem: "parser",
			Name:      "messages_total",
			Help:      "Messages fed through a field accumulator.",
		},
		[]string{"source", "clean"},
	)
	fieldsCommitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fixlex",
			Subsystem: "parser",
			Name:      "fields_total",
			Help:      "Fields committed into result maps.",
		},
		[]string{"source"},
	)
	fieldErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fixlex",
			Subsystem: "parser",
			Name:      "field_errors_total",
			Help:      "Fields rejected at commit, by error kind.",
		},
		[]string{"source", "kind"},
	)
	messageLength = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fixlex",
			Subsystem: "parser",
			Name:      "message_length_chars",
			Help:      "Characters fed per message.",
			Buckets:   prometheus.ExponentialBuckets(32, 2, 10),
		},
		[]string{"source"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,
			messagesParsed,
			fieldsCommitted,
			fieldErrors,
			messageLength,
		)
	})
}

func RecordHTTPRequest(service, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(service, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(service, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordMessage records one parsed message. errorKinds holds the kind
// label of every rejected field.
func RecordMessage(source string, length uint32, fields int, errorKinds []string) {
	RegisterMetrics()
	clean := strconv.FormatBool(len(errorKinds) == 0)
	messagesParsed.WithLabelValues(source, clean).Inc()
	fieldsCommitted.WithLabelValues(source).Add(float64(fields))
	messageLength.WithLabelValues(source).Observe(float64(length))
	for _, kind := range errorKinds {
		fieldErrors.WithLabelValues(source, kind).Inc()
	}
}
