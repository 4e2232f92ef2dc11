// Package middleware contains shared Gin middleware used by every service
// binary in this system.
//
// This file exposes Prometheus instrumentation for HTTP traffic. Because
// five separate processes emit these series into shared dashboards, every
// collector carries a "service" label in addition to the usual three:
//
//   - service: the emitting binary (gateway, user-service, …)
//   - method:  HTTP method verb (GET/POST/…)
//   - path:    the registered Gin route (e.g. /users/:id); falls back to
//     the raw URL path when no route matched
//   - status:  numeric status code as a string (counter only)
//
// Labels are bounded in cardinality and all collectors are safe for
// concurrent use.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// httpReqs counts requests by service, method, route path, and status code.
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)

	// httpLat records request duration in seconds. Status is omitted to
	// keep histogram cardinality lower.
	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)

	// httpInflight gauges in-flight requests per service.
	httpInflight = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_inflight",
			Help: "Current number of in-flight HTTP requests.",
		},
		[]string{"service"},
	)

	// httpRespSize captures response sizes in bytes, with buckets tuned for
	// the small JSON payloads these services exchange.
	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_response_size_bytes",
			Help: "Size of HTTP responses in bytes.",
			Buckets: []float64{
				200, 500, 1 << 10, 2 << 10, 5 << 10,
				10 << 10, 25 << 10, 50 << 10,
				100 << 10, 250 << 10, 500 << 10,
			},
		},
		[]string{"service", "method", "path"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize)
}

// Metrics returns a Gin middleware that instruments requests with
// Prometheus under the given service label.
//
// Usage:
//
//	r := gin.New()
//	r.Use(middleware.Metrics("user-service"))
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
func Metrics(service string) gin.HandlerFunc {
	inflight := httpInflight.WithLabelValues(service)
	return func(c *gin.Context) {
		start := time.Now()
		inflight.Inc()
		defer inflight.Dec()

		c.Next()

		dur := time.Since(start).Seconds()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())
		size := c.Writer.Size() // -1 when unknown

		httpReqs.WithLabelValues(service, method, path, status).Inc()
		httpLat.WithLabelValues(service, method, path).Observe(dur)
		if size >= 0 {
			httpRespSize.WithLabelValues(service, method, path).Observe(float64(size))
		}
	}
}
