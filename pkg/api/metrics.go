package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal counts requests by path and status code.
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "route_viz_http_requests_total",
		Help: "HTTP requests by path and status code",
	}, []string{"path", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "route_viz_http_request_duration_seconds",
		Help:    "HTTP request duration",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15},
	}, []string{"path"})

	routeNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_viz_route_nodes",
		Help:    "Nodes per visualized route",
		Buckets: prometheus.ExponentialBuckets(10, 4, 7),
	})
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
