package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder instruments client round trips with Prometheus collectors. A nil
// Recorder is valid and records nothing.
type Recorder struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewRecorder registers the client collectors on a private registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "edusight_client_requests_total",
		Help: "Total number of backend calls issued by the client",
	}, []string{"operation", "status"})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "edusight_client_request_duration_seconds",
		Help:    "Duration of backend calls in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "status"})

	registry.MustRegister(requestTotal, requestDuration)

	return &Recorder{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
	}
}

// ObserveRequest records one completed round trip. Status zero means the
// request never produced a response (transport failure).
func (r *Recorder) ObserveRequest(operation string, status int, duration time.Duration) {
	if r == nil {
		return
	}
	label := "none"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	r.requestTotal.WithLabelValues(operation, label).Inc()
	r.requestDuration.WithLabelValues(operation, label).Observe(duration.Seconds())
}

// Handler exposes the registry in Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.Handler()
	}
	return r.handler
}
