package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "courtsplit"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	registrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Player registrations by resulting status",
		},
		[]string{"status"}, // registered, waitlist
	)

	cancellationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancellations_total",
			Help:      "Player cancellations",
		},
		[]string{"same_day"},
	)

	promotionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "waitlist_promotions_total",
			Help:      "Waitlisted players promoted to registered",
		},
	)

	billsComputedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_computed_total",
			Help:      "Bills served, by source",
		},
		[]string{"source"}, // cache, engine
	)

	billDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bill_compute_duration_seconds",
			Help:      "Time spent running the cost allocation engine",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)
)

func RecordHTTPRequest(method, path string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func RecordRegistration(status string) {
	registrationsTotal.WithLabelValues(status).Inc()
}

func RecordCancellation(sameDay bool) {
	cancellationsTotal.WithLabelValues(strconv.FormatBool(sameDay)).Inc()
}

func RecordPromotion() {
	promotionsTotal.Inc()
}

func RecordBillFromCache() {
	billsComputedTotal.WithLabelValues("cache").Inc()
}

func RecordBillComputed(d time.Duration) {
	billsComputedTotal.WithLabelValues("engine").Inc()
	billDuration.Observe(d.Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
