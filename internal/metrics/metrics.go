package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status code.",
		},
		[]string{"endpoint", "status"},
	)

	bookingsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "bookings_created_total",
			Help:      "Bookings accepted into WAITING.",
		},
	)

	bookingsDecided = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "bookings_decided_total",
			Help:      "Booking decisions by resulting status.",
		},
		[]string{"status"},
	)

	commentsAdded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shareit",
			Name:      "comments_added_total",
			Help:      "Comments persisted.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, bookingsDecided, commentsAdded)
	})
}

// IncHTTP increments the request counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

func IncBookingCreated() {
	bookingsCreated.Inc()
}

// IncBookingDecided counts a decision by its resulting status.
func IncBookingDecided(status string) {
	bookingsDecided.WithLabelValues(status).Inc()
}

func IncCommentAdded() {
	commentsAdded.Inc()
}
