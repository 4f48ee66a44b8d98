package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors exported on /metrics.
type Metrics struct {
	requests         *prometheus.CounterVec
	latency          *prometheus.HistogramVec
	toggles          *prometheus.CounterVec
	generations      prometheus.Counter
	overlappingCells prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_http_requests_total",
				Help: "HTTP requests by route, method and status.",
			},
			[]string{"route", "method", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_http_request_duration_seconds",
				Help:    "HTTP request latency by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		toggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_enrollment_toggles_total",
				Help: "Enrollment toggles by outcome (added, removed, rejected).",
			},
			[]string{"outcome"},
		),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_timetable_generations_total",
			Help: "Timetables generated.",
		}),
		overlappingCells: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_timetable_overlapping_cells_total",
			Help: "Grid cells that received more than one class after wraparound.",
		}),
	}
	reg.MustRegister(m.requests, m.latency, m.toggles, m.generations, m.overlappingCells)
	return m
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Toggle records an enrollment toggle outcome.
func (m *Metrics) Toggle(outcome string) {
	if m == nil {
		return
	}
	m.toggles.WithLabelValues(outcome).Inc()
}

// Generated records a timetable generation and its overlap count.
func (m *Metrics) Generated(overlaps int) {
	if m == nil {
		return
	}
	m.generations.Inc()
	if overlaps > 0 {
		m.overlappingCells.Add(float64(overlaps))
	}
}
