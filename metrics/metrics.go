package metrics

import (
	"context"

	"github.com/anjiri1684/appointment_booking/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_http_requests_total",
			Help: "HTTP requests handled, by route and status code",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	ReservationEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_reservation_events_total",
			Help: "Reservation lifecycle events",
		},
		[]string{"type"},
	)

	BookingRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_rejections_total",
			Help: "Booking attempts refused, by reason",
		},
		[]string{"reason"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_rate_limited_total",
			Help: "Requests refused by the rate limiter",
		},
	)

	JobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_job_runs_total",
			Help: "Background job runs, by job and outcome",
		},
		[]string{"job", "status"},
	)

	RemindersSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_reminders_sent_total",
			Help: "Appointment reminders queued for delivery",
		},
	)

	SlotsPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_slots_purged_total",
			Help: "Elapsed slots removed by the purge job",
		},
	)

	WebsocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "booking_websocket_clients",
			Help: "Connected admin websocket clients",
		},
	)
)

// ReservationRecorder counts reservation events.
type ReservationRecorder struct{}

func (ReservationRecorder) ReservationChanged(_ context.Context, ev services.ReservationEvent) {
	ReservationEvents.WithLabelValues(string(ev.Type)).Inc()
}
