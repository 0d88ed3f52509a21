// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by the HTTP layer.
type Recorder interface {
	RecordHTTPRequest(method, route string, status int, duration time.Duration)
	RecordMemberCreated()
	RecordSubscriptionEvent(event string)
	RecordLogin(success bool)
}

// Subscription events.
const (
	EventSubscribed = "subscribed"
	EventCancelled  = "cancelled"
	EventRenewed    = "renewed"
	EventExpired    = "expired"
)

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	httpRequests       *prometheus.CounterVec
	httpLatency        *prometheus.HistogramVec
	membersCreated     prometheus.Counter
	subscriptionEvents *prometheus.CounterVec
	logins             *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gym_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		membersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gym_members_created_total",
			Help: "Members registered.",
		}),
		subscriptionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_subscription_events_total",
			Help: "Subscription lifecycle events by type.",
		}, []string{"event"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gym_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.membersCreated,
		c.subscriptionEvents,
		c.logins,
	)
	return c
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (c *Collector) RecordMemberCreated() {
	c.membersCreated.Inc()
}

// RecordSubscriptionEvent counts a lifecycle event; event is one of the Event* constants.
func (c *Collector) RecordSubscriptionEvent(event string) {
	c.subscriptionEvents.WithLabelValues(event).Inc()
}

func (c *Collector) RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.logins.WithLabelValues(result).Inc()
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}
func (Nop) RecordMemberCreated()                                 {}
func (Nop) RecordSubscriptionEvent(string)                       {}
func (Nop) RecordLogin(bool)                                     {}
