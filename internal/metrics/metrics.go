// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PollsTotal counts ticks by outcome.
var PollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "awekas_polls_total",
	Help: "Total number of AWEKAS polls by outcome.",
}, []string{"outcome"})

// FetchDuration tracks the latency of requests that reached the network.
var FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "awekas_fetch_duration_seconds",
	Help:    "Latency of AWEKAS API requests.",
	Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
})

// PollPeriod is the active request period.
var PollPeriod = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "awekas_poll_period_seconds",
	Help: "Current AWEKAS request period in seconds.",
})

// BackoffActive is 1 while the poller waits on the backoff period.
var BackoffActive = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "awekas_backoff_active",
	Help: "Whether the AWEKAS poller is in backoff (1) or normal (0) mode.",
})

// StateWritesTotal counts mapped state values.
var StateWritesTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "awekas_state_writes_total",
	Help: "Total number of weather states written.",
})

// HTTPRequestsTotal counts requests to the connector's HTTP API.
var HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "awekas_http_requests_total",
	Help: "Total number of HTTP requests by path, method and code.",
}, []string{"path", "method", "code"})

// Poll is the part of a tick result that is recorded.
type Poll struct {
	Outcome string
	Latency time.Duration
	Backoff bool
	Period  time.Duration
	Writes  int
}

// ObservePoll records one tick. Ticks that never issued a request carry a
// zero latency and are left out of the histogram.
func ObservePoll(p Poll) {
	PollsTotal.WithLabelValues(p.Outcome).Inc()
	if p.Latency > 0 {
		FetchDuration.Observe(p.Latency.Seconds())
	}
	PollPeriod.Set(p.Period.Seconds())
	if p.Backoff {
		BackoffActive.Set(1)
	} else {
		BackoffActive.Set(0)
	}
	if p.Writes > 0 {
		StateWritesTotal.Add(float64(p.Writes))
	}
}

// ObserveHTTPRequest records one API request.
func ObserveHTTPRequest(path, method string, code int) {
	HTTPRequestsTotal.WithLabelValues(path, method, strconv.Itoa(code)).Inc()
}
