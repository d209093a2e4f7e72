package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePoll(t *testing.T) {
	PollsTotal.Reset()
	writesBefore := testutil.ToFloat64(StateWritesTotal)

	ObservePoll(Poll{
		Outcome: "success",
		Latency: 120 * time.Millisecond,
		Period:  30 * time.Second,
		Writes:  135,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(PollsTotal.WithLabelValues("success")))
	assert.Equal(t, 30.0, testutil.ToFloat64(PollPeriod))
	assert.Equal(t, 0.0, testutil.ToFloat64(BackoffActive))
	assert.Equal(t, writesBefore+135, testutil.ToFloat64(StateWritesTotal))

	ObservePoll(Poll{
		Outcome: "fatal_api_error",
		Latency: 80 * time.Millisecond,
		Backoff: true,
		Period:  5 * time.Minute,
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(PollsTotal.WithLabelValues("fatal_api_error")))
	assert.Equal(t, 300.0, testutil.ToFloat64(PollPeriod))
	assert.Equal(t, 1.0, testutil.ToFloat64(BackoffActive))
	assert.Equal(t, writesBefore+135, testutil.ToFloat64(StateWritesTotal))
}

func TestObservePoll_CountsOutcomes(t *testing.T) {
	PollsTotal.Reset()

	ObservePoll(Poll{Outcome: "missing_key", Period: 30 * time.Second})
	ObservePoll(Poll{Outcome: "missing_key", Period: 30 * time.Second})

	err := testutil.CollectAndCompare(PollsTotal, strings.NewReader(`
		# HELP awekas_polls_total Total number of AWEKAS polls by outcome.
		# TYPE awekas_polls_total counter
		awekas_polls_total{outcome="missing_key"} 2
	`), "awekas_polls_total")
	require.NoError(t, err)
}

func TestObserveHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()

	ObserveHTTPRequest("/api/states", "GET", 200)
	ObserveHTTPRequest("/api/states", "GET", 200)
	ObserveHTTPRequest("/api/states/{name}", "GET", 404)

	assert.Equal(t, 2.0, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/api/states", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("/api/states/{name}", "GET", "404")))
}
