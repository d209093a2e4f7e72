package awekas

import "time"

// Mode is the poller's timer state.
type Mode string

const (
	// ModeNormal polls at the request interval.
	ModeNormal Mode = "normal"

	// ModeBackoff polls at the backoff interval after a transport failure or
	// a fatal API error, until the first clean report.
	ModeBackoff Mode = "backoff"
)

// Outcome classifies a single poll.
type Outcome string

const (
	OutcomeMissingKey     Outcome = "missing_key"
	OutcomeTransportError Outcome = "transport_error"
	OutcomeHTTPStatus     Outcome = "http_status"
	OutcomeParseError     Outcome = "parse_error"
	OutcomeAPIError       Outcome = "api_error"
	OutcomeFatalAPIError  Outcome = "fatal_api_error"
	OutcomeMappingError   Outcome = "mapping_error"
	OutcomeSuccess        Outcome = "success"
)

// PollResult describes one poll of the AWEKAS API.
type PollResult struct {
	Outcome Outcome

	// Mode and Period are the timer state after the poll.
	Mode   Mode
	Period time.Duration

	// Restored is set on the poll that ended a backoff.
	Restored bool

	// StatusCode is zero if no response was received.
	StatusCode int
	Latency    time.Duration

	// APIError is the error code reported by the API, if any.
	APIError string

	// Writes counts the weather states written, excluding "error".
	Writes int

	CheckedAt time.Time
	Error     error
}

// State is the latest value of a named weather state.
type State struct {
	Name string

	// Value is a float64, bool, string or nil.
	Value any

	// Ack is true for values confirmed by the API.
	Ack bool

	UpdatedAt time.Time
}
