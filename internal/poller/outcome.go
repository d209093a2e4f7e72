package poller

import (
	"errors"

	"github.com/jpalmerr/awekas/internal/report"
)

// ErrMissingAPIKey is reported for ticks that run without an API key.
var ErrMissingAPIKey = errors.New("no API key configured")

// Outcome classifies a single tick.
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

// Outcomes lists every outcome, in the order a tick can reach them.
func Outcomes() []Outcome {
	return []Outcome{
		OutcomeMissingKey,
		OutcomeTransportError,
		OutcomeHTTPStatus,
		OutcomeParseError,
		OutcomeAPIError,
		OutcomeFatalAPIError,
		OutcomeMappingError,
		OutcomeSuccess,
	}
}

// fatalAPIErrors maps the error codes that force backoff to the warning
// logged when they are seen.
var fatalAPIErrors = map[string]string{
	report.ErrorQuotaExceeded: "AWEKAS request quota exceeded, switching to backoff interval",
	report.ErrorPlusInactive:  "AWEKAS plus is not active for this station, switching to backoff interval",
	report.ErrorInvalidKey:    "AWEKAS rejected the API key, switching to backoff interval",
}

// classifyAPIError reports whether code forces backoff, and the message to
// log for it.
func classifyAPIError(code string) (fatal bool, message string) {
	if msg, ok := fatalAPIErrors[code]; ok {
		return true, msg
	}
	return false, "AWEKAS reported an error"
}
