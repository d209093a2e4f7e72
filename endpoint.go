package awekas

import (
	"errors"
	"net/url"
	"time"
)

// DefaultBaseURL is the AWEKAS current-conditions API.
const DefaultBaseURL = "https://api.awekas.at/current.php"

// Endpoint describes the AWEKAS station to poll.
//
// Endpoint is immutable after creation via [NewEndpoint]. The API key and
// language given here are initial values; [Connector.SetAPIKey] and
// [Connector.SetLanguage] change them at runtime.
type Endpoint struct {
	apiKey   string
	baseURL  string
	language string
	timeout  time.Duration
}

// APIKey returns the initial API key.
func (e Endpoint) APIKey() string {
	return e.apiKey
}

// BaseURL returns the URL requests are sent to, without query.
func (e Endpoint) BaseURL() string {
	return e.baseURL
}

// Language returns the configured language, or empty for the system language.
func (e Endpoint) Language() string {
	return e.language
}

// Timeout returns the per-request timeout. Zero means no timeout beyond the
// transport defaults.
func (e Endpoint) Timeout() time.Duration {
	return e.timeout
}

// NewEndpoint creates an [Endpoint] for the station identified by apiKey.
//
// An empty key is accepted: every tick then logs an error and makes no
// request until a key is set with [Connector.SetAPIKey].
//
// Example:
//
//	ep, err := awekas.NewEndpoint(os.Getenv("AWEKAS_API_KEY"),
//	    awekas.WithLanguage("de"),
//	    awekas.WithTimeout(10 * time.Second),
//	)
func NewEndpoint(apiKey string, opts ...EndpointOption) (Endpoint, error) {
	cfg := &endpointConfig{
		baseURL: DefaultBaseURL,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Endpoint{}, err
		}
	}

	parsedURL, err := url.Parse(cfg.baseURL)
	if err != nil {
		return Endpoint{}, errors.New("invalid base URL: " + err.Error())
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return Endpoint{}, errors.New("base URL must have a scheme (http:// or https://)")
	}
	if parsedURL.RawQuery != "" {
		return Endpoint{}, errors.New("base URL must not contain a query")
	}

	return Endpoint{
		apiKey:   apiKey,
		baseURL:  cfg.baseURL,
		language: cfg.language,
		timeout:  cfg.timeout,
	}, nil
}
