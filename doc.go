// Package awekas polls the AWEKAS weather network for the current conditions
// of one station and keeps every reported value as a named state.
//
// The connector is SDK-first: configure it with functional options, start it
// with a context, and read states through callbacks, [Connector.States], the
// embedded HTTP API or Redis.
//
// # Quick Start
//
//	ep, _ := awekas.NewEndpoint(os.Getenv("AWEKAS_API_KEY"), awekas.WithLanguage("de"))
//	conn, _ := awekas.New(awekas.WithEndpoint(ep))
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	conn.Start(ctx) // blocks until context is cancelled
//
// # Polling
//
// The first request is made immediately, then every request interval
// (30 seconds by default, never less than 15). A transport failure or one of
// the API errors "maximum quota exceeded", "AWEKAS plus not active" and
// "invalid key" switches the timer to the backoff interval (5 minutes by
// default). The first clean report switches it back and logs that the
// connection was restored. [WithBackoffPolicy] adds HTTP status errors and
// unknown API errors to the backoff triggers.
//
// # States
//
// Every poll that yields a report writes the "error" state first, then, when
// the report carries no error, the mapped fields in a fixed order: the fetch
// time, the current conditions, the last hour, the day's extremes and six
// forecast days. Wind directions are also written as 16-point compass labels
// in the configured language; see [CompassLabel]. [StateDefinitions] lists
// every state with its type and unit.
//
// # Architecture
//
//   - internal/poller: HTTP client and the two-speed scheduler
//   - internal/report: Report decoding, the field catalog and compass tables
//   - internal/store: In-memory states with pub/sub, optionally mirrored to Redis
//   - internal/server: REST API, Server-Sent Events and Prometheus metrics
//   - internal/metrics: Prometheus collectors
//   - dashboard: Embedded state page
//
// The internal packages are not part of the public API and may change
// without notice.
package awekas
