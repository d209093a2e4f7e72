// Package server provides the HTTP API of the connector.
//
// Endpoints:
//
//   - GET /: embedded state page (when assets are provided)
//   - GET /api/states: JSON array of all current states
//   - GET /api/states/{name}: a single state
//   - GET /api/objects: JSON array of state definitions
//   - GET /api/poller: timer mode, period and last outcome
//   - GET /api/sse: Server-Sent Events stream of state updates
//   - GET /metrics: Prometheus metrics
//
// The SSE endpoint sends every stored state on connect, then streams each
// write as it happens. Updates are JSON-encoded [store.State] values.
package server
