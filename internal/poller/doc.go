// Package poller fetches AWEKAS weather reports on a two-speed timer.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper with per-request timeout and size limit
//   - [Scheduler]: owns the timer, classifies each response and switches
//     between the normal and backoff periods
//   - [Result]: outcome of a single tick
//
// Users of the awekas library should not need to interact with this package
// directly. Configuration is done through the main awekas package.
package poller
