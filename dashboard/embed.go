// Package dashboard provides the embedded state page for the AWEKAS
// connector.
//
// The page lists every weather state and keeps it current over the
// /api/sse stream, so a single binary can be inspected from a browser.
// It is served by the server package at the root path ("/").
package dashboard

import "embed"

// Assets is an embedded filesystem containing the state page.
//
// The filesystem structure is:
//
//	assets/
//	  index.html    - State table with inline CSS and JavaScript
//
//go:embed assets/*
var Assets embed.FS
