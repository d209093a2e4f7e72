// Standalone mock AWEKAS API for testing the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/awekas serve -c example/config.yaml
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jpalmerr/awekas/example/mockapi"
)

func main() {
	fmt.Println("Mock AWEKAS API starting on :9999 (/current.php)")
	fmt.Println("Keys quota, inactive and invalid return API errors; flaky alternates 503 and 200")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mux := http.NewServeMux()
	mux.Handle("GET /current.php", mockapi.New(logger))

	srv := &http.Server{
		Addr:              ":9999",
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
