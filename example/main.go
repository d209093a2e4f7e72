package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/awekas"
	"github.com/jpalmerr/awekas/example/mockapi"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// start mock AWEKAS API (see mockapi)
	mock := &http.Server{
		Addr:              ":9999",
		Handler:           mockapi.New(logger.With("component", "mockapi")),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := mock.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("mock server error", "error", err)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	ep, err := awekas.NewEndpoint("demo",
		awekas.WithBaseURL("http://localhost:9999/current.php"),
		awekas.WithLanguage("de"),
		awekas.WithTimeout(5*time.Second),
	)
	if err != nil {
		slog.Error("failed to create endpoint", "error", err)
		os.Exit(1)
	}

	conn, err := awekas.New(
		awekas.WithEndpoint(ep),
		awekas.WithRequestInterval(15*time.Second),
		awekas.WithBackoffInterval(time.Minute),
		awekas.WithPort(8080),
		awekas.WithLogger(logger),
		awekas.WithStateCallback(func(s awekas.State) {
			if s.Name == "current_temperature" || s.Name == "current_winddirection_text" {
				fmt.Printf("  %-28s %v\n", s.Name, s.Value)
			}
		}),
		awekas.WithPollCallback(func(r awekas.PollResult) {
			if r.Restored {
				fmt.Println("  connection restored")
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create connector", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   AWEKAS Connector Demo                               ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║   States:  http://localhost:8080/api/states           ║")
	fmt.Println("  ║   Metrics: http://localhost:8080/metrics              ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Mock API on :9999, German labels, 15s interval      ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = conn.Start(ctx)
	_ = mock.Close()
	if err != nil {
		slog.Error("connector error", "error", err)
		os.Exit(1)
	}
}
