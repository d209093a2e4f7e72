package awekas

import (
	"testing"
	"time"
)

func TestNewEndpoint_Defaults(t *testing.T) {
	ep, err := NewEndpoint("secret")
	if err != nil {
		t.Fatalf("NewEndpoint() error = %v", err)
	}

	if ep.APIKey() != "secret" {
		t.Errorf("APIKey() = %v, want %v", ep.APIKey(), "secret")
	}
	if ep.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %v, want %v", ep.BaseURL(), DefaultBaseURL)
	}
	if ep.Language() != "" {
		t.Errorf("Language() = %v, want empty", ep.Language())
	}
	if ep.Timeout() != 0 {
		t.Errorf("Timeout() = %v, want 0", ep.Timeout())
	}
}

func TestNewEndpoint_EmptyKeyAccepted(t *testing.T) {
	if _, err := NewEndpoint(""); err != nil {
		t.Errorf("NewEndpoint(\"\") error = %v, want nil", err)
	}
}

func TestNewEndpoint_WithOptions(t *testing.T) {
	ep, err := NewEndpoint("secret",
		WithBaseURL("http://localhost:8081/current.php"),
		WithLanguage("de"),
		WithTimeout(10*time.Second),
	)
	if err != nil {
		t.Fatalf("NewEndpoint() error = %v", err)
	}

	if ep.BaseURL() != "http://localhost:8081/current.php" {
		t.Errorf("BaseURL() = %v", ep.BaseURL())
	}
	if ep.Language() != "de" {
		t.Errorf("Language() = %v, want de", ep.Language())
	}
	if ep.Timeout() != 10*time.Second {
		t.Errorf("Timeout() = %v, want 10s", ep.Timeout())
	}
}

func TestNewEndpoint_InvalidBaseURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"no scheme", "api.awekas.at/current.php"},
		{"just path", "/current.php"},
		{"ftp scheme", "ftp://api.awekas.at/current.php"},
		{"with query", "https://api.awekas.at/current.php?key=abc"},
		{"unparseable", "http://[::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewEndpoint("secret", WithBaseURL(tt.url)); err == nil {
				t.Errorf("NewEndpoint() expected error for URL %q, got nil", tt.url)
			}
		})
	}
}

func TestWithBaseURL_Empty(t *testing.T) {
	if _, err := NewEndpoint("secret", WithBaseURL("")); err == nil {
		t.Error("WithBaseURL(\"\") expected error, got nil")
	}
}

func TestWithTimeout_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		timeout time.Duration
		wantErr bool
	}{
		{"zero disables", 0, false},
		{"typical", 10 * time.Second, false},
		{"max", 5 * time.Minute, false},
		{"negative", -time.Second, true},
		{"too long", 5*time.Minute + time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEndpoint("secret", WithTimeout(tt.timeout))
			if (err != nil) != tt.wantErr {
				t.Errorf("WithTimeout(%v) error = %v, wantErr %v", tt.timeout, err, tt.wantErr)
			}
		})
	}
}
