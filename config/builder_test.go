package config

import (
	"strings"
	"testing"
	"time"

	"github.com/jpalmerr/awekas"
)

func TestBuildEndpoint_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`api_key: secret`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	ep, err := BuildEndpoint(cfg)
	if err != nil {
		t.Fatalf("BuildEndpoint() error = %v", err)
	}

	if ep.APIKey() != "secret" {
		t.Errorf("APIKey() = %q, want secret", ep.APIKey())
	}
	if ep.BaseURL() != awekas.DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", ep.BaseURL(), awekas.DefaultBaseURL)
	}
	if ep.Language() != "" || ep.Timeout() != 0 {
		t.Errorf("Language()/Timeout() = %q/%v, want unset", ep.Language(), ep.Timeout())
	}
}

func TestBuildEndpoint_AllFields(t *testing.T) {
	cfg := &Config{
		APIKey:   "secret",
		Language: "nl",
		BaseURL:  "http://localhost:8081/current.php",
		Timeout:  Duration(5 * time.Second),
	}

	ep, err := BuildEndpoint(cfg)
	if err != nil {
		t.Fatalf("BuildEndpoint() error = %v", err)
	}

	if ep.BaseURL() != "http://localhost:8081/current.php" {
		t.Errorf("BaseURL() = %q", ep.BaseURL())
	}
	if ep.Language() != "nl" {
		t.Errorf("Language() = %q, want nl", ep.Language())
	}
	if ep.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v, want 5s", ep.Timeout())
	}
}

func TestBuildEndpoint_Invalid(t *testing.T) {
	// bypasses Parse validation
	cfg := &Config{BaseURL: "ftp://example.com"}

	if _, err := BuildEndpoint(cfg); err == nil {
		t.Error("BuildEndpoint() expected error for ftp base URL, got nil")
	}
}

func TestBuildOptions_Memory(t *testing.T) {
	cfg, err := Parse([]byte(`
api_key: secret
request_interval: 45s
backoff_interval: 2m
port: 19300
disable_server: true
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	opts, closeFn, err := BuildOptions(cfg)
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}
	defer func() { _ = closeFn() }()

	conn, err := awekas.New(opts...)
	if err != nil {
		t.Fatalf("awekas.New() error = %v", err)
	}

	if conn.RequestInterval() != 45*time.Second {
		t.Errorf("RequestInterval() = %v, want 45s", conn.RequestInterval())
	}
	if conn.BackoffInterval() != 2*time.Minute {
		t.Errorf("BackoffInterval() = %v, want 2m", conn.BackoffInterval())
	}
	if conn.Port() != 19300 {
		t.Errorf("Port() = %d, want 19300", conn.Port())
	}
	if conn.Endpoint().APIKey() != "secret" {
		t.Errorf("APIKey() = %q", conn.Endpoint().APIKey())
	}
}

func TestBuildOptions_InvalidEndpoint(t *testing.T) {
	cfg := &Config{BaseURL: "ftp://example.com"}

	_, closeFn, err := BuildOptions(cfg)
	if err == nil {
		t.Fatal("BuildOptions() expected error, got nil")
	}
	if closeFn == nil {
		t.Fatal("close function is nil")
	}
	if err := closeFn(); err != nil {
		t.Errorf("close error = %v", err)
	}
}

func TestBuildOptions_RedisURL(t *testing.T) {
	cfg := &Config{
		APIKey:          "secret",
		RequestInterval: Duration(30 * time.Second),
		BackoffInterval: Duration(5 * time.Minute),
		Port:            8080,
		Store:           StoreConfig{Type: StoreRedis, RedisURL: "redis://localhost:6379/0", KeyPrefix: "weather"},
	}

	opts, closeFn, err := BuildOptions(cfg)
	if err != nil {
		t.Fatalf("BuildOptions() error = %v", err)
	}
	if err := closeFn(); err != nil {
		t.Errorf("close error = %v", err)
	}
	if len(opts) == 0 {
		t.Error("no options returned")
	}
}

func TestBuildOptions_InvalidRedisURL(t *testing.T) {
	cfg := &Config{
		RequestInterval: Duration(30 * time.Second),
		BackoffInterval: Duration(5 * time.Minute),
		Port:            8080,
		Store:           StoreConfig{Type: StoreRedis, RedisURL: "http://localhost:6379"},
	}

	_, _, err := BuildOptions(cfg)
	if err == nil {
		t.Fatal("BuildOptions() expected error for a non-redis URL, got nil")
	}
	if !strings.Contains(err.Error(), "invalid redis_url") {
		t.Errorf("error = %v", err)
	}
}
