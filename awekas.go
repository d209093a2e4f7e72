package awekas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jpalmerr/awekas/dashboard"
	"github.com/jpalmerr/awekas/internal/metrics"
	"github.com/jpalmerr/awekas/internal/poller"
	"github.com/jpalmerr/awekas/internal/report"
	"github.com/jpalmerr/awekas/internal/server"
	"github.com/jpalmerr/awekas/internal/store"
)

const (
	// DefaultRequestInterval is the normal period between requests.
	DefaultRequestInterval = poller.DefaultNormalInterval

	// MinRequestInterval is the shortest accepted request interval.
	MinRequestInterval = poller.MinNormalInterval

	// DefaultBackoffInterval is the period between requests in backoff.
	DefaultBackoffInterval = poller.DefaultBackoffInterval

	defaultPort = 8080
)

// ErrAlreadyStarted is returned by a second call to [Connector.Start].
var ErrAlreadyStarted = errors.New("connector already started")

func clampRequestInterval(d time.Duration) (time.Duration, bool) {
	return poller.ClampInterval(d)
}

// Connector polls one AWEKAS station and keeps the latest value of every
// weather state.
//
// The typical lifecycle is:
//
//	conn, err := awekas.New(awekas.WithEndpoint(ep))
//	if err != nil {
//	    slog.Error("failed to create connector", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	conn.Start(ctx) // blocks until context cancelled
type Connector struct {
	endpoint        Endpoint
	requestInterval time.Duration
	backoffInterval time.Duration
	port            int
	serverEnabled   bool
	logger          *slog.Logger
	pollCallbacks   []func(PollResult)

	settings  *settings
	store     store.Store
	scheduler *poller.Scheduler

	mu      sync.Mutex
	started bool
}

// New creates a [Connector] with the given options.
//
// [WithEndpoint] is required. Other options have defaults:
//   - Request interval: 30 seconds
//   - Backoff interval: 5 minutes
//   - Port: 8080
//
// Every state definition is registered with the store before New returns.
func New(opts ...Option) (*Connector, error) {
	cfg := &connectorConfig{
		requestInterval: DefaultRequestInterval,
		backoffInterval: DefaultBackoffInterval,
		port:            defaultPort,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.endpoint == nil {
		return nil, errors.New("an endpoint is required")
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.intervalClamped {
		logger.Warn("request interval below minimum, using minimum", "interval", MinRequestInterval)
	}

	ep := *cfg.endpoint
	lang := ep.language
	if lang == "" {
		lang = SystemLanguage()
	}
	st := &settings{apiKey: ep.apiKey, language: lang}

	var stateStore store.Store
	if cfg.redisClient != nil {
		stateStore = store.NewRedisStore(cfg.redisClient, cfg.redisPrefix, logger)
	} else {
		stateStore = store.NewMemoryStore()
	}
	stateStore.Define(storeDefinitions()...)

	sink := &stateSink{store: stateStore, callbacks: cfg.stateCallbacks, logger: logger}
	scheduler := poller.NewScheduler(poller.Config{
		BaseURL:         ep.baseURL,
		Timeout:         ep.timeout,
		NormalInterval:  cfg.requestInterval,
		BackoffInterval: cfg.backoffInterval,
		Policy: poller.Policy{
			OnHTTPStatus:      cfg.policy.OnHTTPStatus,
			OnUnknownAPIError: cfg.policy.OnUnknownAPIError,
		},
	}, st, report.NewMapper(), sink, logger)

	return &Connector{
		endpoint:        ep,
		requestInterval: cfg.requestInterval,
		backoffInterval: cfg.backoffInterval,
		port:            cfg.port,
		serverEnabled:   !cfg.serverDisabled,
		logger:          logger,
		pollCallbacks:   cfg.pollCallbacks,
		settings:        st,
		store:           stateStore,
		scheduler:       scheduler,
	}, nil
}

// Start polls the API and serves the state API until ctx is cancelled.
//
// The first poll happens immediately. Start returns nil on graceful
// shutdown, an error if the HTTP server fails to start, and
// [ErrAlreadyStarted] if called more than once.
func (c *Connector) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.started = true
	c.mu.Unlock()

	if ctx.Err() != nil {
		c.scheduler.Stop()
		return nil
	}

	c.logger.Info("AWEKAS weather connector started",
		"request_interval", c.requestInterval.String(),
		"backoff_interval", c.backoffInterval.String(),
		"language", c.settings.RequestLanguage(),
	)

	c.scheduler.Start(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for res := range c.scheduler.Results() {
			c.observe(res)
		}
	}()

	cleanup := func() {
		c.scheduler.Stop() // closes results channel
		wg.Wait()
	}

	if c.serverEnabled {
		httpServer := server.NewServer(c.store, c.port, c.pollerStatus, dashboard.Assets, c.logger)
		if err := httpServer.Start(ctx); err != nil {
			cleanup()
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}

	<-ctx.Done()
	cleanup()
	c.logger.Info("AWEKAS weather connector stopped")
	return nil
}

// PollOnce performs a single poll immediately, outside the timer.
//
// It is serialized with the timer's polls and applies the same state
// transitions. Useful for diagnostics and for one-shot fetches.
func (c *Connector) PollOnce(ctx context.Context) PollResult {
	return c.observe(c.scheduler.Tick(ctx))
}

// SetAPIKey changes the API key used from the next poll on.
func (c *Connector) SetAPIKey(key string) {
	c.settings.setAPIKey(key)
}

// SetLanguage changes the request and label language from the next poll on.
func (c *Connector) SetLanguage(lang string) {
	c.settings.setLanguage(lang)
}

// Language returns the lng value sent with the next request.
func (c *Connector) Language() string {
	return c.settings.RequestLanguage()
}

// Endpoint returns the configured endpoint.
func (c *Connector) Endpoint() Endpoint {
	return c.endpoint
}

// Port returns the configured HTTP port.
func (c *Connector) Port() int {
	return c.port
}

// RequestInterval returns the normal period between requests.
func (c *Connector) RequestInterval() time.Duration {
	return c.requestInterval
}

// BackoffInterval returns the period between requests in backoff.
func (c *Connector) BackoffInterval() time.Duration {
	return c.backoffInterval
}

// Mode returns the current timer mode.
func (c *Connector) Mode() Mode {
	return publicMode(c.scheduler.Mode())
}

// State returns the latest value of a state, if it has been written.
func (c *Connector) State(name string) (State, bool) {
	st, ok := c.store.Get(name)
	if !ok {
		return State{}, false
	}
	return fromStoreState(st), true
}

// States returns the latest value of every written state, sorted by name.
func (c *Connector) States() []State {
	all := c.store.GetAll()
	out := make([]State, len(all))
	for i, st := range all {
		out[i] = fromStoreState(st)
	}
	return out
}

// observe records a poll result and runs the poll callbacks.
func (c *Connector) observe(res poller.Result) PollResult {
	metrics.ObservePoll(metrics.Poll{
		Outcome: string(res.Outcome),
		Latency: res.Latency,
		Backoff: res.Mode == poller.ModeBackoff,
		Period:  res.Period,
		Writes:  res.Writes,
	})

	pub := toPollResult(res)
	for _, cb := range c.pollCallbacks {
		invokeCallbackSafe(cb, pub, c.logger, "outcome", string(pub.Outcome))
	}
	return pub
}

func (c *Connector) pollerStatus() server.PollerStatus {
	st := c.scheduler.Status()
	out := server.PollerStatus{
		Mode:          st.Mode.String(),
		PeriodSeconds: st.Period.Seconds(),
	}
	if st.Last != nil {
		checked := st.Last.CheckedAt
		out.LastOutcome = string(st.Last.Outcome)
		out.LastCheckedAt = &checked
		out.APIError = st.Last.APIError
		if st.Last.Error != nil {
			msg := st.Last.Error.Error()
			out.LastError = &msg
		}
	}
	return out
}

func toPollResult(res poller.Result) PollResult {
	return PollResult{
		Outcome:    Outcome(res.Outcome),
		Mode:       publicMode(res.Mode),
		Period:     res.Period,
		Restored:   res.Restored,
		StatusCode: res.StatusCode,
		Latency:    res.Latency,
		APIError:   res.APIError,
		Writes:     res.Writes,
		CheckedAt:  res.CheckedAt,
		Error:      res.Error,
	}
}

func publicMode(m poller.Mode) Mode {
	if m == poller.ModeBackoff {
		return ModeBackoff
	}
	return ModeNormal
}

func storeDefinitions() []store.Definition {
	defs := StateDefinitions()
	out := make([]store.Definition, len(defs))
	for i, d := range defs {
		out[i] = store.Definition{Name: d.Name, Type: d.Type, Role: d.Role, Unit: d.Unit}
	}
	return out
}
