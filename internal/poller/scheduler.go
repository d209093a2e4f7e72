package poller

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpalmerr/awekas/internal/report"
)

const (
	// DefaultNormalInterval is the request period while the API is healthy.
	DefaultNormalInterval = 30 * time.Second

	// DefaultBackoffInterval is the request period after a fatal error.
	DefaultBackoffInterval = 5 * time.Minute

	// MinNormalInterval is the shortest request period the API tolerates.
	MinNormalInterval = 15 * time.Second
)

// ClampInterval raises d to [MinNormalInterval] and reports whether it did.
// Non-positive durations become [DefaultNormalInterval].
func ClampInterval(d time.Duration) (time.Duration, bool) {
	if d <= 0 {
		return DefaultNormalInterval, false
	}
	if d < MinNormalInterval {
		return MinNormalInterval, true
	}
	return d, false
}

// Mode is the scheduler's timer state.
type Mode int

const (
	ModeNormal Mode = iota
	ModeBackoff
)

// String returns "normal" or "backoff".
func (m Mode) String() string {
	if m == ModeBackoff {
		return "backoff"
	}
	return "normal"
}

// Settings supplies the values the scheduler reads on every tick, so that
// changes take effect without a restart.
type Settings interface {
	APIKey() string
	// RequestLanguage is the lng query parameter.
	RequestLanguage() string
	// LabelLanguage selects the compass table.
	LabelLanguage() string
}

// Mapper writes a decoded report to a sink.
type Mapper interface {
	Map(r *report.Report, language string, sink report.Sink) (int, error)
}

// Policy widens the set of outcomes that switch to the backoff interval.
// The zero value backs off only on transport failures and fatal API errors.
type Policy struct {
	OnHTTPStatus      bool
	OnUnknownAPIError bool
}

// Config is the static configuration of a [Scheduler].
type Config struct {
	// BaseURL is the current.php endpoint, without query.
	BaseURL string

	// Timeout bounds each request. Zero leaves only the transport defaults.
	Timeout time.Duration

	NormalInterval  time.Duration
	BackoffInterval time.Duration
	Policy          Policy
}

// Result describes one tick.
type Result struct {
	Outcome Outcome

	// Mode and Period are the timer state after the tick.
	Mode   Mode
	Period time.Duration

	// Restored is set on the tick that returned from backoff to normal.
	Restored bool

	StatusCode int
	Latency    time.Duration

	// APIError is the report's error code, if any.
	APIError string

	// Writes counts mapped values, excluding the error state.
	Writes int

	CheckedAt time.Time
	Error     error
}

// Status is a snapshot of the scheduler for status endpoints.
type Status struct {
	Mode   Mode
	Period time.Duration
	Last   *Result
}

// Scheduler polls the AWEKAS API on a two-speed timer.
//
// Ticks run one at a time on the scheduler's goroutine; [Scheduler.Tick] may
// also be called directly and is serialized with the loop. A transition
// between modes stops the active ticker and starts one with the new period.
//
// [Scheduler.Stop] cancels a request that is still in flight. The aborted
// tick changes no mode, writes no state and is not sent on
// [Scheduler.Results].
//
// All lifecycle methods (Start, Stop) are safe for concurrent use.
type Scheduler struct {
	cfg      Config
	settings Settings
	mapper   Mapper
	sink     report.Sink
	client   *Client
	logger   *slog.Logger
	results  chan Result

	// reschedule wakes the loop after a mode change.
	reschedule chan struct{}

	tickMu sync.Mutex

	mu        sync.Mutex
	mode      Mode
	last      *Result
	cancel    context.CancelFunc
	started   bool
	stopped   bool
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewScheduler creates a new [Scheduler] in normal mode.
//
// Zero intervals fall back to [DefaultNormalInterval] and
// [DefaultBackoffInterval]. The scheduler must be started with
// [Scheduler.Start] and stopped with [Scheduler.Stop]; results of loop ticks
// are available via [Scheduler.Results].
func NewScheduler(cfg Config, settings Settings, mapper Mapper, sink report.Sink, logger *slog.Logger) *Scheduler {
	if cfg.NormalInterval <= 0 {
		cfg.NormalInterval = DefaultNormalInterval
	}
	if cfg.BackoffInterval <= 0 {
		cfg.BackoffInterval = DefaultBackoffInterval
	}
	return &Scheduler{
		cfg:        cfg,
		settings:   settings,
		mapper:     mapper,
		sink:       sink,
		client:     NewClient(),
		logger:     logger,
		results:    make(chan Result, 1),
		reschedule: make(chan struct{}, 1),
	}
}

// Results returns a receive-only channel that emits the [Result] of every
// loop tick. The channel is closed when the scheduler stops.
//
// Consumers must drain the channel; the loop waits for each result to be
// received before scheduling the next tick.
func (s *Scheduler) Results() <-chan Result {
	return s.results
}

// Mode returns the current timer mode.
func (s *Scheduler) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Period returns the current request period.
func (s *Scheduler) Period() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.periodLocked()
}

func (s *Scheduler) periodLocked() time.Duration {
	if s.mode == ModeBackoff {
		return s.cfg.BackoffInterval
	}
	return s.cfg.NormalInterval
}

// Status returns a snapshot of the timer state and the last tick.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{Mode: s.mode, Period: s.periodLocked()}
	if s.last != nil {
		last := *s.last
		st.Last = &last
	}
	return st
}

// Start begins the polling loop in a background goroutine.
//
// The first tick runs immediately; later ticks follow the current period.
// If ctx is nil, context.Background() is used. Start is idempotent, and a
// no-op after Stop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return
	}
	s.started = true

	if ctx == nil {
		ctx = context.Background()
	}
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go s.loop(loopCtx)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()
	defer s.closeOnce.Do(func() { close(s.results) })

	if !s.emit(ctx, s.Tick(ctx)) {
		return
	}

	period := s.Period()
	ticker := time.NewTicker(period)
	defer func() { ticker.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.reschedule:
			if next := s.Period(); next != period {
				ticker.Stop()
				period = next
				ticker = time.NewTicker(period)
				s.logger.Debug("request timer rescheduled", "period", period)
			}
		case <-ticker.C:
			if !s.emit(ctx, s.Tick(ctx)) {
				return
			}
		}
	}
}

func (s *Scheduler) emit(ctx context.Context, res Result) bool {
	if ctx.Err() != nil {
		// aborted ticks are not reported
		return false
	}
	select {
	case s.results <- res:
		return true
	case <-ctx.Done():
		return false
	}
}

// Stop halts the scheduler and waits for the loop to exit.
//
// An in-flight request is aborted. Stop is idempotent and safe to call
// before Start.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		if s.cancel != nil {
			s.cancel()
		}
	}
	s.mu.Unlock()

	s.wg.Wait()

	if s.client != nil {
		s.client.Close()
	}

	// ensure channel is closed even if Start() was never called
	s.closeOnce.Do(func() { close(s.results) })
}

// Tick performs one request and applies its outcome to the timer state.
// Nothing is returned as an error; failures are described by the [Result].
func (s *Scheduler) Tick(ctx context.Context) Result {
	s.tickMu.Lock()
	defer s.tickMu.Unlock()

	res := s.tick(ctx)
	res.CheckedAt = time.Now()

	s.mu.Lock()
	res.Mode = s.mode
	res.Period = s.periodLocked()
	last := res
	s.last = &last
	s.mu.Unlock()

	return res
}

func (s *Scheduler) tick(ctx context.Context) Result {
	key := s.settings.APIKey()
	if key == "" {
		s.logger.Error("no API key configured, skipping request")
		return Result{Outcome: OutcomeMissingKey, Error: ErrMissingAPIKey}
	}

	resp := s.client.Fetch(ctx, s.requestURL(key, s.settings.RequestLanguage()), s.cfg.Timeout)
	res := Result{StatusCode: resp.StatusCode, Latency: resp.Latency}

	if resp.Error != nil {
		res.Outcome, res.Error = OutcomeTransportError, resp.Error
		if ctx.Err() != nil {
			// aborted by shutdown
			return res
		}
		s.logger.Info("AWEKAS server cannot be contacted, switching to backoff interval",
			"backoff", s.cfg.BackoffInterval,
			"error", resp.Error,
		)
		s.enter(ModeBackoff)
		return res
	}

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("unexpected response from AWEKAS server", "status", resp.StatusCode)
		res.Outcome = OutcomeHTTPStatus
		res.Error = fmt.Errorf("unexpected status %d", resp.StatusCode)
		if s.cfg.Policy.OnHTTPStatus {
			s.enter(ModeBackoff)
		}
		return res
	}

	r, err := report.Decode(resp.Body)
	if err != nil {
		s.logger.Warn("could not parse AWEKAS response", "error", err)
		res.Outcome, res.Error = OutcomeParseError, err
		return res
	}

	s.sink.Write(report.ErrorState, r.Error.Any(), true)

	if code, ok := r.APIError(); ok {
		res.APIError = code
		res.Error = fmt.Errorf("%w: %s", report.ErrReportHasError, code)

		fatal, message := classifyAPIError(code)
		s.logger.Warn(message, "error", code)
		if fatal {
			res.Outcome = OutcomeFatalAPIError
			s.enter(ModeBackoff)
			return res
		}
		res.Outcome = OutcomeAPIError
		if s.cfg.Policy.OnUnknownAPIError {
			s.enter(ModeBackoff)
		}
		return res
	}

	res.Restored = s.enter(ModeNormal)

	writes, err := s.safeMap(r, s.settings.LabelLanguage())
	res.Writes = writes
	if err != nil {
		s.logger.Warn("could not write states", "writes", writes, "error", err)
		res.Outcome, res.Error = OutcomeMappingError, err
		return res
	}

	res.Outcome = OutcomeSuccess
	s.logger.Debug("weather report received", "writes", writes, "latency", resp.Latency)
	return res
}

// enter switches to mode m and reports whether that restored normal mode
// from backoff.
func (s *Scheduler) enter(m Mode) bool {
	s.mu.Lock()
	prev := s.mode
	s.mode = m
	s.mu.Unlock()

	if prev == m {
		return false
	}

	// non-blocking: a pending signal already covers this change
	select {
	case s.reschedule <- struct{}{}:
	default:
	}

	if m == ModeNormal {
		s.logger.Info("AWEKAS server connection restored, request timer set to normal interval",
			"period", s.cfg.NormalInterval,
		)
		return true
	}
	return false
}

func (s *Scheduler) requestURL(key, language string) string {
	q := url.Values{}
	q.Set("key", key)
	q.Set("lng", language)
	return s.cfg.BaseURL + "?" + q.Encode()
}

// safeMap calls the mapper with panic recovery.
// A panic is logged with its stack trace under a correlation ID, and the
// error returned to the caller carries only the ID.
func (s *Scheduler) safeMap(r *report.Report, language string) (writes int, err error) {
	counter := &countingSink{sink: s.sink}
	defer func() {
		if rec := recover(); rec != nil {
			correlationID := uuid.NewString()
			stack := debug.Stack()

			s.logger.Error("mapper panic",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", rec),
				"stack", string(stack),
			)

			writes = counter.n
			err = fmt.Errorf("mapper panic (correlation_id: %s)", correlationID)
		}
	}()

	return s.mapper.Map(r, language, counter)
}

// countingSink counts writes so a panicking mapper still reports them.
type countingSink struct {
	sink report.Sink
	n    int
}

func (c *countingSink) Write(name string, value any, ack bool) {
	c.sink.Write(name, value, ack)
	c.n++
}
