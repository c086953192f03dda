package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"guardian/internal/domain"
	"guardian/internal/events"
	"guardian/internal/metrics"
)

// FallMonitor is the fall monitor as seen by the controller.
type FallMonitor interface {
	domain.Monitor
	State() domain.FallState
}

// ScreamMonitor is the scream monitor as seen by the controller.
type ScreamMonitor interface {
	domain.Monitor
	State() domain.ScreamState
}

// HeartbeatMonitor is the heartbeat monitor as seen by the controller.
type HeartbeatMonitor interface {
	domain.Monitor
	State() domain.HeartbeatState
}

// Monitors bundles the three monitors a session drives.
type Monitors struct {
	Fall      FallMonitor
	Scream    ScreamMonitor
	Heartbeat HeartbeatMonitor
}

// Config holds optional collaborators.
type Config struct {
	// ManualHeartbeat leaves the heartbeat monitor out of the toggle so it
	// only runs on explicit request.
	ManualHeartbeat bool
	Clock           clockwork.Clock
	Logger          *slog.Logger
	Metrics         *metrics.Metrics
	Events          domain.EventPublisher
}

// Controller switches safety monitoring on and off.
type Controller struct {
	monitors Monitors
	notifier domain.Notifier
	cfg      Config
	logger   *slog.Logger
	events   domain.EventPublisher
	clock    clockwork.Clock

	// transition serialises SetEnabled and Close.
	transition sync.Mutex

	mu      sync.RWMutex
	enabled bool
}

// New returns a controller in the OFF state.
func New(monitors Monitors, notifier domain.Notifier, cfg Config) *Controller {
	c := &Controller{monitors: monitors, notifier: notifier, cfg: cfg}
	c.logger = cfg.Logger
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.events = cfg.Events
	if c.events == nil {
		c.events = events.Nop{}
	}
	c.clock = cfg.Clock
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	return c
}

// Enabled reports whether monitoring is on.
func (c *Controller) Enabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.enabled
}

// SetEnabled moves the session to on. It reports whether the state changed;
// setting the current state again does nothing.
func (c *Controller) SetEnabled(ctx context.Context, on bool) bool {
	c.transition.Lock()
	defer c.transition.Unlock()
	return c.set(ctx, on)
}

// Toggle flips the session and returns the new state.
func (c *Controller) Toggle(ctx context.Context) bool {
	c.transition.Lock()
	defer c.transition.Unlock()
	on := !c.Enabled()
	c.set(ctx, on)
	return on
}

func (c *Controller) set(ctx context.Context, on bool) bool {
	if c.Enabled() == on {
		return false
	}
	c.mu.Lock()
	c.enabled = on
	c.mu.Unlock()

	if on {
		c.each(ctx, "start", domain.Monitor.Start)
		c.announce(ctx, domain.EventSessionEnabled, "Safety ON", "Monitoring active")
	} else {
		c.each(ctx, "stop", domain.Monitor.Stop)
		c.announce(ctx, domain.EventSessionDisabled, "Safety OFF", "Monitoring stopped")
	}
	c.cfg.Metrics.SessionEnabled(on)
	return true
}

// Close stops every monitor whatever the current state.
func (c *Controller) Close(ctx context.Context) {
	c.transition.Lock()
	defer c.transition.Unlock()

	c.mu.Lock()
	c.enabled = false
	c.mu.Unlock()
	c.eachMonitor(ctx, "stop", domain.Monitor.Stop, c.all())
	c.cfg.Metrics.SessionEnabled(false)
}

// State returns a snapshot of the session and every monitor.
func (c *Controller) State() domain.SessionState {
	return domain.SessionState{
		Enabled:   c.Enabled(),
		Fall:      c.monitors.Fall.State(),
		Scream:    c.monitors.Scream.State(),
		Heartbeat: c.monitors.Heartbeat.State(),
	}
}

func (c *Controller) all() []domain.Monitor {
	return []domain.Monitor{c.monitors.Scream, c.monitors.Heartbeat, c.monitors.Fall}
}

func (c *Controller) toggled() []domain.Monitor {
	if c.cfg.ManualHeartbeat {
		return []domain.Monitor{c.monitors.Scream, c.monitors.Fall}
	}
	return c.all()
}

func (c *Controller) each(ctx context.Context, op string, fn func(domain.Monitor, context.Context) error) {
	ms := c.toggled()
	if op == "stop" {
		ms = c.all()
	}
	c.eachMonitor(ctx, op, fn, ms)
}

// eachMonitor runs fn on every monitor concurrently and waits for all of them.
func (c *Controller) eachMonitor(
	ctx context.Context,
	op string,
	fn func(domain.Monitor, context.Context) error,
	ms []domain.Monitor,
) {
	var wg sync.WaitGroup
	for _, m := range ms {
		wg.Add(1)
		go func(m domain.Monitor) {
			defer wg.Done()
			if err := fn(m, ctx); err != nil {
				c.logger.Warn("Monitor "+op+" failed", "monitor", m.Name(), "error", err)
			}
		}(m)
	}
	wg.Wait()
}

func (c *Controller) announce(ctx context.Context, kind domain.EventKind, title, msg string) {
	now := c.clock.Now()
	c.notifier.Notify(ctx, domain.Notice{Level: domain.NoticeInfo, Title: title, Message: msg, At: now})
	c.logger.Info(title)
	if err := c.events.Publish(ctx, events.New(kind, now, nil)); err != nil {
		c.logger.Warn("Publish session event failed", "error", err)
	}
}
