package fall

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"guardian/internal/domain"
	"guardian/internal/events"
	"guardian/internal/metrics"
)

const (
	// DefaultThreshold is the free-fall magnitude in g.
	DefaultThreshold = 0.5
	// SampleInterval is the accelerometer update interval.
	SampleInterval = 100 * time.Millisecond
)

// Config holds optional collaborators and tunables.
type Config struct {
	Threshold float64
	Clock     clockwork.Clock
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	Events    domain.EventPublisher
}

// Monitor watches the accelerometer for free fall.
type Monitor struct {
	accel     domain.Accelerometer
	perms     domain.PermissionGate
	sos       domain.SOSTrigger
	notifier  domain.Notifier
	threshold float64
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *metrics.Metrics
	events    domain.EventPublisher

	mu    sync.Mutex
	sub   domain.Subscription
	gen   uint64
	ctx   context.Context
	state domain.FallState
}

// New returns a fall monitor.
func New(
	accel domain.Accelerometer,
	perms domain.PermissionGate,
	sos domain.SOSTrigger,
	notifier domain.Notifier,
	cfg Config,
) *Monitor {
	m := &Monitor{
		accel:     accel,
		perms:     perms,
		sos:       sos,
		notifier:  notifier,
		threshold: cfg.Threshold,
		clock:     cfg.Clock,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		events:    cfg.Events,
	}
	if m.threshold <= 0 {
		m.threshold = DefaultThreshold
	}
	if m.clock == nil {
		m.clock = clockwork.NewRealClock()
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.events == nil {
		m.events = events.Nop{}
	}
	return m
}

// Name implements domain.Monitor.
func (m *Monitor) Name() domain.MonitorName { return domain.MonitorFall }

// Start checks the accelerometer capability, resets the one-shot flags and
// subscribes. Calling Start while running replaces the subscription.
func (m *Monitor) Start(ctx context.Context) error {
	granted, err := m.perms.Granted(ctx, domain.CapabilityAccelerometer)
	if err == nil && !granted {
		granted, err = m.perms.Request(ctx, domain.CapabilityAccelerometer)
	}
	if err != nil || !granted {
		m.fail("Accelerometer unavailable")
		if err != nil {
			m.logger.Error("Accelerometer permission check failed", "error", err)
			return fmt.Errorf("fall monitor: %w", err)
		}
		m.logger.Warn("Accelerometer permission denied")
		return fmt.Errorf("fall monitor: %w", domain.ErrPermissionDenied)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sub != nil {
		m.sub.Remove()
		m.sub = nil
	}
	m.gen++
	gen := m.gen
	// Sample callbacks outlive the request that started the monitor.
	m.ctx = context.WithoutCancel(ctx)
	m.state = domain.FallState{}

	sub, err := m.accel.Subscribe(SampleInterval, func(v domain.Vector3) { m.onSample(gen, v) })
	if err != nil {
		m.state.ErrorMessage = "Accelerometer unavailable"
		m.logger.Error("Accelerometer subscribe failed", "error", err)
		return fmt.Errorf("fall monitor: %w: %v", domain.ErrResourceUnavailable, err)
	}
	m.sub = sub
	m.state.Active = true
	m.metrics.MonitorActive(domain.MonitorFall, true)
	m.logger.Info("Fall monitor started", "threshold", m.threshold)
	return nil
}

// Stop removes the subscription. It is safe to call when not running.
func (m *Monitor) Stop(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	if m.sub != nil {
		m.sub.Remove()
		m.sub = nil
		m.logger.Info("Fall monitor stopped")
	}
	m.state.Active = false
	m.metrics.MonitorActive(domain.MonitorFall, false)
	return nil
}

// State returns a snapshot of the monitor state.
func (m *Monitor) State() domain.FallState {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	if s.LastReading != nil {
		r := *s.LastReading
		s.LastReading = &r
	}
	return s
}

func (m *Monitor) onSample(gen uint64, v domain.Vector3) {
	if err := v.Validate(); err != nil {
		m.logger.Debug("Dropped accelerometer sample", "error", err)
		return
	}
	mag := v.Magnitude()

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.state.LastReading = &mag
	if mag >= m.threshold || m.state.AlertTriggered {
		m.mu.Unlock()
		return
	}
	m.state.FallDetected = true
	m.state.AlertTriggered = true
	ctx := m.ctx
	m.mu.Unlock()

	m.logger.Warn("Fall detected", "magnitude", mag)
	m.metrics.FallDetected()
	m.notifier.Notify(ctx, domain.Notice{
		Level:   domain.NoticeWarning,
		Title:   "Fall Detected!",
		Message: "Your phone was dropped!",
		At:      m.clock.Now(),
	})
	ev := events.New(domain.EventFallDetected, m.clock.Now(), map[string]string{
		"magnitude": strconv.FormatFloat(mag, 'f', 3, 64),
	})
	if err := m.events.Publish(ctx, ev); err != nil {
		m.logger.Warn("Publish fall event failed", "error", err)
	}
	m.sos.Trigger(ctx, domain.TriggerFall)
}

// fail detaches any running subscription so an inactive monitor never
// reacts to samples.
func (m *Monitor) fail(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	if m.sub != nil {
		m.sub.Remove()
		m.sub = nil
	}
	m.state.Active = false
	m.state.ErrorMessage = msg
	m.metrics.MonitorActive(domain.MonitorFall, false)
}

// Compile-time assertion that Monitor implements domain.Monitor.
var _ domain.Monitor = (*Monitor)(nil)
