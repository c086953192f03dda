package heartbeat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"guardian/internal/domain"
	"guardian/internal/events"
	"guardian/internal/metrics"
)

const (
	// Samples is the number of pulse samples per measurement.
	Samples = 5
	// SampleSpacing is the delay before each sample.
	SampleSpacing = time.Second
	// MinBPM and MaxBPM bound simulated readings, MaxBPM exclusive.
	MinBPM = 70
	MaxBPM = 85

	// SimulatedMessage is the error message shown with a fallback reading.
	SimulatedMessage = "Camera unavailable – showing simulated heartbeat"
)

// ErrMeasurementStopped is returned by Measure when Stop interrupts it.
var ErrMeasurementStopped = errors.New("heartbeat measurement stopped")

// RandomPulse draws readings uniformly from [MinBPM, MaxBPM).
type RandomPulse struct{}

// Sample implements domain.PulseSource.
func (RandomPulse) Sample(context.Context, domain.CameraSession) (int, error) {
	return simulatedBPM(), nil
}

func simulatedBPM() int { return MinBPM + rand.IntN(MaxBPM-MinBPM) }

// Config holds optional collaborators.
type Config struct {
	Pulse   domain.PulseSource
	Clock   clockwork.Clock
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Events  domain.EventPublisher
}

// Monitor runs single-flight heartbeat measurements.
type Monitor struct {
	camera   domain.Camera
	perms    domain.PermissionGate
	notifier domain.Notifier
	pulse    domain.PulseSource
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *metrics.Metrics
	events   domain.EventPublisher

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	state  domain.HeartbeatState
}

// New returns a heartbeat monitor.
func New(camera domain.Camera, perms domain.PermissionGate, notifier domain.Notifier, cfg Config) *Monitor {
	m := &Monitor{
		camera:   camera,
		perms:    perms,
		notifier: notifier,
		pulse:    cfg.Pulse,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		events:   cfg.Events,
	}
	if m.pulse == nil {
		m.pulse = RandomPulse{}
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
func (m *Monitor) Name() domain.MonitorName { return domain.MonitorHeartbeat }

// Start begins a measurement in the background. It is a no-op while one is
// already active or measuring. Without camera permission it asks for it and
// returns domain.ErrPermissionDenied; the user starts again once granted.
func (m *Monitor) Start(ctx context.Context) error {
	_, err := m.start(ctx)
	return err
}

// Measure starts a measurement if none is running and waits for it.
func (m *Monitor) Measure(ctx context.Context) (domain.HeartbeatState, error) {
	done, err := m.start(ctx)
	if err != nil {
		return m.State(), err
	}
	select {
	case <-done:
	case <-ctx.Done():
		return m.State(), ctx.Err()
	}
	st := m.State()
	if st.LastReading == nil {
		return st, ErrMeasurementStopped
	}
	return st, nil
}

func (m *Monitor) start(ctx context.Context) (<-chan struct{}, error) {
	m.mu.Lock()
	if m.state.Active || m.state.Measuring {
		done := m.done
		m.mu.Unlock()
		return done, nil
	}
	m.mu.Unlock()

	granted, err := m.perms.Granted(ctx, domain.CapabilityCamera)
	if err != nil {
		return nil, fmt.Errorf("heartbeat monitor: %w", err)
	}
	if !granted {
		m.notify(ctx, domain.NoticeInfo, "Permission Needed", "Camera access is required for heartbeat monitoring.")
		if _, err := m.perms.Request(ctx, domain.CapabilityCamera); err != nil {
			m.logger.Warn("Camera permission request failed", "error", err)
		}
		return nil, fmt.Errorf("heartbeat monitor: %w", domain.ErrPermissionDenied)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Active || m.state.Measuring {
		return m.done, nil
	}
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	m.cancel, m.done = cancel, done
	m.state = domain.HeartbeatState{
		MonitorState: domain.MonitorState{Active: true},
		Measuring:    true,
	}
	m.metrics.MonitorActive(domain.MonitorHeartbeat, true)
	m.notify(ctx, domain.NoticeInfo, "Heartbeat Check", "Place your fingertip gently on the camera lens")
	go m.run(runCtx, done)
	return done, nil
}

// Stop cancels a pending measurement, releases the camera and clears the
// last reading.
func (m *Monitor) Stop(context.Context) error {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	m.mu.Lock()
	m.cancel, m.done = nil, nil
	m.state = domain.HeartbeatState{}
	m.mu.Unlock()
	m.metrics.MonitorActive(domain.MonitorHeartbeat, false)
	return nil
}

// State returns a snapshot of the monitor state.
func (m *Monitor) State() domain.HeartbeatState {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	if s.LastReading != nil {
		r := *s.LastReading
		s.LastReading = &r
	}
	return s
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	bpm, err := m.acquire(ctx)
	if ctx.Err() != nil {
		return
	}
	source := domain.SourceMeasured
	msg := ""
	if err != nil {
		m.logger.Warn("Heartbeat capture failed, using simulated reading", "error", err)
		bpm, source, msg = simulatedBPM(), domain.SourceSimulated, SimulatedMessage
	}
	reading := float64(bpm)

	m.mu.Lock()
	m.state = domain.HeartbeatState{
		MonitorState: domain.MonitorState{LastReading: &reading, ErrorMessage: msg},
		Source:       source,
	}
	m.mu.Unlock()

	m.metrics.HeartbeatReading(source)
	m.metrics.MonitorActive(domain.MonitorHeartbeat, false)
	m.logger.Info("Heartbeat reading", "bpm", bpm, "source", source)
	ev := events.New(domain.EventHeartbeatReading, m.clock.Now(), map[string]string{
		"bpm":    strconv.Itoa(bpm),
		"source": string(source),
	})
	if err := m.events.Publish(ctx, ev); err != nil {
		m.logger.Warn("Publish heartbeat event failed", "error", err)
	}
}

// acquire samples the pulse source through an open camera session. The
// session is closed on every path.
func (m *Monitor) acquire(ctx context.Context) (int, error) {
	session, err := m.camera.Open(ctx)
	if err != nil {
		return 0, fmt.Errorf("open camera: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			m.logger.Warn("Release camera failed", "error", err)
		}
	}()

	sum := 0
	for i := range Samples {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-m.clock.After(SampleSpacing):
		}
		v, err := m.pulse.Sample(ctx, session)
		if err != nil {
			return 0, fmt.Errorf("pulse sample %d: %w", i+1, err)
		}
		sum += v
	}
	return int(math.Round(float64(sum) / Samples)), nil
}

func (m *Monitor) notify(ctx context.Context, level domain.NoticeLevel, title, msg string) {
	m.notifier.Notify(ctx, domain.Notice{Level: level, Title: title, Message: msg, At: m.clock.Now()})
}

// Compile-time assertion that Monitor implements domain.Monitor.
var _ domain.Monitor = (*Monitor)(nil)
