package scream

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
	// AnalysisInterval is how often the recording is classified.
	AnalysisInterval = 300 * time.Millisecond
	// WindowLength is the audio span handed to the classifier.
	WindowLength = time.Second
	// DefaultThreshold is the likelihood that counts as a scream.
	DefaultThreshold = 0.8
)

// NopClassifier never hears a scream.
type NopClassifier struct{}

// Classify implements domain.ScreamClassifier.
func (NopClassifier) Classify(domain.AudioWindow) domain.ScreamLikelihood { return 0 }

// Config holds optional collaborators and tunables.
type Config struct {
	Classifier domain.ScreamClassifier
	Threshold  float64
	Clock      clockwork.Clock
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
	Events     domain.EventPublisher
}

// Monitor records audio while active.
type Monitor struct {
	mic        domain.Microphone
	perms      domain.PermissionGate
	sos        domain.SOSTrigger
	notifier   domain.Notifier
	classifier domain.ScreamClassifier
	threshold  domain.ScreamLikelihood
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *metrics.Metrics
	events     domain.EventPublisher

	mu        sync.Mutex
	starting  bool
	gen       uint64
	recording domain.Recording
	cancel    context.CancelFunc
	done      chan struct{}
	state     domain.ScreamState
}

// New returns a scream monitor.
func New(
	mic domain.Microphone,
	perms domain.PermissionGate,
	sos domain.SOSTrigger,
	notifier domain.Notifier,
	cfg Config,
) *Monitor {
	m := &Monitor{
		mic:        mic,
		perms:      perms,
		sos:        sos,
		notifier:   notifier,
		classifier: cfg.Classifier,
		threshold:  domain.ScreamLikelihood(cfg.Threshold),
		clock:      cfg.Clock,
		logger:     cfg.Logger,
		metrics:    cfg.Metrics,
		events:     cfg.Events,
	}
	if m.classifier == nil {
		m.classifier = NopClassifier{}
	}
	if m.threshold <= 0 || m.threshold > 1 {
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
func (m *Monitor) Name() domain.MonitorName { return domain.MonitorScream }

// Start requests the microphone and begins recording. It does nothing when
// already listening or starting. The permission prompt and microphone open
// run without holding the state lock.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.recording != nil || m.starting {
		m.mu.Unlock()
		return nil
	}
	m.starting = true
	gen := m.gen
	m.mu.Unlock()

	rec, msg, err := m.open(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen {
		// Stopped while starting.
		if rec != nil {
			_ = rec.Close(ctx)
		}
		return nil
	}
	m.starting = false
	if err != nil {
		m.state.ErrorMessage = msg
		return err
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.recording = rec
	m.cancel = cancel
	m.done = make(chan struct{})
	m.state = domain.ScreamState{MonitorState: domain.MonitorState{Active: true}}
	go m.analyse(runCtx, rec, m.done)

	m.metrics.MonitorActive(domain.MonitorScream, true)
	m.logger.Info("Scream monitor listening", "preset", domain.HighQualityPreset.Name)
	return nil
}

// open asks for the microphone and starts a recording. On failure it returns
// the message to surface in the monitor state.
func (m *Monitor) open(ctx context.Context) (domain.Recording, string, error) {
	granted, err := m.perms.Request(ctx, domain.CapabilityMicrophone)
	if err != nil {
		m.logger.Error("Microphone permission request failed", "error", err)
		return nil, "Microphone unavailable", fmt.Errorf("scream monitor: %w", err)
	}
	if !granted {
		m.logger.Warn("Microphone permission denied")
		return nil, "Microphone permission denied", fmt.Errorf("scream monitor: %w", domain.ErrPermissionDenied)
	}
	rec, err := m.mic.Open(ctx, domain.HighQualityPreset)
	if err != nil {
		m.logger.Error("Start recording failed", "error", err)
		return nil, "Microphone unavailable", fmt.Errorf("scream monitor: %w: %v", domain.ErrResourceUnavailable, err)
	}
	return rec, "", nil
}

// Stop ends analysis and closes the recording. It is safe to call when not
// listening, and listening is always cleared. A Start still waiting on the
// microphone is abandoned.
func (m *Monitor) Stop(ctx context.Context) error {
	m.mu.Lock()
	m.gen++
	m.starting = false
	rec, cancel, done := m.recording, m.cancel, m.done
	m.recording, m.cancel, m.done = nil, nil, nil
	m.state.Active = false
	m.mu.Unlock()
	m.metrics.MonitorActive(domain.MonitorScream, false)

	if cancel != nil {
		cancel()
		<-done
	}
	if rec == nil {
		return nil
	}
	if err := rec.Close(ctx); err != nil {
		m.logger.Warn("Stop recording failed", "error", err)
		return fmt.Errorf("scream monitor: close recording: %w", err)
	}
	m.logger.Info("Scream monitor stopped")
	return nil
}

// State returns a snapshot of the monitor state.
func (m *Monitor) State() domain.ScreamState {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	if s.LastReading != nil {
		r := *s.LastReading
		s.LastReading = &r
	}
	return s
}

func (m *Monitor) analyse(ctx context.Context, rec domain.Recording, done chan struct{}) {
	defer close(done)
	ticker := m.clock.NewTicker(AnalysisInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			m.classify(ctx, rec)
		}
	}
}

func (m *Monitor) classify(ctx context.Context, rec domain.Recording) {
	score := m.classifier.Classify(rec.Window(WindowLength)).Clamp()
	reading := float64(score)

	m.mu.Lock()
	if m.recording != rec {
		m.mu.Unlock()
		return
	}
	m.state.LastLikelihood = score
	m.state.LastReading = &reading
	if score < m.threshold || m.state.AlertTriggered {
		m.mu.Unlock()
		return
	}
	m.state.AlertTriggered = true
	m.mu.Unlock()

	m.logger.Warn("Scream detected", "likelihood", reading)
	m.metrics.ScreamDetected()
	m.notifier.Notify(ctx, domain.Notice{
		Level:   domain.NoticeWarning,
		Title:   "Scream Detected!",
		Message: "Calling all emergency contacts!",
		At:      m.clock.Now(),
	})
	ev := events.New(domain.EventScreamDetected, m.clock.Now(), map[string]string{
		"likelihood": strconv.FormatFloat(reading, 'f', 3, 64),
	})
	if err := m.events.Publish(ctx, ev); err != nil {
		m.logger.Warn("Publish scream event failed", "error", err)
	}
	m.sos.Trigger(ctx, domain.TriggerScream)
}

// Compile-time assertion that Monitor implements domain.Monitor.
var _ domain.Monitor = (*Monitor)(nil)
