package sos

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"guardian/internal/domain"
	"guardian/internal/events"
	"guardian/internal/metrics"
)

// DefaultCooldown is the suppression window after a trigger.
const DefaultCooldown = 8 * time.Second

// Config holds optional collaborators and tunables.
type Config struct {
	Cooldown time.Duration
	Clock    clockwork.Clock
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Events   domain.EventPublisher
}

// Dispatcher launches SOS calls to every emergency contact.
type Dispatcher struct {
	contacts domain.ContactReader
	launcher domain.IntentLauncher
	notifier domain.Notifier
	cooldown time.Duration
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *metrics.Metrics
	events   domain.EventPublisher

	mu      sync.Mutex
	cooling bool
}

// New returns a dispatcher reading contacts from contacts and launching
// intents through launcher.
func New(
	contacts domain.ContactReader,
	launcher domain.IntentLauncher,
	notifier domain.Notifier,
	cfg Config,
) *Dispatcher {
	d := &Dispatcher{
		contacts: contacts,
		launcher: launcher,
		notifier: notifier,
		cooldown: cfg.Cooldown,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		events:   cfg.Events,
	}
	if d.cooldown <= 0 {
		d.cooldown = DefaultCooldown
	}
	if d.clock == nil {
		d.clock = clockwork.NewRealClock()
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	if d.events == nil {
		d.events = events.Nop{}
	}
	return d
}

// Trigger runs one SOS attempt from source.
func (d *Dispatcher) Trigger(ctx context.Context, source domain.TriggerSource) domain.DispatchResult {
	result := domain.DispatchResult{Source: source}

	d.mu.Lock()
	if d.cooling {
		d.mu.Unlock()
		d.logger.Debug("SOS suppressed by cooldown", "source", source)
		result.Outcome = domain.OutcomeSuppressed
		d.metrics.SOS(source, result.Outcome)
		return result
	}
	d.cooling = true
	d.mu.Unlock()

	// The release timer is never stopped; the window always runs to completion.
	d.clock.AfterFunc(d.cooldown, d.release)

	contacts, err := d.contacts.Contacts(ctx)
	switch {
	case err != nil:
		d.logger.Error("SOS could not read emergency contacts", "source", source, "error", err)
		d.notify(ctx, domain.NoticeError, "SOS Failed", "Emergency contacts could not be read.")
		result.Outcome = domain.OutcomeFailed
	case len(contacts) == 0:
		d.logger.Warn("SOS with no emergency contacts", "source", source)
		d.notify(ctx, domain.NoticeWarning, "No Contacts", "Please add emergency contacts first!")
		result.Outcome = domain.OutcomeNoContacts
	default:
		result.Intents = d.dispatch(ctx, contacts)
		d.notify(ctx, domain.NoticeWarning, "SOS Triggered", "Calling all emergency contacts!")
		result.Outcome = domain.OutcomeDispatched
	}

	d.metrics.SOS(source, result.Outcome)
	d.publish(ctx, result)
	return result
}

// Cooling reports whether a trigger would currently be suppressed.
func (d *Dispatcher) Cooling() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cooling
}

func (d *Dispatcher) dispatch(ctx context.Context, contacts []domain.Contact) []domain.Intent {
	intents := make([]domain.Intent, 0, len(contacts))
	for _, c := range contacts {
		in := domain.CallIntent(c.String())
		err := d.launcher.Launch(ctx, in)
		d.metrics.Intent(in.Kind, err)
		if err != nil {
			d.logger.Warn("SOS call intent failed", "uri", in.URI, "error", err)
		}
		intents = append(intents, in)
	}
	d.logger.Info("SOS dispatched", "contacts", len(contacts))
	return intents
}

func (d *Dispatcher) release() {
	d.mu.Lock()
	d.cooling = false
	d.mu.Unlock()
}

func (d *Dispatcher) notify(ctx context.Context, level domain.NoticeLevel, title, msg string) {
	d.notifier.Notify(ctx, domain.Notice{Level: level, Title: title, Message: msg, At: d.clock.Now()})
}

func (d *Dispatcher) publish(ctx context.Context, r domain.DispatchResult) {
	ev := events.New(domain.EventSOS, d.clock.Now(), map[string]string{
		"source":  string(r.Source),
		"outcome": string(r.Outcome),
		"intents": strconv.Itoa(len(r.Intents)),
	})
	if err := d.events.Publish(ctx, ev); err != nil {
		d.logger.Warn("Publish SOS event failed", "error", err)
	}
}

// Compile-time assertion that Dispatcher implements domain.SOSTrigger.
var _ domain.SOSTrigger = (*Dispatcher)(nil)
