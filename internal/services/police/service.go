package police

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"guardian/internal/domain"
	"guardian/internal/metrics"
)

// DefaultNumber is the police emergency number.
const DefaultNumber = "100"

// Options is what the user chooses from once a position is known.
type Options struct {
	Number   string             `json:"number"`
	Location domain.Coordinates `json:"location"`
	MapsLink string             `json:"mapsLink"`
	Call     domain.Intent      `json:"call"`
	SMS      domain.Intent      `json:"sms"`
}

// Service builds and launches police intents.
type Service struct {
	perms    domain.PermissionGate
	location domain.LocationProvider
	launcher domain.IntentLauncher
	notifier domain.Notifier
	number   string
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New returns a police service. An empty number means DefaultNumber; a nil
// clock or logger uses the default.
func New(
	perms domain.PermissionGate,
	location domain.LocationProvider,
	launcher domain.IntentLauncher,
	notifier domain.Notifier,
	number string,
	clock clockwork.Clock,
	logger *slog.Logger,
	m *metrics.Metrics,
) *Service {
	if number == "" {
		number = DefaultNumber
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		perms:    perms,
		location: location,
		launcher: launcher,
		notifier: notifier,
		number:   number,
		clock:    clock,
		logger:   logger,
		metrics:  m,
	}
}

// Options requests location permission and returns both choices.
func (s *Service) Options(ctx context.Context) (Options, error) {
	granted, err := s.perms.Request(ctx, domain.CapabilityLocation)
	if err != nil {
		return Options{}, fmt.Errorf("request location permission: %w", err)
	}
	if !granted {
		s.notifier.Notify(ctx, domain.Notice{
			Level:   domain.NoticeError,
			Title:   "Permission Denied",
			Message: "Location access is required.",
			At:      s.clock.Now(),
		})
		return Options{}, domain.ErrPermissionDenied
	}

	loc, err := s.location.Current(ctx)
	if err != nil {
		return Options{}, fmt.Errorf("%w: current location: %v", domain.ErrResourceUnavailable, err)
	}
	link := domain.MapsLink(loc)
	return Options{
		Number:   s.number,
		Location: loc,
		MapsLink: link,
		Call:     domain.CallIntent(s.number),
		SMS:      domain.SMSIntent(s.number, "Emergency! I need help. My location: "+link),
	}, nil
}

// Call launches a call to the police number.
func (s *Service) Call(ctx context.Context) (domain.Intent, error) {
	opts, err := s.Options(ctx)
	if err != nil {
		return domain.Intent{}, err
	}
	return opts.Call, s.launch(ctx, opts.Call)
}

// SendLocation texts the current maps link to the police number.
func (s *Service) SendLocation(ctx context.Context) (domain.Intent, error) {
	opts, err := s.Options(ctx)
	if err != nil {
		return domain.Intent{}, err
	}
	return opts.SMS, s.launch(ctx, opts.SMS)
}

func (s *Service) launch(ctx context.Context, in domain.Intent) error {
	err := s.launcher.Launch(ctx, in)
	s.metrics.Intent(in.Kind, err)
	if err != nil {
		s.logger.Error("Police intent failed", "kind", in.Kind, "error", err)
		return fmt.Errorf("launch %s intent: %w", in.Kind, err)
	}
	s.logger.Info("Police intent launched", "kind", in.Kind)
	return nil
}
