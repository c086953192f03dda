package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"guardian/internal/device/sim"
	"guardian/internal/domain"
	"guardian/internal/events"
	"guardian/internal/intent"
	"guardian/internal/metrics"
	"guardian/internal/notify"
	challengesvc "guardian/internal/services/challenges"
	contactsvc "guardian/internal/services/contacts"
	"guardian/internal/services/fall"
	"guardian/internal/services/heartbeat"
	"guardian/internal/services/police"
	"guardian/internal/services/scream"
	"guardian/internal/services/session"
	"guardian/internal/services/sos"
	"guardian/internal/store"
)

// Wire bundles all stores, devices, services and monitors.
type Wire struct {
	Config Config
	Logger *slog.Logger
	Clock  clockwork.Clock

	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
	Notices  *notify.Recorder
	Notifier domain.Notifier
	Launcher domain.IntentLauncher
	Events   domain.EventPublisher

	Permissions   *sim.Permissions
	Accelerometer *sim.Accelerometer
	Microphone    *sim.Microphone
	Camera        *sim.Camera
	Location      *sim.Location

	KV         *store.KeyValue
	Contacts   *contactsvc.Service
	Challenges *challengesvc.Service
	SOS        *sos.Dispatcher
	Fall       *fall.Monitor
	Scream     *scream.Monitor
	Heartbeat  *heartbeat.Monitor
	Session    *session.Controller
	Police     *police.Service

	closers []func() error
}

// NewWire constructs the dependency graph from cfg. Notices are printed to
// out when it is non-nil; intents are printed there too unless a bridge is
// configured.
func NewWire(cfg Config, out io.Writer, logger *slog.Logger) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = io.Discard
	}
	w := &Wire{Config: cfg, Logger: logger, Clock: clockwork.NewRealClock()}

	// Metrics
	w.Registry = prometheus.NewRegistry()
	w.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	w.Metrics = metrics.New(w.Registry)

	// Notices go to the log, the CLI output and the API feed
	w.Notices = notify.NewRecorder(0)
	w.Notifier = notify.Multi{w.Notices, notify.NewLogNotifier(logger), notify.NewWriterNotifier(out)}

	// Intent delivery
	if cfg.Intents.BridgeURL != "" {
		httpClient := cfg.HTTP
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		w.Launcher = intent.NewBridgeClient(cfg.Intents.BridgeURL, cfg.Intents.Device, httpClient)
	} else {
		w.Launcher = intent.NewWriterLauncher(out)
	}

	// Event fan-out
	w.Events = events.Nop{}
	if cfg.Events.NATSURL != "" {
		pub, err := events.Connect(cfg.Events.NATSURL, cfg.Events.SubjectPrefix)
		if err != nil {
			return nil, err
		}
		w.Events = pub
		w.closers = append(w.closers, pub.Close)
	}

	// Simulated handset
	w.Permissions = sim.NewPermissions()
	for _, g := range cfg.Devices.Grants {
		w.Permissions.Grant(domain.Capability(g))
	}
	w.Permissions.SetGrantOnRequest(cfg.Devices.GrantOnRequest)
	w.Accelerometer = sim.NewAccelerometer(w.Clock)
	w.Microphone = sim.NewMicrophone()
	w.Camera = sim.NewCamera(cfg.Devices.CameraFails)
	w.Location = sim.NewLocation(cfg.Devices.Location)

	// File-based stores
	var sealer *store.Sealer
	if cfg.Passphrase != "" {
		sealer = store.NewSealer(cfg.Passphrase)
	}
	w.KV = store.NewKeyValue(cfg.Home, sealer)

	// High-level services
	w.Contacts = contactsvc.New(store.NewContactFileStore(w.KV), w.Notifier, w.Clock, logger.With("component", "contacts"))
	w.Challenges = challengesvc.New(store.NewChallengeFileStore(w.KV), w.Notifier, w.Clock, logger.With("component", "challenges"))
	w.SOS = sos.New(w.Contacts, w.Launcher, w.Notifier, sos.Config{
		Cooldown: cfg.SOS.Cooldown,
		Clock:    w.Clock,
		Logger:   logger.With("component", "sos"),
		Metrics:  w.Metrics,
		Events:   w.Events,
	})
	w.Fall = fall.New(w.Accelerometer, w.Permissions, w.SOS, w.Notifier, fall.Config{
		Threshold: cfg.Fall.Threshold,
		Clock:     w.Clock,
		Logger:    logger.With("monitor", domain.MonitorFall),
		Metrics:   w.Metrics,
		Events:    w.Events,
	})
	w.Scream = scream.New(w.Microphone, w.Permissions, w.SOS, w.Notifier, scream.Config{
		Threshold: cfg.Scream.Threshold,
		Clock:     w.Clock,
		Logger:    logger.With("monitor", domain.MonitorScream),
		Metrics:   w.Metrics,
		Events:    w.Events,
	})
	w.Heartbeat = heartbeat.New(w.Camera, w.Permissions, w.Notifier, heartbeat.Config{
		Clock:   w.Clock,
		Logger:  logger.With("monitor", domain.MonitorHeartbeat),
		Metrics: w.Metrics,
		Events:  w.Events,
	})
	w.Session = session.New(session.Monitors{Fall: w.Fall, Scream: w.Scream, Heartbeat: w.Heartbeat}, w.Notifier, session.Config{
		ManualHeartbeat: cfg.Session.ManualHeartbeat,
		Clock:           w.Clock,
		Logger:          logger.With("component", "session"),
		Metrics:         w.Metrics,
		Events:          w.Events,
	})
	w.Police = police.New(w.Permissions, w.Location, w.Launcher, w.Notifier, cfg.Police.Number,
		w.Clock, logger.With("component", "police"), w.Metrics)

	return w, nil
}

// WatchContacts reloads contacts whenever the contact file changes on disk.
func (w *Wire) WatchContacts(ctx context.Context) error {
	watcher, err := store.NewWatcher(store.WatcherConfig{
		Dir:    w.Config.Home,
		Files:  []string{w.KV.FileName(store.ContactsKey)},
		Logger: w.Logger,
	}, func(string) { w.Contacts.Reload(ctx) })
	if err != nil {
		return fmt.Errorf("create storage watcher: %w", err)
	}
	if err := watcher.Start(ctx); err != nil {
		watcher.Close()
		return fmt.Errorf("start storage watcher: %w", err)
	}
	w.closers = append(w.closers, watcher.Close)
	return nil
}

// Close stops monitoring and releases every resource.
func (w *Wire) Close(ctx context.Context) error {
	w.Session.Close(ctx)
	var errs []error
	for i := len(w.closers) - 1; i >= 0; i-- {
		if err := w.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	w.closers = nil
	return errors.Join(errs...)
}
