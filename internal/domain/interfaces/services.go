package interfaces

import (
	"context"

	domaintypes "guardian/internal/domain/types"
)

// Monitor is a sensor-driven component with an idempotent lifecycle.
type Monitor interface {
	Name() domaintypes.MonitorName
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// SOSTrigger converts an emergency into outbound intents.
type SOSTrigger interface {
	Trigger(ctx context.Context, source domaintypes.TriggerSource) domaintypes.DispatchResult
}

// ContactReader is the read side the dispatcher needs.
type ContactReader interface {
	Contacts(ctx context.Context) ([]domaintypes.Contact, error)
}

// ScreamClassifier scores an audio window.
type ScreamClassifier interface {
	Classify(window domaintypes.AudioWindow) domaintypes.ScreamLikelihood
}

// IntentLauncher hands an intent to the handset. Delivery is not confirmed.
type IntentLauncher interface {
	Launch(ctx context.Context, intent domaintypes.Intent) error
}

// Notifier surfaces a user-facing notice.
type Notifier interface {
	Notify(ctx context.Context, notice domaintypes.Notice)
}

// EventPublisher fans safety events out to observers. Publishing is best effort.
type EventPublisher interface {
	Publish(ctx context.Context, event domaintypes.Event) error
}
