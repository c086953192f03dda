package interfaces

import (
	"context"
	"time"

	domaintypes "guardian/internal/domain/types"
)

// PermissionGate answers and requests device capability grants.
type PermissionGate interface {
	Granted(ctx context.Context, c domaintypes.Capability) (bool, error)
	Request(ctx context.Context, c domaintypes.Capability) (bool, error)
}

// Subscription is a live sensor listener.
type Subscription interface {
	Remove()
}

// Accelerometer streams 3-axis samples.
type Accelerometer interface {
	Subscribe(
		interval time.Duration,
		fn func(domaintypes.Vector3),
	) (Subscription, error)
}

// Recording is an open microphone stream.
type Recording interface {
	// Window returns the most recent d of audio.
	Window(d time.Duration) domaintypes.AudioWindow
	Close(ctx context.Context) error
}

// Microphone opens recording streams.
type Microphone interface {
	Open(ctx context.Context, preset domaintypes.RecordingPreset) (Recording, error)
}

// CameraSession is an open camera used for fingertip pulse capture.
type CameraSession interface {
	Close() error
}

// Camera opens camera sessions.
type Camera interface {
	Open(ctx context.Context) (CameraSession, error)
}

// PulseSource yields one beats-per-minute sample from an open camera session.
type PulseSource interface {
	Sample(ctx context.Context, session CameraSession) (int, error)
}

// LocationProvider reports the current position.
type LocationProvider interface {
	Current(ctx context.Context) (domaintypes.Coordinates, error)
}
