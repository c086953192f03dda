package types

import "time"

// EventKind names a safety event published to observers.
type EventKind string

const (
	EventSessionEnabled   EventKind = "session.enabled"
	EventSessionDisabled  EventKind = "session.disabled"
	EventFallDetected     EventKind = "fall.detected"
	EventScreamDetected   EventKind = "scream.detected"
	EventHeartbeatReading EventKind = "heartbeat.reading"
	EventSOS              EventKind = "sos.triggered"
)

// Event is a fire-and-forget record of something the safety core did.
type Event struct {
	ID   string            `json:"id"`
	Kind EventKind         `json:"kind"`
	At   time.Time         `json:"at"`
	Data map[string]string `json:"data,omitempty"`
}
