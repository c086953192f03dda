// Package events publishes safety events (session transitions, detections,
// SOS outcomes) to observers such as a caregiver dashboard.
//
// NATSPublisher sends each event as JSON on "<prefix>.<kind>". Publishing is
// best effort: failures are returned to the caller, which logs them and moves
// on. Nop discards everything and is used when no broker is configured.
package events
