// Package session owns the single safety toggle.
//
// Turning the session on starts the scream, heartbeat and fall monitors
// concurrently; turning it off stops them. Monitor failures are logged and
// reflected in each monitor's own state, never returned to the caller, so one
// unavailable sensor does not keep the others from running.
package session
