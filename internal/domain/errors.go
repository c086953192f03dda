package domain

import "errors"

var (
	// ErrPermissionDenied is returned when a device capability is not granted.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrResourceUnavailable is returned when a camera or microphone session cannot be opened.
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrNoContacts is returned when an SOS is attempted with no emergency contacts.
	ErrNoContacts = errors.New("no emergency contacts configured")

	// ErrStorageCorrupt is returned when persisted state cannot be parsed.
	ErrStorageCorrupt = errors.New("storage corrupt")
)
