package types

import "strings"

// Contact is an emergency phone number exactly as the user entered it.
type Contact string

// String returns the string form of the contact.
func (c Contact) String() string { return string(c) }

// Blank reports whether the contact is empty or whitespace only.
func (c Contact) Blank() bool { return strings.TrimSpace(string(c)) == "" }

// Capability names a device capability that is granted independently.
type Capability string

const (
	CapabilityCamera        Capability = "camera"
	CapabilityMicrophone    Capability = "microphone"
	CapabilityAccelerometer Capability = "accelerometer"
	CapabilityLocation      Capability = "location"
)

// Coordinates is a position fix in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
