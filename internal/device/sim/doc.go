// Package sim provides in-process stand-ins for the handset's sensors.
//
// The CLI and HTTP server run off-device, so every hardware collaborator of
// the safety core has a simulated implementation here: a permission table, an
// accelerometer that reports a resting 1 g unless a drop is injected, a silent
// microphone, a camera that can be told to fail, and a fixed location.
package sim
