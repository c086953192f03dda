// Package heartbeat estimates pulse from a fingertip held over the camera.
//
// A measurement opens the camera, takes five samples one second apart and
// reports their rounded mean. When the camera cannot be used the monitor
// falls back to a single simulated reading and says so in its error message,
// so the presentation layer always has a number to show.
package heartbeat
