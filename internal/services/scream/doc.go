// Package scream listens to the microphone and raises SOS on a scream.
//
// Classification is pluggable. The monitor only owns the recording lifecycle
// and the analysis cadence: every 300 ms the most recent second of audio is
// handed to a domain.ScreamClassifier, and a likelihood at or above the
// threshold alerts once per session.
package scream
