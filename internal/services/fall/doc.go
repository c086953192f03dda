// Package fall detects free fall from accelerometer samples.
//
// A phone in free fall reads close to zero g on all axes. While started, the
// monitor samples every 100 ms and treats a magnitude under 0.5 g as a fall.
// The first fall in a session raises an alert and triggers SOS; later falls
// are ignored until the next Start.
package fall
