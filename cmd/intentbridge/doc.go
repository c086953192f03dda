// Package main runs the in-memory intent bridge between the safety core and
// a handset. The core posts tel: and sms: intents for a device; the handset
// polls for them, opens each URI and acknowledges what it handled.
//
// HTTP API
//
//	POST /devices/{device}/intents
//	    Enqueue an Intent ({"kind","number","uri"}) for {device}.
//
//	GET /devices/{device}/intents?limit=N
//	    Return up to N queued intents for {device}. If limit is absent or
//	    greater than the queue length, all queued intents are returned.
//
//	POST /devices/{device}/intents/ack { "count": N }
//	    Drop the first N queued intents for {device}. If N exceeds the queue
//	    length, the queue is cleared.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - A lightweight access log records method, path, remote, status, bytes and
//     duration for each request.
//   - The default listen address is :8090; override with -addr or
//     GUARDIAN_BRIDGE_ADDR.
//
// The bridge never confirms that a call connected or a message was sent.
package main
