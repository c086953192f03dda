// Package intent delivers outbound intents (tel:, sms:) to the handset.
//
// Launchers
//
//   - WriterLauncher prints each intent URI, one per line (CLI and dry runs).
//   - BridgeClient posts intents to an intent bridge over HTTP; the handset
//     polls the bridge, opens each URI, and acknowledges it.
//
// The bridge itself (Bridge) is a store-and-forward queue keyed by device. It
// never confirms that a call connected; delivery is fire-and-forget.
//
// Bridge HTTP API
//
//	POST /devices/{device}/intents
//	    Enqueue an Intent for {device}.
//
//	GET /devices/{device}/intents?limit=N
//	    Return up to N queued intents. A missing or oversized limit returns all.
//
//	POST /devices/{device}/intents/ack { "count": N }
//	    Drop the first N queued intents. N beyond the queue length clears it.
package intent
