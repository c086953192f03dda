// Package memzero wipes key material that should not outlive its use.
package memzero

import "runtime"

// Zero overwrites b with zeros and keeps b reachable until the wipe is done.
func Zero(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
