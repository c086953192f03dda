// Package contacts manages the ordered list of emergency contacts.
//
// The service keeps an in-memory copy of the stored list so the SOS
// dispatcher can read it without touching disk, and reloads it when the
// storage watcher reports an edit from another process.
package contacts
