// Package store provides device-local persistence for guardian.
//
// Values live as JSON files under the configured data directory, one file per
// key, so the layout mirrors a key/value store:
//   - emergencyContacts: ordered array of phone-number strings (ContactFileStore)
//   - challenges: array of {id,text,done} records (ChallengeFileStore)
//
// When a Sealer is configured the JSON is encrypted at rest with a key derived
// from a passphrase. All writes go through a temp file and an atomic rename.
// Malformed content surfaces as ErrCorrupt so callers can tell a damaged file
// from an I/O failure. Watcher reports edits made by other processes.
package store
