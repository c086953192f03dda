// Package sos turns an emergency trigger into outbound call intents.
//
// A trigger arms a cooldown window (8 seconds by default) before doing
// anything else; further triggers inside the window are dropped, not queued.
// The window is consumed even when no contacts are configured. Calls are
// launched one per contact in stored order and are fire-and-forget: a failed
// launch is logged and the remaining contacts are still tried.
package sos
