// Package challenges manages the wellness challenge list shown on the home
// screen. A fresh install is seeded with three defaults.
package challenges
