// Package domain defines core data models and interfaces shared across guardian.
// It contains plain types (state/wire) and contracts (interfaces) only.
package domain
