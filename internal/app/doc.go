// Package app wires application dependencies for the CLI and HTTP server.
//
// It loads Config from defaults, a YAML file and GUARDIAN_* environment
// variables, then builds the stores, simulated devices, monitors and
// services from it, exposing them via the Wire struct for commands to use.
package app
