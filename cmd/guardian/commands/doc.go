// Package commands defines the guardian CLI and wires dependencies for subcommands.
//
// Commands
//
//   - contacts     List, add and remove emergency contacts
//   - sos          Trigger a manual SOS to every emergency contact
//   - heartbeat    Measure heart rate through the camera
//   - police       Show police options, call, or text the current location
//   - challenges   Manage wellness challenges
//   - run          Switch safety monitoring on until interrupted
//   - serve        Serve the HTTP API for the presentation layer
//
// # Implementation
//
// The root command loads .env, the YAML config file and GUARDIAN_* variables,
// then builds the dependency graph (stores, simulated devices, monitors,
// services) before any subcommand runs. Flags override everything else.
package commands
