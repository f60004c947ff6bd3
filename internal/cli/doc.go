// Package cli defines the Cobra command tree for the starterkit CLI. Each
// file registers one top-level command with the root command. Commands only
// handle flags, output formatting and wiring; the work happens in the
// internal packages they call.
package cli
