// Package bootstrap runs the "new project" flow: validate the name, prepare
// the project root, fetch the starter, write the environment file and install
// dependencies. Subprocesses, the environment file, the installer and
// telemetry are injected so the flow can run without a network or toolchain.
package bootstrap
