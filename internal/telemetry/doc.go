// Package telemetry sends anonymous, best-effort usage events. Init is the
// only blocking call; Event posts in the background and never reports
// failure to the caller. Flush gives in-flight events a bounded grace period
// before the process exits.
package telemetry
