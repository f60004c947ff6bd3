// Package runner is the subprocess capability used by the fetch and install
// steps. Commands carry their own working directory, so callers never change
// the process-wide current directory. Recorder is an in-memory fake for tests.
package runner
