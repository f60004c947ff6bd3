// Package starter classifies a starter reference as either a hosted git
// repository (GitHub, GitLab or Bitbucket, in shortcut, scp-like or URL form,
// with an optional #committish) or a local directory, and derives the clone
// URL for the remote case.
package starter
