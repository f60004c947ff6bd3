// Package install installs a new project's dependencies with yarn or npm.
// The package manager is chosen from the lockfile the starter ships, then
// from whether a usable yarn is on PATH.
package install
