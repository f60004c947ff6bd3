// Package platform provides cross-platform filesystem helpers used while
// materializing a starter: directory creation with fixed permissions and
// symlink replication. On Windows, chmod is a no-op and symlinks fall back to
// plain file copies when developer mode is unavailable.
package platform
